// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package linkpath

import "strings"

// Symbol kind identifiers that are recognized as disambiguation suffixes.
// A trailing "-struct" on a segment is a kind, a trailing "-s8tru" is a hash
// and anything else belongs to the name.
var knownKinds = map[string]struct{}{
	"module":         {},
	"class":          {},
	"struct":         {},
	"enum":           {},
	"enum.case":      {},
	"protocol":       {},
	"init":           {},
	"deinit":         {},
	"func":           {},
	"func.op":        {},
	"method":         {},
	"property":       {},
	"var":            {},
	"let":            {},
	"subscript":      {},
	"typealias":      {},
	"associatedtype": {},
	"macro":          {},
	"namespace":      {},
	"union":          {},
	"typedef":        {},
	"dictionary":     {},
}

// Language identifiers that may prefix a kind, e.g. "objc.method".
var knownLanguages = map[string]struct{}{
	"swift": {},
	"objc":  {},
	"c":     {},
	"data":  {},
}

// PrimaryLanguage breaks cross-language ties: when the same symbol exists in
// several source languages, its variant in this language owns the address.
const PrimaryLanguage = "swift"

// splitKind recognizes a kind suffix, optionally prefixed with a language
// identifier and a dot. It returns the language (may be empty), the kind and
// whether the suffix was recognized at all.
func splitKind(suffix string) (language, kind string, ok bool) {
	if _, found := knownKinds[suffix]; found {
		return "", suffix, true
	}
	dot := strings.Index(suffix, ".")
	if dot < 0 {
		return "", "", false
	}
	language, rest := suffix[:dot], suffix[dot+1:]
	if _, found := knownLanguages[language]; !found {
		return "", "", false
	}
	if _, found := knownKinds[rest]; !found {
		return "", "", false
	}
	return language, rest, true
}

// isHash reports whether the candidate is a well-formed stable hash.
func isHash(candidate string) bool {
	if len(candidate) == 0 || len(candidate) > 5 {
		return false
	}
	for _, r := range candidate {
		if (r < '0' || r > '9') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
