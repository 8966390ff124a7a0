// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package linkpath tokenizes documentation links into path components.
//
// The segment grammar is name[-kind][-hash] where kind is a recognized
// symbol kind identifier, optionally prefixed with a source language and a
// dot ("objc.method"), and hash is a stable hash matching ^[0-9a-z]{1,5}$.
// Disambiguation by language is accepted in input links: "foo-objc.method"
// only matches the Objective-C variant while "foo-method" matches any
// language. Unrecognized suffixes stay part of the name, names may
// legitimately contain hyphens.
package linkpath

import "strings"

// Well known leading segments that mark a link as absolute.
const (
	DocumentationSegment = "documentation"
	TutorialsSegment     = "tutorials"
)

// PathComponent is one slash-separated segment of a documentation link.
type PathComponent struct {
	// Full is the raw segment including any disambiguation suffix
	Full string
	// Name is the segment with recognized disambiguation stripped
	Name string
	// Kind is the recognized kind identifier, empty when absent
	Kind string
	// Hash is the recognized stable hash, empty when absent
	Hash string
	// Language is the language prefix of Kind, empty when absent
	Language string
	// IsFragment marks the trailing on-page anchor of a link
	IsFragment bool
}

// Path is a parsed documentation link.
type Path struct {
	Components []PathComponent
	// Absolute is true for links starting with "/" or a well known root segment
	Absolute bool
	// BundleID is the authority of a doc://bundle/path link, empty otherwise
	BundleID string
}

// HasDisambiguation reports whether the component carries a kind or a hash.
func (c PathComponent) HasDisambiguation() bool {
	return c.Kind != "" || c.Hash != ""
}

// Parse tokenizes a link, collapsing empty path segments.
func Parse(link string) Path {
	return ParseComponents(link, true)
}

// ParseComponents tokenizes a link. With omitEmpty false, interior empty
// segments are kept verbatim as empty-named components.
func ParseComponents(link string, omitEmpty bool) Path {
	var parsed Path
	rest := link
	rest = strings.TrimPrefix(rest, "doc:")
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		parsed.Absolute = true
		if slash := strings.Index(rest, "/"); slash >= 0 {
			parsed.BundleID, rest = rest[:slash], rest[slash:]
		} else {
			parsed.BundleID, rest = rest, ""
		}
	}
	fragment := ""
	hasFragment := false
	if i := strings.Index(rest, "#"); i >= 0 {
		rest, fragment = rest[:i], rest[i+1:]
		hasFragment = true
	}
	if strings.HasPrefix(rest, "/") {
		parsed.Absolute = true
		rest = rest[1:]
	}
	if rest != "" {
		for _, segment := range strings.Split(rest, "/") {
			if segment == "" && omitEmpty {
				continue
			}
			parsed.Components = append(parsed.Components, ParseComponent(segment))
		}
	}
	if !parsed.Absolute && len(parsed.Components) > 0 {
		first := parsed.Components[0].Full
		if first == DocumentationSegment || first == TutorialsSegment {
			parsed.Absolute = true
		}
	}
	if hasFragment && fragment != "" {
		parsed.Components = append(parsed.Components, PathComponent{Full: fragment, Name: fragment, IsFragment: true})
	}
	return parsed
}

// ParseComponent tokenizes a single segment into name, kind and hash.
func ParseComponent(segment string) PathComponent {
	component := PathComponent{Full: segment, Name: segment}
	dash := strings.LastIndex(segment, "-")
	if dash <= 0 {
		return component
	}
	prefix, suffix := segment[:dash], segment[dash+1:]
	if language, kind, ok := splitKind(suffix); ok {
		component.Kind, component.Language = kind, language
		component.Name = prefix
		// the prefix may itself carry a hash
		if inner := strings.LastIndex(prefix, "-"); inner > 0 && isHash(prefix[inner+1:]) {
			component.Hash = prefix[inner+1:]
			component.Name = prefix[:inner]
		}
		return component
	}
	if isHash(suffix) {
		component.Hash = suffix
		component.Name = prefix
		if inner := strings.LastIndex(prefix, "-"); inner > 0 {
			if language, kind, ok := splitKind(prefix[inner+1:]); ok {
				component.Kind, component.Language = kind, language
				component.Name = prefix[:inner]
			}
		}
		return component
	}
	return component
}
