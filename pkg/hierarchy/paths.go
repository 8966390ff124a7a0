// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/gardener/doclink/pkg/internal/link"
	"github.com/gardener/doclink/pkg/internal/must"
)

// DisambiguatedPaths computes the canonical minimal URL path of every
// symbol, keyed by precise identifier. Children are grouped
// case-insensitively after URL normalization, so "Color" and "color" count
// as colliding siblings. With forceDisambiguatedChildren, children of a
// disambiguated container carry their kind suffix even when unambiguous,
// keeping their URLs stable across sibling edits.
//
// The result is injective. A duplicate path is a broken hierarchy invariant
// and panics.
func (h *Hierarchy) DisambiguatedPaths(forceDisambiguatedChildren bool) map[string]string {
	emitter := &pathEmitter{
		force:  forceDisambiguatedChildren,
		result: map[string]string{},
	}
	for _, module := range h.Modules() {
		if module.Symbol() != nil {
			emitter.record(module, "/"+module.Name())
		}
		emitter.walk(module, "/"+module.Name(), false)
	}
	emitter.assertInjective()
	return emitter.result
}

type pathEmitter struct {
	force  bool
	result map[string]string
}

// childEntry pairs a collapsed child with the minimal disambiguation chosen
// within its case-insensitive sibling group.
type childEntry struct {
	name           string
	value          CollapsedValue
	disambiguation Disambiguation
}

// groupedChildren lists the children of a node in emission order. Sibling
// names that normalize to the same URL segment share one disambiguation
// scope. Both the emitter and PathFor derive suffixes from this listing, so
// the forward and reverse maps name every page identically.
func groupedChildren(node *Node) []childEntry {
	groups := map[string][]childEntry{}
	var groupOrder []string
	for _, name := range node.ChildNames() {
		tree, _ := node.ChildTree(name)
		normalized := strings.ToLower(link.Normalize(name))
		if _, found := groups[normalized]; !found {
			groupOrder = append(groupOrder, normalized)
		}
		for _, value := range tree.DisambiguatedValuesWithCollapsedUniqueSymbols() {
			groups[normalized] = append(groups[normalized], childEntry{name: name, value: value})
		}
	}
	sort.Strings(groupOrder)
	var entries []childEntry
	for _, normalized := range groupOrder {
		children := groups[normalized]
		kindCount := map[string]int{}
		for _, child := range children {
			kindCount[kindLabel(child.value.Node.kindKey(), false)]++
		}
		for _, child := range children {
			kind := kindLabel(child.value.Node.kindKey(), false)
			switch {
			case len(children) == 1:
			case kindCount[kind] == 1:
				child.disambiguation = Disambiguation{Kind: kind}
			default:
				child.disambiguation = Disambiguation{Hash: child.value.Node.hashKey()}
			}
			entries = append(entries, child)
		}
	}
	return entries
}

func (e *pathEmitter) walk(node *Node, path string, disambiguated bool) {
	for _, child := range groupedChildren(node) {
		suffix := child.disambiguation.Suffix()
		if suffix == "" && e.force && disambiguated && child.value.Node.Symbol() != nil {
			suffix = "-" + kindLabel(child.value.Node.kindKey(), false)
		}
		childPath := path + "/" + child.name + suffix
		if child.value.Node.Parent() == node {
			e.record(child.value.Node, childPath)
			e.walk(child.value.Node, childPath, suffix != "")
		}
	}
}

func (e *pathEmitter) record(node *Node, path string) {
	symbol := node.Symbol()
	if symbol == nil {
		return
	}
	// cross-language variants collapse onto the primary mapping
	if _, exists := e.result[symbol.Identifier.Precise]; !exists {
		e.result[symbol.Identifier.Precise] = path
	}
}

func (e *pathEmitter) assertInjective() {
	var errs *multierror.Error
	seen := map[string]string{}
	keys := make([]string, 0, len(e.result))
	for precise := range e.result {
		keys = append(keys, precise)
	}
	sort.Strings(keys)
	for _, precise := range keys {
		path := e.result[precise]
		if other, taken := seen[path]; taken {
			errs = multierror.Append(errs, fmt.Errorf("path %s addresses both %s and %s", path, other, precise))
			continue
		}
		seen[path] = precise
	}
	must.Succeed(struct{}{}, errs.ErrorOrNil())
}

// PathFor computes the canonical disambiguated path of a single node by
// walking up to its root. The suffixes agree with DisambiguatedPaths, so a
// path printed by the emitter resolves back through the reverse index.
func (h *Hierarchy) PathFor(node *Node) string {
	var segments []string
	current := node
	for current != nil {
		parent := current.Parent()
		if parent == nil {
			segments = append(segments, current.Name())
			break
		}
		segments = append(segments, current.Name()+minimalSuffix(parent, current))
		current = parent
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return "/" + strings.Join(segments, "/")
}

func minimalSuffix(parent, child *Node) string {
	for _, entry := range groupedChildren(parent) {
		if entry.value.Node == child {
			return entry.disambiguation.Suffix()
		}
		for _, variant := range entry.value.Variants {
			if variant != child {
				continue
			}
			// variants reuse the primary's disambiguation with their own
			// kind and hash
			switch {
			case entry.disambiguation.Hash != "":
				return "-" + child.hashKey()
			case entry.disambiguation.Kind != "":
				return "-" + kindLabel(child.kindKey(), false)
			default:
				return ""
			}
		}
	}
	return ""
}
