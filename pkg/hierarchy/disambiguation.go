// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy

import (
	"sort"
	"strings"

	"github.com/gardener/doclink/pkg/linkpath"
)

// anyValue keys non-symbol entries, which carry neither kind nor hash.
const anyValue = "_"

// DisambiguationTree is the bag of same-named children of a node, keyed by
// kind and stable hash. A populated tree has at least one entry.
type DisambiguationTree struct {
	// kind → hash → node. Secondary-language variants of a symbol that
	// would collide with the primary variant on (kind, hash) are filed
	// under a language qualified kind key, e.g. "objc.method".
	storage map[string]map[string]*Node
}

// Disambiguation is the minimal label distinguishing one entry from its
// siblings: nothing, a kind suffix or a hash suffix.
type Disambiguation struct {
	Kind string
	Hash string
}

// Suffix renders the disambiguation as a path segment suffix.
func (d Disambiguation) Suffix() string {
	switch {
	case d.Hash != "":
		return "-" + d.Hash
	case d.Kind != "":
		return "-" + d.Kind
	default:
		return ""
	}
}

// DisambiguatedValue pairs an entry with its minimal disambiguation.
type DisambiguatedValue struct {
	Node           *Node
	Disambiguation Disambiguation
}

// CollapsedValue is a DisambiguatedValue whose cross-language variants have
// been folded into the primary language entry.
type CollapsedValue struct {
	Node           *Node
	Variants       []*Node
	Disambiguation Disambiguation
}

// CollisionError reports that a lookup matched several entries.
type CollisionError struct {
	Candidates []DisambiguatedValue
}

func (e *CollisionError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, candidate := range e.Candidates {
		names = append(names, candidate.Node.Name()+candidate.Disambiguation.Suffix())
	}
	return "reference is ambiguous between " + strings.Join(names, ", ")
}

// NoMatchError reports that a name exists but the requested disambiguation
// matches none of its entries.
type NoMatchError struct {
	Kind string
	Hash string
}

func (e *NoMatchError) Error() string {
	return "no entry matches disambiguation kind " + orAny(e.Kind) + " hash " + orAny(e.Hash)
}

func orAny(value string) string {
	if value == "" {
		return anyValue
	}
	return value
}

func newDisambiguationTree() *DisambiguationTree {
	return &DisambiguationTree{storage: map[string]map[string]*Node{}}
}

// Count returns the number of entries.
func (t *DisambiguationTree) Count() int {
	count := 0
	for _, hashes := range t.storage {
		count += len(hashes)
	}
	return count
}

// All returns every entry in deterministic order.
func (t *DisambiguationTree) All() []*Node {
	var nodes []*Node
	for _, kind := range t.sortedKinds() {
		hashes := t.storage[kind]
		for _, hash := range sortedKeys(hashes) {
			nodes = append(nodes, hashes[hash])
		}
	}
	return nodes
}

func (t *DisambiguationTree) sortedKinds() []string {
	kinds := make([]string, 0, len(t.storage))
	for kind := range t.storage {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func sortedKeys(m map[string]*Node) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Add files node under (kind, hash). A collision with an existing entry
// merges the two subtrees. A lone sparse placeholder is replaced by the
// first real node that arrives, inheriting the placeholder's children.
func (t *DisambiguationTree) Add(kind, hash string, node *Node) {
	if t.replacePlaceholder(node) {
		return
	}
	hashes, found := t.storage[kind]
	if !found {
		hashes = map[string]*Node{}
		t.storage[kind] = hashes
	}
	existing, occupied := hashes[hash]
	if !occupied {
		hashes[hash] = node
		return
	}
	if existing == node {
		return
	}
	if existing.preciseID() != "" && existing.preciseID() == node.preciseID() && existing.language() != node.language() {
		t.addLanguageVariant(kind, hash, existing, node)
		return
	}
	mergeNodes(existing, node)
}

// addLanguageVariant stores cross-language duplicates of one symbol: the
// primary language variant owns the plain kind key, others move to a
// language qualified key.
func (t *DisambiguationTree) addLanguageVariant(kind, hash string, existing, incoming *Node) {
	primary, secondary := existing, incoming
	if incoming.language() == linkpath.PrimaryLanguage {
		primary, secondary = incoming, existing
	}
	t.storage[kind][hash] = primary
	qualified := secondary.language() + "." + kind
	if t.storage[qualified] == nil {
		t.storage[qualified] = map[string]*Node{}
	}
	t.storage[qualified][hash] = secondary
}

func (t *DisambiguationTree) replacePlaceholder(node *Node) bool {
	if node.IsSparse() || t.Count() != 1 {
		return false
	}
	placeholder, found := t.storage[anyValue][anyValue]
	if !found || !placeholder.IsSparse() {
		return false
	}
	mergeNodes(node, placeholder)
	if node.parent == nil {
		node.parent = placeholder.parent
	}
	delete(t.storage[anyValue], anyValue)
	if len(t.storage[anyValue]) == 0 {
		delete(t.storage, anyValue)
	}
	t.storage[node.kindKey()] = map[string]*Node{node.hashKey(): node}
	return true
}

// mergeNodes folds src into dst: children are merged tree by tree and the
// source languages are united. dst keeps its identity.
func mergeNodes(dst, src *Node) {
	if dst == src {
		return
	}
	for name, srcTree := range src.children {
		for _, child := range srcTree.All() {
			if child.parent == src {
				child.parent = dst
			}
		}
		if dst.children == nil {
			dst.children = map[string]*DisambiguationTree{}
		}
		if dstTree, found := dst.children[name]; found {
			dstTree.Merge(srcTree)
		} else {
			dst.children[name] = srcTree
		}
	}
	src.children = nil
	if dst.languages == nil && src.languages != nil {
		dst.languages = map[string]struct{}{}
	}
	for language := range src.languages {
		dst.languages[language] = struct{}{}
	}
}

// Merge unions other into the tree. Entries colliding on (kind, hash) merge
// node-wise.
func (t *DisambiguationTree) Merge(other *DisambiguationTree) {
	for kind, hashes := range other.storage {
		for hash, node := range hashes {
			t.Add(kind, hash, node)
		}
	}
}

// Find looks an entry up by optional kind, hash and language. A lookup that
// matches several entries of distinct symbols returns a CollisionError; when
// every match is the same symbol in a different language, the primary
// language variant wins.
func (t *DisambiguationTree) Find(kind, hash, language string) (*Node, error) {
	candidates := t.collect(kind, hash, language)
	switch len(candidates) {
	case 0:
		return nil, &NoMatchError{Kind: kind, Hash: hash}
	case 1:
		return candidates[0], nil
	}
	if collapsed := collapseUniqueSymbol(candidates); collapsed != nil {
		return collapsed, nil
	}
	return nil, &CollisionError{Candidates: t.labelCandidates(candidates)}
}

func (t *DisambiguationTree) collect(kind, hash, language string) []*Node {
	switch {
	case kind != "" && hash != "":
		if node := t.lookupKind(kind, language)[hash]; node != nil {
			return []*Node{node}
		}
		return nil
	case kind != "":
		group := t.lookupKind(kind, language)
		nodes := make([]*Node, 0, len(group))
		for _, key := range sortedKeys(group) {
			nodes = append(nodes, group[key])
		}
		return nodes
	case hash != "":
		var nodes []*Node
		for _, kindKey := range t.sortedKinds() {
			if node, found := t.storage[kindKey][hash]; found {
				nodes = append(nodes, node)
			}
		}
		return filterLanguage(nodes, language)
	default:
		return filterLanguage(t.All(), language)
	}
}

// lookupKind resolves a kind key honoring an optional language qualifier:
// "objc" + "method" matches the dedicated "objc.method" key when present,
// otherwise the plain key filtered to Objective-C entries.
func (t *DisambiguationTree) lookupKind(kind, language string) map[string]*Node {
	if language == "" {
		return t.storage[kind]
	}
	if qualified, found := t.storage[language+"."+kind]; found {
		return qualified
	}
	filtered := map[string]*Node{}
	for hash, node := range t.storage[kind] {
		if node.language() == language {
			filtered[hash] = node
		}
	}
	return filtered
}

func filterLanguage(nodes []*Node, language string) []*Node {
	if language == "" {
		return nodes
	}
	var filtered []*Node
	for _, node := range nodes {
		if node.language() == language {
			filtered = append(filtered, node)
		}
	}
	return filtered
}

// collapseUniqueSymbol returns the primary language variant when every
// candidate is the same symbol, nil otherwise.
func collapseUniqueSymbol(candidates []*Node) *Node {
	precise := candidates[0].preciseID()
	if precise == "" {
		return nil
	}
	for _, candidate := range candidates[1:] {
		if candidate.preciseID() != precise {
			return nil
		}
	}
	for _, candidate := range candidates {
		if candidate.language() == linkpath.PrimaryLanguage {
			return candidate
		}
	}
	return candidates[0]
}

func (t *DisambiguationTree) labelCandidates(candidates []*Node) []DisambiguatedValue {
	labeled := t.DisambiguatedValues(true)
	var result []DisambiguatedValue
	for _, value := range labeled {
		for _, candidate := range candidates {
			if value.Node == candidate {
				result = append(result, value)
				break
			}
		}
	}
	return result
}

// DisambiguatedValues computes the minimal disambiguation of every entry:
// nothing when the entry is alone, its kind when unique within the kind
// group, its hash otherwise. With includeLanguage false, language qualified
// kind keys are reduced to the bare kind.
func (t *DisambiguationTree) DisambiguatedValues(includeLanguage bool) []DisambiguatedValue {
	total := t.Count()
	var values []DisambiguatedValue
	for _, kind := range t.sortedKinds() {
		hashes := t.storage[kind]
		for _, hash := range sortedKeys(hashes) {
			node := hashes[hash]
			disambiguation := Disambiguation{}
			switch {
			case total == 1:
			case len(hashes) == 1:
				disambiguation.Kind = kindLabel(kind, includeLanguage)
			default:
				disambiguation.Hash = hash
			}
			values = append(values, DisambiguatedValue{Node: node, Disambiguation: disambiguation})
		}
	}
	return values
}

func kindLabel(kind string, includeLanguage bool) string {
	if includeLanguage {
		return kind
	}
	if dot := strings.Index(kind, "."); dot >= 0 {
		return kind[dot+1:]
	}
	return kind
}

// DisambiguatedValuesWithCollapsedUniqueSymbols groups entries sharing one
// precise symbol identifier across languages, so a multi-language symbol
// appears once under the primary language's disambiguation with the other
// variants attached.
func (t *DisambiguationTree) DisambiguatedValuesWithCollapsedUniqueSymbols() []CollapsedValue {
	type group struct {
		primary  *Node
		variants []*Node
		kind     string
		hash     string
	}
	var (
		order  []string
		groups = map[string]*group{}
	)
	for _, kind := range t.sortedKinds() {
		hashes := t.storage[kind]
		for _, hash := range sortedKeys(hashes) {
			node := hashes[hash]
			key := node.preciseID()
			if key == "" {
				// non-symbols never collapse
				key = anyValue + ":" + node.name + ":" + kind + ":" + hash
			}
			existing, found := groups[key]
			if !found {
				groups[key] = &group{primary: node, kind: kindLabel(kind, false), hash: hash}
				order = append(order, key)
				continue
			}
			if node.language() == linkpath.PrimaryLanguage {
				existing.variants = append(existing.variants, existing.primary)
				existing.primary = node
				existing.kind = kindLabel(kind, false)
				existing.hash = hash
			} else {
				existing.variants = append(existing.variants, node)
			}
		}
	}
	kindCount := map[string]int{}
	for _, key := range order {
		kindCount[groups[key].kind]++
	}
	var values []CollapsedValue
	for _, key := range order {
		g := groups[key]
		disambiguation := Disambiguation{}
		switch {
		case len(order) == 1:
		case kindCount[g.kind] == 1:
			disambiguation.Kind = g.kind
		default:
			disambiguation.Hash = g.hash
		}
		values = append(values, CollapsedValue{Node: g.primary, Variants: g.variants, Disambiguation: disambiguation})
	}
	return values
}
