// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gardener/doclink/pkg/linkpath"
	"github.com/gardener/doclink/pkg/reference"
	"github.com/gardener/doclink/pkg/symbols"
)

// Non-symbol page kinds. Symbol nodes use the kind identifier of their
// symbol instead.
const (
	KindArticle          = "article"
	KindTutorial         = "tutorial"
	KindTutorialOverview = "tutorialOverview"
	KindTechnology       = "technology"
	KindContainer        = "container"
	KindAnchor           = "anchor"
	KindTaskGroup        = "taskGroup"
	KindLandmark         = "landmark"
	KindVolume           = "volume"
	KindChapter          = "chapter"
)

// Node is one entry of the path hierarchy: a symbol, a non-symbol page or a
// sparse placeholder bridging a missing parent of a partial symbol graph.
type Node struct {
	name   string
	symbol *symbols.Symbol
	// languages the node's symbol is available in, empty for non-symbols
	languages map[string]struct{}
	// kind of a non-symbol page, empty for symbol nodes
	nonSymbolKind string
	bundleID      string

	// ownership is via the parent's children trees, the back reference only
	// serves upward walks and diagnostics
	parent   *Node
	children map[string]*DisambiguationTree

	disfavoredInCollision bool
	identifier            *reference.Identifier
}

func newSymbolNode(symbol *symbols.Symbol, bundleID string) *Node {
	name := symbol.Names.Title
	if count := len(symbol.PathComponents); count > 0 {
		name = symbol.PathComponents[count-1]
	}
	return &Node{
		name:                  name,
		symbol:                symbol,
		languages:             map[string]struct{}{symbol.Identifier.InterfaceLanguage: {}},
		bundleID:              bundleID,
		disfavoredInCollision: symbol.IsSynthesized(),
	}
}

func newNonSymbolNode(name, kind, bundleID string) *Node {
	return &Node{
		name:          name,
		nonSymbolKind: kind,
		bundleID:      bundleID,
	}
}

func newSparseNode(name string) *Node {
	return &Node{
		name:                  name,
		disfavoredInCollision: true,
	}
}

// Name is the path segment name of the node.
func (n *Node) Name() string { return n.name }

// Symbol returns the symbol record, nil for non-symbol pages and
// placeholders.
func (n *Node) Symbol() *symbols.Symbol { return n.symbol }

// Parent is the owning node, nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Identifier is the stable identifier of the node. It is nil for sparse
// placeholders and for nodes whose bundle has been unregistered.
func (n *Node) Identifier() *reference.Identifier { return n.identifier }

// BundleID names the bundle the node belongs to.
func (n *Node) BundleID() string { return n.bundleID }

// IsDisfavoredInCollision reports whether the node loses unqualified lookup
// collisions against favored siblings.
func (n *Node) IsDisfavoredInCollision() bool { return n.disfavoredInCollision }

// IsSparse reports whether the node is a placeholder bridging a missing
// parent.
func (n *Node) IsSparse() bool {
	return n.symbol == nil && n.nonSymbolKind == ""
}

// NonSymbolKind is the page kind of a non-symbol node, empty for symbols.
func (n *Node) NonSymbolKind() string { return n.nonSymbolKind }

// Languages returns the source languages of the node in deterministic order.
func (n *Node) Languages() []string {
	languages := make([]string, 0, len(n.languages))
	for language := range n.languages {
		languages = append(languages, language)
	}
	sort.Strings(languages)
	return languages
}

// kindKey is the disambiguation tree kind the node files under.
func (n *Node) kindKey() string {
	if n.symbol != nil {
		return n.symbol.Kind.Identifier
	}
	return anyValue
}

// hashKey is the disambiguation tree hash the node files under.
func (n *Node) hashKey() string {
	if n.symbol != nil {
		return n.symbol.StableHash()
	}
	return anyValue
}

// preciseID is the precise symbol identifier, empty for non-symbols.
func (n *Node) preciseID() string {
	if n.symbol == nil {
		return ""
	}
	return n.symbol.Identifier.Precise
}

// language is the interface language of the node's symbol.
func (n *Node) language() string {
	if n.symbol == nil {
		return ""
	}
	return n.symbol.Identifier.InterfaceLanguage
}

// ChildTree returns the disambiguation tree of children sharing name.
func (n *Node) ChildTree(name string) (*DisambiguationTree, bool) {
	tree, found := n.children[name]
	return tree, found
}

// ChildNames returns the child names in deterministic order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Matches reports whether the node itself satisfies the path component.
func (n *Node) Matches(component linkpath.PathComponent) bool {
	if n.symbol != nil {
		if component.Name != n.name {
			return false
		}
		if component.Kind != "" && component.Kind != n.symbol.Kind.Identifier {
			return false
		}
		if component.Hash != "" && component.Hash != n.symbol.StableHash() {
			return false
		}
		return true
	}
	return component.Full == n.name
}

// AnyChildMatches reports whether the component names a child of the node.
func (n *Node) AnyChildMatches(component linkpath.PathComponent) bool {
	if _, found := n.children[component.Name]; found {
		return true
	}
	_, found := n.children[component.Full]
	return found
}

// addChild files child under name with the given disambiguation keys. The
// first parent wins, later attachments of the same node elsewhere only merge
// its tree entry. Attachments that would close a cycle are ignored.
func (n *Node) addChild(name, kind, hash string, child *Node) {
	if child == n || n.hasAncestor(child) {
		return
	}
	if n.children == nil {
		n.children = map[string]*DisambiguationTree{}
	}
	tree, found := n.children[name]
	if !found {
		tree = newDisambiguationTree()
		n.children[name] = tree
	}
	tree.Add(kind, hash, child)
	if child.parent == nil {
		child.parent = n
	}
}

func (n *Node) hasAncestor(candidate *Node) bool {
	for ancestor := n.parent; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == candidate {
			return true
		}
	}
	return false
}

func (n *Node) String() string {
	out, err := yaml.Marshal(map[string]interface{}{
		"name":       n.name,
		"kind":       n.kindKey(),
		"hash":       n.hashKey(),
		"bundle":     n.bundleID,
		"disfavored": n.disfavoredInCollision,
	})
	if err != nil {
		return n.name
	}
	return string(out)
}
