// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package hierarchy builds and owns the path hierarchy: the in-memory tree
// whose paths are the canonical addresses of documentation pages.
package hierarchy

import (
	"strings"

	"k8s.io/klog/v2"

	"github.com/gardener/doclink/pkg/linkpath"
	"github.com/gardener/doclink/pkg/reference"
)

// Hierarchy is the root set of the path hierarchy plus the identifier
// lookup table. It owns every node.
type Hierarchy struct {
	bundleID    string
	displayName string

	modules     map[string]*Node
	moduleOrder []string

	articles          *Node
	tutorials         *Node
	tutorialOverviews *Node

	lookup map[*reference.Identifier]*Node
	frozen bool
}

// New creates an empty hierarchy for the given primary bundle. The three
// non-symbol containers are named after the bundle display name.
func New(bundleID, displayName string) *Hierarchy {
	if displayName == "" {
		displayName = bundleID
	}
	return &Hierarchy{
		bundleID:          bundleID,
		displayName:       displayName,
		modules:           map[string]*Node{},
		articles:          newNonSymbolNode(displayName, KindContainer, bundleID),
		tutorials:         newNonSymbolNode(displayName, KindContainer, bundleID),
		tutorialOverviews: newNonSymbolNode(displayName, KindContainer, bundleID),
		lookup:            map[*reference.Identifier]*Node{},
	}
}

// BundleID is the primary bundle of the hierarchy.
func (h *Hierarchy) BundleID() string { return h.bundleID }

// ArticlesContainer roots all article pages.
func (h *Hierarchy) ArticlesContainer() *Node { return h.articles }

// TutorialContainer roots all tutorial pages.
func (h *Hierarchy) TutorialContainer() *Node { return h.tutorials }

// TutorialOverviewContainer roots all tutorial overview pages.
func (h *Hierarchy) TutorialOverviewContainer() *Node { return h.tutorialOverviews }

// Modules returns the module root nodes in registration order.
func (h *Hierarchy) Modules() []*Node {
	nodes := make([]*Node, 0, len(h.moduleOrder))
	for _, name := range h.moduleOrder {
		if node, found := h.modules[name]; found {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// ModuleNode returns the root node of the named module.
func (h *Hierarchy) ModuleNode(name string) (*Node, bool) {
	node, found := h.modules[name]
	return node, found
}

// ModuleNames returns the registered module names in registration order.
func (h *Hierarchy) ModuleNames() []string {
	names := make([]string, 0, len(h.moduleOrder))
	for _, name := range h.moduleOrder {
		if _, found := h.modules[name]; found {
			names = append(names, name)
		}
	}
	return names
}

func (h *Hierarchy) registerModule(name string, node *Node) {
	if _, found := h.modules[name]; !found {
		h.moduleOrder = append(h.moduleOrder, name)
	}
	h.modules[name] = node
}

// TopLevelSymbols returns the direct symbol children of every module root.
func (h *Hierarchy) TopLevelSymbols() []*Node {
	var nodes []*Node
	for _, module := range h.Modules() {
		for _, name := range module.ChildNames() {
			tree, _ := module.ChildTree(name)
			for _, child := range tree.All() {
				if child.Symbol() != nil {
					nodes = append(nodes, child)
				}
			}
		}
	}
	return nodes
}

// LookupNode resolves a stable identifier back to its node.
func (h *Hierarchy) LookupNode(identifier *reference.Identifier) (*Node, bool) {
	node, found := h.lookup[identifier]
	return node, found
}

// TraverseSymbolAndParentPairs calls the callback for every symbol node of
// the hierarchy together with its parent, in deterministic order.
func (h *Hierarchy) TraverseSymbolAndParentPairs(callback func(node, parent *Node)) {
	for _, root := range h.roots() {
		walk(root, func(node *Node) {
			if node.Symbol() != nil && node.Parent() != nil {
				callback(node, node.Parent())
			}
		})
	}
}

// Walk visits every node of the hierarchy exactly once, in deterministic
// order, descending only through owning parents.
func (h *Hierarchy) Walk(visit func(*Node)) {
	for _, root := range h.roots() {
		walk(root, visit)
	}
}

func (h *Hierarchy) roots() []*Node {
	roots := h.Modules()
	return append(roots, h.articles, h.tutorials, h.tutorialOverviews)
}

func walk(node *Node, visit func(*Node)) {
	visit(node)
	for _, name := range node.ChildNames() {
		tree, _ := node.ChildTree(name)
		for _, child := range tree.All() {
			// shared back references may revisit a child attached under
			// several parents, descend only from the owning one
			if child.Parent() == node {
				walk(child, visit)
			}
		}
	}
}

// Freeze assigns stable identifiers to every findable node and rebuilds the
// lookup table. It is the cut point between mutation and parallel read-only
// resolution: call it after the last graft, before resolving.
func (h *Hierarchy) Freeze() {
	for _, root := range h.roots() {
		h.freezeSubtree(root)
	}
	h.frozen = true
}

func (h *Hierarchy) freezeSubtree(root *Node) {
	walk(root, func(node *Node) {
		if node.identifier != nil || node.IsSparse() {
			return
		}
		identifier := h.identifierFor(node)
		node.identifier = identifier
		// cross-language variants of one symbol share the identifier, the
		// primary language variant owns the lookup entry
		existing, exists := h.lookup[identifier]
		if !exists || (node.language() == linkpath.PrimaryLanguage && existing.language() != linkpath.PrimaryLanguage) {
			h.lookup[identifier] = node
		}
	})
}

func (h *Hierarchy) identifierFor(node *Node) *reference.Identifier {
	if symbol := node.Symbol(); symbol != nil {
		category := reference.Symbol
		if node.Parent() == nil {
			category = reference.Module
		}
		return reference.Intern(category, symbol.Identifier.Precise, node.BundleID(), symbol.Names.Title, "")
	}
	category, fragment := nonSymbolCategory(node)
	id := nodePathID(node)
	if role := h.containerRole(node); role != "" {
		// the three root containers share the bundle display name, the role
		// keeps their identities apart
		id = "/" + role
	}
	return reference.Intern(category, id, node.BundleID(), node.Name(), fragment)
}

func (h *Hierarchy) containerRole(node *Node) string {
	switch node {
	case h.articles:
		return "articles"
	case h.tutorials:
		return "tutorials"
	case h.tutorialOverviews:
		return "tutorialOverviews"
	default:
		return ""
	}
}

func nonSymbolCategory(node *Node) (reference.Category, string) {
	switch node.NonSymbolKind() {
	case KindArticle:
		return reference.Article, ""
	case KindTutorial:
		return reference.Tutorial, ""
	case KindTutorialOverview:
		return reference.TutorialTechnology, ""
	case KindTechnology:
		return reference.Technology, ""
	case KindVolume:
		return reference.Volume, ""
	case KindChapter:
		return reference.Chapter, ""
	case KindAnchor, KindTaskGroup, KindLandmark:
		return reference.AnchorViaFragment, node.Name()
	default:
		return reference.Container, ""
	}
}

// nodePathID derives the identifier string of a non-symbol node from its
// position: the slash joined names up to the root.
func nodePathID(node *Node) string {
	var segments []string
	for current := node; current != nil; current = current.Parent() {
		segments = append(segments, current.Name())
	}
	// reverse for root-first order
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return "/" + strings.Join(segments, "/")
}

// RemoveBundle unregisters every page of the bundle: lookup entries are
// dropped and node identifiers cleared so matches against them fail as
// unfindable, but the nodes stay in the tree to keep subtrees traversable
// during re-registration. Module and technology roots of the bundle are
// removed from the root set.
func (h *Hierarchy) RemoveBundle(bundleID string) {
	for identifier, node := range h.lookup {
		if node.BundleID() == bundleID {
			delete(h.lookup, identifier)
			node.identifier = nil
		}
	}
	for name, node := range h.modules {
		if node.BundleID() == bundleID {
			delete(h.modules, name)
		}
	}
	klog.V(6).Infof("unregistered bundle %s", bundleID)
}
