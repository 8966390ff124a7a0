// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy

import (
	"encoding/json"
	"fmt"

	"github.com/gardener/doclink/pkg/symbols"
)

// SerializedNode is the on-disk shape of one hierarchy node.
type SerializedNode struct {
	Name       string           `json:"name"`
	Precise    string           `json:"precise,omitempty"`
	Language   string           `json:"interfaceLanguage,omitempty"`
	Kind       string           `json:"kind,omitempty"`
	Title      string           `json:"title,omitempty"`
	PageKind   string           `json:"pageKind,omitempty"`
	Disfavored bool             `json:"disfavoredInCollision,omitempty"`
	Sparse     bool             `json:"sparse,omitempty"`
	Children   []SerializedNode `json:"children,omitempty"`
}

// SerializedHierarchy is the on-disk shape of a whole path hierarchy, the
// same shape external archives ship.
type SerializedHierarchy struct {
	BundleID          string           `json:"bundleID"`
	DisplayName       string           `json:"displayName"`
	Modules           []SerializedNode `json:"modules,omitempty"`
	Articles          []SerializedNode `json:"articles,omitempty"`
	Tutorials         []SerializedNode `json:"tutorials,omitempty"`
	TutorialOverviews []SerializedNode `json:"tutorialOverviews,omitempty"`
}

// Serialize renders the hierarchy into its archive shape.
func (h *Hierarchy) Serialize() *SerializedHierarchy {
	serialized := &SerializedHierarchy{
		BundleID:    h.bundleID,
		DisplayName: h.displayName,
	}
	for _, module := range h.Modules() {
		serialized.Modules = append(serialized.Modules, serializeNode(module))
	}
	serialized.Articles = serializeChildren(h.articles)
	serialized.Tutorials = serializeChildren(h.tutorials)
	serialized.TutorialOverviews = serializeChildren(h.tutorialOverviews)
	return serialized
}

// MarshalJSON renders the archive shape directly.
func (h *Hierarchy) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Serialize())
}

func serializeChildren(node *Node) []SerializedNode {
	var out []SerializedNode
	for _, name := range node.ChildNames() {
		tree, _ := node.ChildTree(name)
		for _, child := range tree.All() {
			if child.Parent() == node {
				out = append(out, serializeNode(child))
			}
		}
	}
	return out
}

func serializeNode(node *Node) SerializedNode {
	serialized := SerializedNode{
		Name:       node.Name(),
		PageKind:   node.NonSymbolKind(),
		Disfavored: node.IsDisfavoredInCollision(),
		Sparse:     node.IsSparse(),
	}
	if symbol := node.Symbol(); symbol != nil {
		serialized.Precise = symbol.Identifier.Precise
		serialized.Language = symbol.Identifier.InterfaceLanguage
		serialized.Kind = symbol.Kind.Identifier
		serialized.Title = symbol.Names.Title
	}
	serialized.Children = serializeChildren(node)
	return serialized
}

// FromSerialized reconstructs an identical hierarchy from its archive
// shape. The result is frozen and ready for resolution.
func FromSerialized(serialized *SerializedHierarchy) (*Hierarchy, error) {
	h := New(serialized.BundleID, serialized.DisplayName)
	for _, module := range serialized.Modules {
		node, err := deserializeNode(module, serialized.BundleID)
		if err != nil {
			return nil, err
		}
		h.registerModule(module.Name, node)
	}
	if err := deserializeChildren(h.articles, serialized.Articles, serialized.BundleID); err != nil {
		return nil, err
	}
	if err := deserializeChildren(h.tutorials, serialized.Tutorials, serialized.BundleID); err != nil {
		return nil, err
	}
	if err := deserializeChildren(h.tutorialOverviews, serialized.TutorialOverviews, serialized.BundleID); err != nil {
		return nil, err
	}
	h.Freeze()
	return h, nil
}

func deserializeChildren(parent *Node, children []SerializedNode, bundleID string) error {
	for _, child := range children {
		node, err := deserializeNode(child, bundleID)
		if err != nil {
			return err
		}
		parent.addChild(node.Name(), node.kindKey(), node.hashKey(), node)
	}
	return nil
}

func deserializeNode(serialized SerializedNode, bundleID string) (*Node, error) {
	var node *Node
	switch {
	case serialized.Sparse:
		node = newSparseNode(serialized.Name)
	case serialized.Precise != "":
		symbol := &symbols.Symbol{
			Identifier: symbols.Identifier{
				Precise:           serialized.Precise,
				InterfaceLanguage: serialized.Language,
			},
			Kind:           symbols.Kind{Identifier: serialized.Kind},
			Names:          symbols.Names{Title: serialized.Title},
			PathComponents: []string{serialized.Name},
		}
		node = newSymbolNode(symbol, bundleID)
		node.disfavoredInCollision = serialized.Disfavored
	case serialized.PageKind != "":
		node = newNonSymbolNode(serialized.Name, serialized.PageKind, bundleID)
	default:
		return nil, fmt.Errorf("serialized node %q is neither a symbol, a page nor sparse", serialized.Name)
	}
	if err := deserializeChildren(node, serialized.Children, bundleID); err != nil {
		return nil, err
	}
	return node, nil
}
