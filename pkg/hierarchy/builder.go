// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"k8s.io/klog/v2"

	"github.com/gardener/doclink/pkg/internal/must"
	"github.com/gardener/doclink/pkg/linkpath"
	"github.com/gardener/doclink/pkg/symbols"
)

// BuildOptions parameterize a hierarchy build.
type BuildOptions struct {
	// BundleID names the bundle the graphs belong to
	BundleID string
	// DisplayName names the non-symbol containers, defaults to BundleID
	DisplayName string
	// KnownDisambiguatedPathComponents substitutes the raw path components
	// of a symbol (by precise identifier) with pre-disambiguated ones. Used
	// when grafting partial graphs whose raw components are ambiguous.
	KnownDisambiguatedPathComponents map[string][]string
}

// builder accumulates state across the ordered graph stream.
type builder struct {
	hierarchy *Hierarchy
	options   BuildOptions
	// nodes by (precise, interfaceLanguage), across all graphs
	nodes map[symbols.Identifier]*Node
	// nodes by precise identifier alone, for cross-module targets
	byPrecise map[string][]*Node
}

// Build consumes module symbol graphs in the given order and produces a
// fully populated, frozen hierarchy. The order is significant: the first
// graph of a module owns its root creation and breaks disambiguation ties,
// so callers pass primary graphs before extension graphs (see
// symbols.SortGraphFiles).
func Build(graphs []*symbols.Graph, options BuildOptions) (*Hierarchy, error) {
	b := &builder{
		hierarchy: New(options.BundleID, options.DisplayName),
		options:   options,
		nodes:     map[symbols.Identifier]*Node{},
		byPrecise: map[string][]*Node{},
	}
	var errs *multierror.Error
	for _, graph := range graphs {
		if err := b.consume(graph); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("consuming symbol graph of module %s failed: %w", graph.Module.Name, err))
		}
	}
	b.hierarchy.Freeze()
	return b.hierarchy, errs.ErrorOrNil()
}

func (b *builder) consume(graph *symbols.Graph) error {
	moduleNode := b.ensureModule(graph.Module.Name)

	// create or reuse one node per symbol
	graphNodes := map[string][]*Node{}
	attached := map[*Node]bool{}
	for _, symbol := range graph.Symbols {
		node := b.ensureNode(symbol)
		graphNodes[symbol.Identifier.Precise] = append(graphNodes[symbol.Identifier.Precise], node)
	}

	// parentage via relationships is preferred over path components because
	// relationships carry exact identities
	for _, relationship := range graph.Relationships {
		if !isMembership(relationship.Kind) {
			continue
		}
		sources := graphNodes[relationship.Source]
		targets := graphNodes[relationship.Target]
		if len(targets) == 0 {
			// cross-module extension, attach under every known target
			targets = b.byPrecise[relationship.Target]
		}
		if len(targets) == 0 {
			klog.V(6).Infof("membership target %s not known yet, %s falls back to path components", relationship.Target, relationship.Source)
			continue
		}
		for _, source := range sources {
			for _, target := range targets {
				target.addChild(source.Name(), source.kindKey(), source.hashKey(), source)
			}
			attached[source] = true
		}
	}

	// default implementations live beside the requirement they implement
	// and lose unqualified collisions against it
	for _, relationship := range graph.Relationships {
		if relationship.Kind != symbols.DefaultImplementationOf {
			continue
		}
		sources := graphNodes[relationship.Source]
		targets := graphNodes[relationship.Target]
		if len(targets) == 0 {
			targets = b.byPrecise[relationship.Target]
		}
		for _, source := range sources {
			source.disfavoredInCollision = true
			for _, target := range targets {
				requirementParent := target.Parent()
				if requirementParent == nil {
					continue
				}
				requirementParent.addChild(source.Name(), source.kindKey(), source.hashKey(), source)
				attached[source] = true
			}
		}
	}

	// remaining placement in symbol order for repeatable results
	for _, symbol := range graph.Symbols {
		node := b.nodes[symbol.Identifier]
		if node == nil || attached[node] || node.Parent() != nil {
			continue
		}
		if len(symbol.PathComponents) <= 1 {
			moduleNode.addChild(node.Name(), node.kindKey(), node.hashKey(), node)
			continue
		}
		b.graftByPathComponents(moduleNode, node.Symbol(), node)
	}
	return nil
}

// ensureModule returns the root node of the module, synthesizing a module
// symbol when this is the first graph that mentions it.
func (b *builder) ensureModule(name string) *Node {
	if node, found := b.hierarchy.ModuleNode(name); found {
		return node
	}
	symbol := &symbols.Symbol{
		Identifier: symbols.Identifier{
			Precise:           name,
			InterfaceLanguage: linkpath.PrimaryLanguage,
		},
		Kind:           symbols.Kind{Identifier: "module"},
		Names:          symbols.Names{Title: name},
		PathComponents: []string{name},
	}
	node := newSymbolNode(symbol, b.options.BundleID)
	b.hierarchy.registerModule(name, node)
	klog.V(6).Infof("registered module root %s", name)
	return node
}

func (b *builder) ensureNode(symbol *symbols.Symbol) *Node {
	if existing, found := b.nodes[symbol.Identifier]; found {
		return existing
	}
	node := newSymbolNode(symbol, b.options.BundleID)
	b.nodes[symbol.Identifier] = node
	b.byPrecise[symbol.Identifier.Precise] = append(b.byPrecise[symbol.Identifier.Precise], node)
	return node
}

// graftByPathComponents attaches a symbol the relationships did not place by
// walking its path components from the module root. Missing intermediate
// parents of a partial graph are bridged with sparse placeholders.
func (b *builder) graftByPathComponents(moduleNode *Node, symbol *symbols.Symbol, node *Node) {
	components := symbol.PathComponents
	if known, found := b.options.KnownDisambiguatedPathComponents[symbol.Identifier.Precise]; found && len(known) == len(components) {
		components = known
	}
	must.BeTrue(len(components) > 0)

	current := moduleNode
	for _, raw := range components[:len(components)-1] {
		component := linkpath.ParseComponent(raw)
		child, err := findChild(current, component)
		if err != nil {
			placeholder := newSparseNode(component.Name)
			current.addChild(component.Name, anyValue, anyValue, placeholder)
			klog.V(6).Infof("inserted sparse placeholder %s under %s for %s", component.Name, current.Name(), symbol.Identifier.Precise)
			child = placeholder
		}
		current = child
	}
	last := linkpath.ParseComponent(components[len(components)-1])
	current.addChild(last.Name, node.kindKey(), node.hashKey(), node)
}

func findChild(parent *Node, component linkpath.PathComponent) (*Node, error) {
	tree, found := parent.ChildTree(component.Name)
	if !found {
		return nil, &NoMatchError{Kind: component.Kind, Hash: component.Hash}
	}
	return tree.Find(component.Kind, component.Hash, component.Language)
}

func isMembership(kind string) bool {
	switch kind {
	case symbols.MemberOf, symbols.RequirementOf, symbols.OptionalRequirementOf:
		return true
	default:
		return false
	}
}
