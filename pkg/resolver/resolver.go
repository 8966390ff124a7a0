// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package resolver answers link queries against a frozen path hierarchy.
// Resolution is read-only and safe to run in parallel once the resolver has
// been constructed.
package resolver

import (
	"errors"
	"sort"

	"k8s.io/klog/v2"

	"github.com/gardener/doclink/pkg/hierarchy"
	"github.com/gardener/doclink/pkg/linkpath"
	"github.com/gardener/doclink/pkg/reference"
)

// Resolver holds the bidirectional mapping between node identifiers and
// resolved references, plus the external and fallback resolver tables.
type Resolver struct {
	hierarchy  *hierarchy.Hierarchy
	references map[*reference.Identifier]*reference.Resolved
	byPath     map[string]*reference.Identifier

	externals map[string]External
	fallbacks []Fallback
	cache     *fallbackCache
}

// New freezes the hierarchy and builds the reference map. The hierarchy
// must not be mutated afterwards except through RemoveBundle.
func New(h *hierarchy.Hierarchy) *Resolver {
	r := &Resolver{
		hierarchy: h,
		externals: map[string]External{},
		cache:     newFallbackCache(),
	}
	h.Freeze()
	r.refresh()
	return r
}

// Hierarchy exposes the underlying path hierarchy read-only.
func (r *Resolver) Hierarchy() *hierarchy.Hierarchy { return r.hierarchy }

func (r *Resolver) refresh() {
	r.references = map[*reference.Identifier]*reference.Resolved{}
	r.byPath = map[string]*reference.Identifier{}
	r.hierarchy.Walk(func(node *hierarchy.Node) {
		identifier := node.Identifier()
		if identifier == nil {
			return
		}
		path := r.hierarchy.PathFor(node)
		if existing, found := r.references[identifier]; found {
			// a cross-language variant of an already mapped symbol only
			// contributes its source languages
			for _, language := range node.Languages() {
				existing.AddLanguage(language)
			}
			r.byPath[path] = identifier
			return
		}
		resolved := reference.NewResolved(node.BundleID(), identifier, path, identifier.Fragment)
		for _, language := range node.Languages() {
			resolved.AddLanguage(language)
		}
		r.references[identifier] = resolved
		r.byPath[path] = identifier
	})
}

// ResolvedReference returns the resolved reference of an identifier.
func (r *Resolver) ResolvedReference(identifier *reference.Identifier) (*reference.Resolved, bool) {
	resolved, found := r.references[identifier]
	return resolved, found
}

// IdentifierForPath returns the identifier addressed by a canonical path.
func (r *Resolver) IdentifierForPath(path string) (*reference.Identifier, bool) {
	identifier, found := r.byPath[path]
	return identifier, found
}

// Paths returns the canonical minimal URL path of every symbol, keyed by
// precise identifier.
func (r *Resolver) Paths() map[string]string {
	return r.hierarchy.DisambiguatedPaths(false)
}

// Parent returns the identifier of the page owning ref, or nil for roots.
func (r *Resolver) Parent(identifier *reference.Identifier) *reference.Identifier {
	node, found := r.hierarchy.LookupNode(identifier)
	if !found || node.Parent() == nil {
		return nil
	}
	return node.Parent().Identifier()
}

// RemoveBundle unregisters a bundle from the hierarchy and drops its
// references. Pages of other bundles keep resolving.
func (r *Resolver) RemoveBundle(bundleID string) {
	r.hierarchy.RemoveBundle(bundleID)
	for identifier, resolved := range r.references {
		if resolved.BundleID == bundleID {
			delete(r.byPath, resolved.Path)
			delete(r.references, identifier)
		}
	}
}

// Resolve finds the unique page a link refers to, relative to an optional
// parent page. With onlyFindSymbols, non-symbol matches are rejected. On
// failure the returned error is one of the variants in errors.go, carrying
// the context the diagnostics formatter needs.
func (r *Resolver) Resolve(link string, parent *reference.Identifier, onlyFindSymbols bool) (*reference.Identifier, error) {
	parsed := linkpath.Parse(link)
	if parsed.BundleID != "" && !r.isLocalBundle(parsed.BundleID) {
		return r.resolveExternal(parsed, onlyFindSymbols)
	}
	components := parsed.Components
	if len(components) > 0 && !components[0].IsFragment {
		if first := components[0].Full; first == linkpath.DocumentationSegment || first == linkpath.TutorialsSegment {
			components = components[1:]
		}
	}

	var (
		node *hierarchy.Node
		err  error
	)
	if !parsed.Absolute && parent != nil {
		node, err = r.resolveRelative(components, parent, onlyFindSymbols)
	} else {
		node, err = r.resolveFromRoots(components, onlyFindSymbols)
	}
	if err != nil {
		if resolved := r.tryFallbacks(parsed, parent, onlyFindSymbols); resolved != nil {
			return resolved.Identifier, nil
		}
		return nil, err
	}
	// unfindable wins over the non-symbol check so sparse placeholders
	// report as unfindable, not as non-symbol matches
	if node.Identifier() == nil {
		return nil, &UnfindableMatchError{Node: node}
	}
	if onlyFindSymbols && node.Symbol() == nil {
		return nil, &NonSymbolMatchForSymbolLinkError{}
	}
	return node.Identifier(), nil
}

func (r *Resolver) isLocalBundle(bundleID string) bool {
	if bundleID == r.hierarchy.BundleID() {
		return true
	}
	for _, resolved := range r.references {
		if resolved.BundleID == bundleID {
			return true
		}
	}
	return false
}

func (r *Resolver) resolveFromRoots(components []linkpath.PathComponent, onlyFindSymbols bool) (*hierarchy.Node, error) {
	if len(components) == 0 {
		return nil, &NotFoundError{Available: r.topLevelNames()}
	}
	first := components[0]
	if !onlyFindSymbols {
		if node, handled, err := r.containerEntry(r.hierarchy.ArticlesContainer(), components, true, onlyFindSymbols); handled {
			return node, err
		}
		if node, handled, err := r.containerEntry(r.hierarchy.TutorialContainer(), components, true, onlyFindSymbols); handled {
			return node, err
		}
		if node, handled, err := r.containerEntry(r.hierarchy.TutorialOverviewContainer(), components, false, onlyFindSymbols); handled {
			return node, err
		}
	}
	if moduleNode, found := r.hierarchy.ModuleNode(first.Name); found {
		return r.descend(moduleNode, components[1:], components[:1], onlyFindSymbols)
	}
	notFound := &NotFoundError{Remaining: components, Available: r.topLevelNames()}
	if modules := r.hierarchy.Modules(); len(modules) == 1 {
		// allow omitting the module prefix, the original error wins when
		// the optimistic descent fails too
		if node, err := r.descend(modules[0], components, nil, onlyFindSymbols); err == nil {
			return node, nil
		}
	}
	return nil, notFound
}

// containerEntry tries a non-symbol container as the entry point of the
// descent: with byName, the first component may name the container itself;
// otherwise, or when it does not, it may name one of its direct children.
func (r *Resolver) containerEntry(container *hierarchy.Node, components []linkpath.PathComponent, byName bool, onlyFindSymbols bool) (*hierarchy.Node, bool, error) {
	first := components[0]
	if byName && container.Matches(first) {
		node, err := r.descend(container, components[1:], components[:1], onlyFindSymbols)
		return node, true, err
	}
	if container.AnyChildMatches(first) {
		node, err := r.descend(container, components, nil, onlyFindSymbols)
		return node, true, err
	}
	return nil, false, nil
}

func (r *Resolver) resolveRelative(components []linkpath.PathComponent, parent *reference.Identifier, onlyFindSymbols bool) (*hierarchy.Node, error) {
	parentNode, found := r.hierarchy.LookupNode(parent)
	if !found {
		return r.resolveFromRoots(components, onlyFindSymbols)
	}
	current := parentNode
	for len(components) > 0 && !components[0].IsFragment {
		if components[0].Full == "." {
			components = components[1:]
			continue
		}
		if components[0].Full == ".." {
			if current.Parent() != nil {
				current = current.Parent()
			}
			components = components[1:]
			continue
		}
		break
	}
	if len(components) == 0 {
		return current, nil
	}
	first := components[0]
	var innerErr error
	for cursor := current; cursor != nil; cursor = cursor.Parent() {
		if cursor.AnyChildMatches(first) {
			node, err := r.descend(cursor, components, nil, onlyFindSymbols)
			if err == nil {
				return node, nil
			}
			// the inner-most error is the most precise report
			if innerErr == nil {
				innerErr = err
			}
		} else if cursor.Matches(first) {
			node, err := r.descend(cursor, components[1:], components[:1], onlyFindSymbols)
			if err == nil {
				return node, nil
			}
			if innerErr == nil {
				innerErr = err
			}
		}
	}
	if innerErr != nil {
		return nil, innerErr
	}
	return r.resolveFromRoots(components, onlyFindSymbols)
}

func (r *Resolver) descend(start *hierarchy.Node, components, consumed []linkpath.PathComponent, onlyFindSymbols bool) (*hierarchy.Node, error) {
	current := start
	partial := append([]linkpath.PathComponent{}, consumed...)
	for i := 0; i < len(components); i++ {
		component := components[i]
		tree, found := current.ChildTree(component.Name)
		if !found && component.Full != component.Name {
			tree, found = current.ChildTree(component.Full)
		}
		if !found {
			return nil, &UnknownNameError{
				Partial:   partial,
				Remaining: components[i:],
				Siblings:  current.ChildNames(),
			}
		}
		node, err := tree.Find(component.Kind, component.Hash, component.Language)
		if err != nil {
			var noMatch *hierarchy.NoMatchError
			var collision *hierarchy.CollisionError
			switch {
			case errors.As(err, &noMatch):
				return nil, &UnknownDisambiguationError{
					Partial:    partial,
					Remaining:  components[i:],
					Candidates: tree.DisambiguatedValues(true),
				}
			case errors.As(err, &collision):
				node = r.resolveCollision(collision, components, i, onlyFindSymbols)
				if node == nil {
					return nil, &LookupCollisionError{
						Partial:    partial,
						Remaining:  components[i:],
						Candidates: collision.Candidates,
					}
				}
			default:
				return nil, err
			}
		}
		if component.IsFragment && !isOnPage(node) {
			return nil, &UnknownNameError{
				Partial:   partial,
				Remaining: components[i:],
				Siblings:  current.ChildNames(),
			}
		}
		current = node
		partial = append(partial, component)
	}
	return current, nil
}

// resolveCollision applies the collision policies: mid-descent a one step
// look-ahead picks the only candidate the next component resolves under, at
// terminal position favored entries win, then the unique (non-)symbol
// depending on the link flavor.
func (r *Resolver) resolveCollision(collision *hierarchy.CollisionError, components []linkpath.PathComponent, index int, onlyFindSymbols bool) *hierarchy.Node {
	if index+1 < len(components) {
		next := components[index+1]
		var matches []*hierarchy.Node
		for _, candidate := range collision.Candidates {
			if candidate.Node.AnyChildMatches(next) {
				matches = append(matches, candidate.Node)
			}
		}
		if len(matches) == 1 {
			return matches[0]
		}
		return nil
	}
	var favored []*hierarchy.Node
	for _, candidate := range collision.Candidates {
		if !candidate.Node.IsDisfavoredInCollision() {
			favored = append(favored, candidate.Node)
		}
	}
	if len(favored) == 1 {
		return favored[0]
	}
	var symbolNodes, nonSymbolNodes []*hierarchy.Node
	for _, candidate := range collision.Candidates {
		if candidate.Node.Symbol() != nil {
			symbolNodes = append(symbolNodes, candidate.Node)
		} else {
			nonSymbolNodes = append(nonSymbolNodes, candidate.Node)
		}
	}
	if onlyFindSymbols && len(symbolNodes) == 1 {
		return symbolNodes[0]
	}
	if !onlyFindSymbols && len(nonSymbolNodes) == 1 {
		return nonSymbolNodes[0]
	}
	return nil
}

func isOnPage(node *hierarchy.Node) bool {
	switch node.NonSymbolKind() {
	case hierarchy.KindAnchor, hierarchy.KindTaskGroup, hierarchy.KindLandmark:
		return true
	default:
		return false
	}
}

func (r *Resolver) topLevelNames() []string {
	names := r.hierarchy.ModuleNames()
	names = append(names, r.hierarchy.ArticlesContainer().Name())
	sort.Strings(names)
	return dedupe(names)
}

func dedupe(sorted []string) []string {
	var out []string
	for _, name := range sorted {
		if len(out) == 0 || out[len(out)-1] != name {
			out = append(out, name)
		}
	}
	return out
}

func (r *Resolver) resolveExternal(parsed linkpath.Path, onlyFindSymbols bool) (*reference.Identifier, error) {
	external, found := r.externals[parsed.BundleID]
	if !found {
		klog.V(6).Infof("no external resolver registered for bundle %s", parsed.BundleID)
		return nil, &NotFoundError{Remaining: parsed.Components, Available: r.topLevelNames()}
	}
	resolved, err := external.ResolveExternal(parsed, onlyFindSymbols)
	if err != nil {
		return nil, err
	}
	return resolved.Identifier, nil
}
