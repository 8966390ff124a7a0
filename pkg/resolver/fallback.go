// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"strings"
	"sync"

	"k8s.io/klog/v2"

	"github.com/gardener/doclink/pkg/internal/link"
	"github.com/gardener/doclink/pkg/linkpath"
	"github.com/gardener/doclink/pkg/reference"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// UnresolvedReference describes a link the path hierarchy could not match,
// offered to fallback resolvers as one absolute candidate URL at a time.
type UnresolvedReference struct {
	// TopicURL is the absolute candidate URL to try
	TopicURL string
	// Path is the parsed original link
	Path linkpath.Path
}

//counterfeiter:generate . Fallback

// Fallback is an out-of-band resolver consulted when the path hierarchy has
// no match. It is a separate policy layer, not a retry of the core.
type Fallback interface {
	Resolve(unresolved UnresolvedReference, parent *reference.Identifier, isSymbolLink bool) (*reference.Resolved, error)
}

// AddFallback appends a fallback resolver. Fallbacks are consulted in
// registration order. Not safe to call concurrently with Resolve.
func (r *Resolver) AddFallback(fallback Fallback) {
	r.fallbacks = append(r.fallbacks, fallback)
}

// fallbackCache remembers successful fallback resolutions by absolute URL.
// Resolution may run in parallel, so the cache is concurrent.
type fallbackCache struct {
	entries sync.Map
}

func newFallbackCache() *fallbackCache {
	return &fallbackCache{}
}

func (c *fallbackCache) load(url string) (*reference.Resolved, bool) {
	cached, found := c.entries.Load(url)
	if !found {
		return nil, false
	}
	return cached.(*reference.Resolved), true
}

func (c *fallbackCache) store(url string, resolved *reference.Resolved) {
	c.entries.Store(url, resolved)
}

func (r *Resolver) tryFallbacks(parsed linkpath.Path, parent *reference.Identifier, isSymbolLink bool) *reference.Resolved {
	if len(r.fallbacks) == 0 {
		return nil
	}
	for _, url := range r.candidateURLs(parsed, parent) {
		if cached, found := r.cache.load(url); found {
			return cached
		}
		for _, fallback := range r.fallbacks {
			resolved, err := fallback.Resolve(UnresolvedReference{TopicURL: url, Path: parsed}, parent, isSymbolLink)
			if err != nil || resolved == nil {
				continue
			}
			klog.V(6).Infof("fallback resolver matched %s", url)
			r.cache.store(url, resolved)
			return resolved
		}
	}
	return nil
}

// candidateURLs builds the fixed sequence of places a dangling link may
// live: the articles root, the tutorial technology root, the tutorials
// root, the parent itself, the parent's siblings, the module root and the
// bundle root.
func (r *Resolver) candidateURLs(parsed linkpath.Path, parent *reference.Identifier) []string {
	body := joinComponents(parsed.Components)
	if body == "" {
		return nil
	}
	var candidates []string
	add := func(prefix string) {
		url, err := link.Build(prefix, body)
		if err != nil {
			klog.V(6).Infof("skipping malformed fallback candidate under %s: %v", prefix, err)
			return
		}
		for _, existing := range candidates {
			if existing == url {
				return
			}
		}
		candidates = append(candidates, url)
	}
	add("/" + r.hierarchy.ArticlesContainer().Name())
	add("/" + r.hierarchy.TutorialOverviewContainer().Name())
	add("/" + linkpath.TutorialsSegment)
	if parent != nil {
		if parentNode, found := r.hierarchy.LookupNode(parent); found {
			parentPath := r.hierarchy.PathFor(parentNode)
			add(parentPath)
			if slash := strings.LastIndex(parentPath, "/"); slash > 0 {
				add(parentPath[:slash])
			}
		}
	}
	for _, module := range r.hierarchy.ModuleNames() {
		add("/" + module)
		break
	}
	add("/" + r.hierarchy.BundleID())
	return candidates
}

func joinComponents(components []linkpath.PathComponent) string {
	segments := make([]string, 0, len(components))
	for _, component := range components {
		if component.IsFragment {
			continue
		}
		segments = append(segments, component.Full)
	}
	return strings.Join(segments, "/")
}
