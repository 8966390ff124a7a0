// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"encoding/json"
	"fmt"

	"github.com/gardener/doclink/pkg/hierarchy"
	"github.com/gardener/doclink/pkg/linkpath"
	"github.com/gardener/doclink/pkg/reference"
)

// External resolves links whose bundle identifier names another archive.
type External interface {
	ResolveExternal(path linkpath.Path, isSymbolLink bool) (*reference.Resolved, error)
}

// RegisterExternal installs an external resolver for a bundle identifier.
// Not safe to call concurrently with Resolve.
func (r *Resolver) RegisterExternal(bundleID string, external External) {
	r.externals[bundleID] = external
}

// LinkableEntity is one summary of an external archive's
// linkable-entities.json list.
type LinkableEntity struct {
	ReferenceURL string `json:"referenceURL"`
	Title        string `json:"title"`
	Kind         string `json:"kind,omitempty"`
	Language     string `json:"language,omitempty"`
}

// Archive is a fully reconstructed external documentation archive. It
// resolves links against its own path hierarchy.
type Archive struct {
	bundleID string
	resolver *Resolver
	entities map[string]LinkableEntity
}

// LoadArchive reconstructs an external archive from its serialized link
// hierarchy and its linkable entity summaries.
func LoadArchive(hierarchyJSON, entitiesJSON []byte) (*Archive, error) {
	var serialized hierarchy.SerializedHierarchy
	if err := json.Unmarshal(hierarchyJSON, &serialized); err != nil {
		return nil, fmt.Errorf("failed to decode archive hierarchy: %w", err)
	}
	h, err := hierarchy.FromSerialized(&serialized)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct archive hierarchy: %w", err)
	}
	archive := &Archive{
		bundleID: serialized.BundleID,
		resolver: New(h),
		entities: map[string]LinkableEntity{},
	}
	if len(entitiesJSON) > 0 {
		var entities []LinkableEntity
		if err := json.Unmarshal(entitiesJSON, &entities); err != nil {
			return nil, fmt.Errorf("failed to decode linkable entities: %w", err)
		}
		for _, entity := range entities {
			archive.entities[entity.ReferenceURL] = entity
		}
	}
	return archive, nil
}

// BundleID names the archive's bundle.
func (a *Archive) BundleID() string { return a.bundleID }

// ResolveExternal implements External against the reconstructed hierarchy.
func (a *Archive) ResolveExternal(path linkpath.Path, isSymbolLink bool) (*reference.Resolved, error) {
	link := "/" + joinComponents(path.Components)
	identifier, err := a.resolver.Resolve(link, nil, isSymbolLink)
	if err != nil {
		return nil, err
	}
	resolved, found := a.resolver.ResolvedReference(identifier)
	if !found {
		return nil, fmt.Errorf("archive %s has no reference for %s", a.bundleID, identifier)
	}
	if entity, known := a.entities[resolved.Path]; known && entity.Language != "" {
		resolved.AddLanguage(entity.Language)
	}
	return resolved, nil
}
