// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package reference holds the identity model of documentation pages: unique
// topic identifiers interned in a process wide pool, and resolved references
// that pair an identifier with its canonical path.
package reference

import "sync"

// Category tags what an identifier refers to.
type Category string

// Identifier categories.
const (
	Symbol             Category = "symbol"
	SparseSymbol       Category = "sparseSymbol"
	Article            Category = "article"
	Tutorial           Category = "tutorial"
	TutorialTechnology Category = "tutorialTechnology"
	Technology         Category = "technology"
	Container          Category = "container"
	Volume             Category = "volume"
	Chapter            Category = "chapter"
	Module             Category = "module"
	Placeholder        Category = "placeholder"
	Unresolved         Category = "unresolved"
	AnchorViaFragment  Category = "anchor-via-fragment"
)

// Identifier is a unique topic identifier. Equal identifiers share storage,
// so pointer comparison is identity comparison. Obtain instances through
// Intern only.
type Identifier struct {
	Category    Category
	ID          string
	BundleID    string
	DisplayName string
	Fragment    string
}

// poolKey is the equality domain of identifiers: (category, id, fragment).
type poolKey struct {
	category Category
	id       string
	fragment string
}

var pool = struct {
	sync.Mutex
	interned map[poolKey]*Identifier
}{interned: map[poolKey]*Identifier{}}

// Intern returns the canonical identifier for (category, id, fragment).
// Insertion is idempotent, bundle id and display name are recorded on first
// insertion and kept afterwards.
func Intern(category Category, id, bundleID, displayName, fragment string) *Identifier {
	pool.Lock()
	defer pool.Unlock()
	key := poolKey{category: category, id: id, fragment: fragment}
	if existing, found := pool.interned[key]; found {
		return existing
	}
	identifier := &Identifier{
		Category:    category,
		ID:          id,
		BundleID:    bundleID,
		DisplayName: displayName,
		Fragment:    fragment,
	}
	pool.interned[key] = identifier
	return identifier
}

// InternUnresolved returns the placeholder identifier for a reference that
// could not be resolved.
func InternUnresolved(id string) *Identifier {
	return Intern(Unresolved, id, "", "", "")
}

// Equal reports identifier equality on (category, id, fragment).
func (i *Identifier) Equal(other *Identifier) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.Category == other.Category && i.ID == other.ID && i.Fragment == other.Fragment
}

// WithFragment returns the interned AnchorViaFragment identifier that shares
// this identifier's id but points at an on-page fragment.
func (i *Identifier) WithFragment(fragment string) *Identifier {
	return Intern(AnchorViaFragment, i.ID, i.BundleID, i.DisplayName, fragment)
}

func (i *Identifier) String() string {
	if i.Fragment != "" {
		return string(i.Category) + ":" + i.ID + "#" + i.Fragment
	}
	return string(i.Category) + ":" + i.ID
}
