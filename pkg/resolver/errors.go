// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"fmt"
	"strings"

	"github.com/gardener/doclink/pkg/hierarchy"
	"github.com/gardener/doclink/pkg/linkpath"
)

// NotFoundError reports that the first component of a link matches no root.
type NotFoundError struct {
	// Remaining are the unresolved components, empty for an empty link
	Remaining []linkpath.PathComponent
	// Available are the top level names a link may start with
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Remaining) == 0 {
		return "no local documentation matches the empty reference"
	}
	return fmt.Sprintf("no top level page or module named %q", e.Remaining[0].Full)
}

// UnfindableMatchError reports a match whose identifier has been cleared,
// either a sparse placeholder or a page of an unregistered bundle.
type UnfindableMatchError struct {
	Node *hierarchy.Node
}

func (e *UnfindableMatchError) Error() string {
	return fmt.Sprintf("%q has no page that can be linked to", e.Node.Name())
}

// NonSymbolMatchForSymbolLinkError reports that a symbol link matched a
// non-symbol page.
type NonSymbolMatchForSymbolLinkError struct{}

func (e *NonSymbolMatchForSymbolLinkError) Error() string {
	return "symbol links can only resolve symbols"
}

// UnknownNameError reports a missing child mid-descent.
type UnknownNameError struct {
	// Partial are the components resolved so far
	Partial []linkpath.PathComponent
	// Remaining starts with the component that failed
	Remaining []linkpath.PathComponent
	// Siblings are the child names available at the failure point
	Siblings []string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("%q doesn't exist at %q", e.Remaining[0].Full, joinPartial(e.Partial))
}

// UnknownDisambiguationError reports that a child name exists but none of
// its entries match the link's kind or hash.
type UnknownDisambiguationError struct {
	Partial   []linkpath.PathComponent
	Remaining []linkpath.PathComponent
	// Candidates are the entries under the name, with correct suffixes
	Candidates []hierarchy.DisambiguatedValue
}

func (e *UnknownDisambiguationError) Error() string {
	return fmt.Sprintf("%q doesn't match any page at %q", e.Remaining[0].Full, joinPartial(e.Partial))
}

// LookupCollisionError reports that two or more children tie for a link.
type LookupCollisionError struct {
	Partial   []linkpath.PathComponent
	Remaining []linkpath.PathComponent
	// Candidates carry the discriminating suffix of every tied entry
	Candidates []hierarchy.DisambiguatedValue
}

func (e *LookupCollisionError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, candidate := range e.Candidates {
		names = append(names, candidate.Node.Name()+candidate.Disambiguation.Suffix())
	}
	return fmt.Sprintf("%q is ambiguous at %q: %s", e.Remaining[0].Full, joinPartial(e.Partial), strings.Join(names, ", "))
}

func joinPartial(partial []linkpath.PathComponent) string {
	segments := make([]string, 0, len(partial))
	for _, component := range partial {
		segments = append(segments, component.Full)
	}
	return "/" + strings.Join(segments, "/")
}
