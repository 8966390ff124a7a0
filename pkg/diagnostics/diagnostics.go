// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package diagnostics formats resolution failures into human readable
// reports with fix-it solutions. Replacement ranges are relative to the
// body of the original reference, callers translate them into source
// coordinates.
package diagnostics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gardener/doclink/pkg/linkpath"
	"github.com/gardener/doclink/pkg/resolver"
)

// Replacement substitutes a range of the original link body.
type Replacement struct {
	// Start and End are byte offsets into the link body, End exclusive
	Start int
	End   int
	Text  string
}

// Solution is one way to fix a failed reference.
type Solution struct {
	Summary      string
	Replacements []Replacement
}

// ErrorInfo is the formatted report of a resolution failure.
type ErrorInfo struct {
	Message   string
	Solutions []Solution
}

const maxSuggestions = 5

// Format converts a resolution failure into its report. Unknown error
// values produce a report with the bare error text and no solutions.
func Format(link string, err error) ErrorInfo {
	var (
		notFound      *resolver.NotFoundError
		unfindable    *resolver.UnfindableMatchError
		nonSymbol     *resolver.NonSymbolMatchForSymbolLinkError
		unknownName   *resolver.UnknownNameError
		unknownDisamb *resolver.UnknownDisambiguationError
		collision     *resolver.LookupCollisionError
	)
	switch {
	case errors.As(err, &notFound):
		return formatNotFound(link, notFound)
	case errors.As(err, &unfindable):
		return ErrorInfo{Message: unfindable.Error()}
	case errors.As(err, &nonSymbol):
		return formatNonSymbolMatch(link)
	case errors.As(err, &unknownName):
		return formatUnknownName(link, unknownName)
	case errors.As(err, &unknownDisamb):
		return formatUnknownDisambiguation(link, unknownDisamb)
	case errors.As(err, &collision):
		return formatCollision(link, collision)
	default:
		return ErrorInfo{Message: err.Error()}
	}
}

func formatNotFound(link string, failure *resolver.NotFoundError) ErrorInfo {
	if len(failure.Remaining) == 0 {
		return ErrorInfo{Message: failure.Error()}
	}
	component := failure.Remaining[0]
	start, end := componentRange(link, nil, component)
	return ErrorInfo{
		Message:   failure.Error(),
		Solutions: nearMissSolutions(component.Full, failure.Available, start, end),
	}
}

func formatUnknownName(link string, failure *resolver.UnknownNameError) ErrorInfo {
	component := failure.Remaining[0]
	start, end := componentRange(link, failure.Partial, component)
	return ErrorInfo{
		Message:   failure.Error(),
		Solutions: nearMissSolutions(component.Name, failure.Siblings, start, end),
	}
}

func formatUnknownDisambiguation(link string, failure *resolver.UnknownDisambiguationError) ErrorInfo {
	component := failure.Remaining[0]
	start, end := componentRange(link, failure.Partial, component)
	var solutions []Solution
	for _, candidate := range failure.Candidates {
		correct := candidate.Node.Name() + candidate.Disambiguation.Suffix()
		solutions = append(solutions, Solution{
			Summary:      fmt.Sprintf("Replace %q with %q", component.Full, correct),
			Replacements: []Replacement{{Start: start, End: end, Text: correct}},
		})
	}
	return ErrorInfo{Message: failure.Error(), Solutions: solutions}
}

func formatCollision(link string, failure *resolver.LookupCollisionError) ErrorInfo {
	component := failure.Remaining[0]
	start, end := componentRange(link, failure.Partial, component)
	var solutions []Solution
	for _, candidate := range failure.Candidates {
		title := candidate.Node.Name()
		if symbol := candidate.Node.Symbol(); symbol != nil {
			title = symbol.Declaration()
		}
		replacement := candidate.Node.Name() + candidate.Disambiguation.Suffix()
		solutions = append(solutions, Solution{
			Summary:      fmt.Sprintf("Insert %q for %q", candidate.Disambiguation.Suffix(), title),
			Replacements: []Replacement{{Start: start, End: end, Text: replacement}},
		})
	}
	return ErrorInfo{Message: failure.Error(), Solutions: solutions}
}

func formatNonSymbolMatch(link string) ErrorInfo {
	return ErrorInfo{
		Message: "symbol links can only resolve symbols",
		Solutions: []Solution{{
			Summary: fmt.Sprintf("Use a '<doc:%s>' style reference instead", link),
			Replacements: []Replacement{
				{Start: 0, End: 0, Text: "<doc:"},
				{Start: len(link), End: len(link), Text: ">"},
			},
		}},
	}
}

// nearMissSolutions proposes the closest available names by edit distance.
func nearMissSolutions(written string, available []string, start, end int) []Solution {
	type scored struct {
		name     string
		distance int
	}
	var matches []scored
	for _, name := range available {
		distance := editDistance(strings.ToLower(written), strings.ToLower(name))
		if distance <= suggestionThreshold(written) {
			matches = append(matches, scored{name: name, distance: distance})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	var solutions []Solution
	for _, match := range matches {
		solutions = append(solutions, Solution{
			Summary:      fmt.Sprintf("Replace %q with %q", written, match.name),
			Replacements: []Replacement{{Start: start, End: end, Text: match.name}},
		})
	}
	return solutions
}

func suggestionThreshold(written string) int {
	threshold := len(written) / 3
	if threshold < 2 {
		threshold = 2
	}
	return threshold
}

// componentRange locates the failing component within the link body by
// advancing over the components resolved before it.
func componentRange(link string, partial []linkpath.PathComponent, component linkpath.PathComponent) (int, int) {
	cursor := 0
	for _, resolved := range partial {
		index := strings.Index(link[cursor:], resolved.Full)
		if index < 0 {
			break
		}
		cursor += index + len(resolved.Full)
	}
	index := strings.Index(link[cursor:], component.Full)
	if index < 0 {
		return 0, len(link)
	}
	start := cursor + index
	return start, start + len(component.Full)
}

// editDistance is the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)
	for j := range previous {
		previous[j] = j
	}
	for i := 1; i <= len(a); i++ {
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[j] = min(previous[j]+1, min(current[j-1]+1, previous[j-1]+cost))
		}
		previous, current = current, previous
	}
	return previous[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
