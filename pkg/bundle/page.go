// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Page is the scanned shape of a markdown page: its name plus the on-page
// marks that become anchor children in the hierarchy.
type Page struct {
	// Name is the frontmatter title or the first level one heading
	Name string
	// Anchors are the slugs of the section headings
	Anchors []string
	// TaskGroups are the level three headings under a "Topics" section
	TaskGroups []string
	// Landmarks are the level two heading titles, verbatim
	Landmarks []string
}

// topicsHeading marks the section whose subsections are task groups.
const topicsHeading = "Topics"

var markdown = goldmark.New(goldmark.WithExtensions(meta.Meta))

// ScanPage extracts the page name and its on-page marks from markdown.
func ScanPage(content []byte) (*Page, error) {
	context := parser.NewContext()
	document := markdown.Parser().Parse(text.NewReader(content), parser.WithContext(context))

	page := &Page{}
	if frontmatter := meta.Get(context); frontmatter != nil {
		if title, found := frontmatter["title"]; found {
			page.Name = fmt.Sprintf("%v", title)
		}
	}

	inTopics := false
	err := ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := headingText(heading, content)
		switch heading.Level {
		case 1:
			if page.Name == "" {
				page.Name = title
			}
		case 2:
			inTopics = title == topicsHeading
			page.Landmarks = append(page.Landmarks, title)
			page.Anchors = append(page.Anchors, Slug(title))
		case 3:
			if inTopics {
				page.TaskGroups = append(page.TaskGroups, title)
			} else {
				page.Anchors = append(page.Anchors, Slug(title))
			}
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown document: %w", err)
	}
	return page, nil
}

func headingText(heading *ast.Heading, content []byte) string {
	var out strings.Builder
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			out.Write(textNode.Segment.Value(content))
		}
	}
	return strings.TrimSpace(out.String())
}

// Slug derives the on-page anchor name of a heading the way renderers do:
// lowercased, spaces to dashes, punctuation dropped.
func Slug(title string) string {
	var out strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == ' ' || r == '-':
			out.WriteRune('-')
		}
	}
	return strings.Trim(out.String(), "-")
}
