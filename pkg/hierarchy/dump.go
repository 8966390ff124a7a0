// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy

import "strings"

// Dump renders the hierarchy as a tree for debugging. The output is
// deterministic for identical builds.
func (h *Hierarchy) Dump() string {
	var out strings.Builder
	for _, root := range h.roots() {
		if root.children == nil && root.NonSymbolKind() == KindContainer {
			continue
		}
		dumpNode(&out, root, root.Name(), "")
		out.WriteString("\n")
	}
	return out.String()
}

func dumpNode(out *strings.Builder, node *Node, label, prefix string) {
	out.WriteString(label)
	out.WriteString("\n")

	type row struct {
		label string
		node  *Node
	}
	var rows []row
	for _, name := range node.ChildNames() {
		tree, _ := node.ChildTree(name)
		for _, value := range tree.DisambiguatedValues(true) {
			if value.Node.Parent() != node {
				continue
			}
			rows = append(rows, row{label: name + value.Disambiguation.Suffix(), node: value.Node})
		}
	}
	for i, r := range rows {
		last := i == len(rows)-1
		glyph, continuation := "├ ", "│ "
		if last {
			glyph, continuation = "╰ ", "  "
		}
		out.WriteString(prefix)
		out.WriteString(glyph)
		dumpNode(out, r.node, r.label, prefix+continuation)
	}
}
