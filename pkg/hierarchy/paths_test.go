// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy_test

import (
	"github.com/gardener/doclink/pkg/symbols"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DisambiguatedPaths", func() {
	It("addresses colliding containers by kind", func() {
		h := build(twoFooGraph())
		paths := h.DisambiguatedPaths(false)
		Expect(paths["s:MyKit3FooV"]).To(Equal("/MyKit/Foo-struct"))
		Expect(paths["s:MyKit3FooC"]).To(Equal("/MyKit/Foo-class"))
		Expect(paths["s:MyKit3FooV3baryyF"]).To(Equal("/MyKit/Foo-struct/bar()"))
		Expect(paths["s:MyKit3FooC3baryyF"]).To(Equal("/MyKit/Foo-class/bar()"))
	})

	It("leaves unambiguous symbols without a suffix", func() {
		h := build(colorGraph())
		paths := h.DisambiguatedPaths(false)
		Expect(paths["s:MyKit5ColorO"]).To(Equal("/MyKit/Color"))
		Expect(paths["s:MyKit5ColorO3redyA2CmF"]).To(Equal("/MyKit/Color/red"))
	})

	It("falls back to hashes for same-kind collisions", func() {
		h := build(protocolGraph())
		paths := h.DisambiguatedPaths(false)
		requirementHash := symbols.StableHash("s:MyKit1PP3fooyyF")
		implementationHash := symbols.StableHash("s:MyKit1PPE3fooyyF")
		Expect(paths["s:MyKit1PP3fooyyF"]).To(Equal("/MyKit/P/foo()-" + requirementHash))
		Expect(paths["s:MyKit1PPE3fooyyF"]).To(Equal("/MyKit/P/foo()-" + implementationHash))
	})

	It("is injective", func() {
		h := build(twoFooGraph(), colorGraph(), protocolGraph())
		paths := h.DisambiguatedPaths(false)
		seen := map[string]string{}
		for precise, path := range paths {
			Expect(seen).NotTo(HaveKey(path), "path %s of %s already addresses %s", path, precise, seen[path])
			seen[path] = precise
		}
	})

	It("maps a multi-language symbol to the primary language path once", func() {
		h := build(crossLanguageGraphs()...)
		paths := h.DisambiguatedPaths(false)
		Expect(paths["s:MyKit6WidgetC"]).To(Equal("/MyKit/Widget"))
	})

	It("forces child suffixes under disambiguated containers on request", func() {
		h := build(twoFooGraph())
		paths := h.DisambiguatedPaths(true)
		Expect(paths["s:MyKit3FooV3baryyF"]).To(Equal("/MyKit/Foo-struct/bar()-func"))
	})

	It("groups sibling names case-insensitively", func() {
		graph := &symbols.Graph{
			Module: symbols.Module{Name: "MyKit"},
			Symbols: []*symbols.Symbol{
				newSymbol("s:MyKit5ShapeV", "swift", "struct", "Shape"),
				newSymbol("s:MyKit5shapeyyF", "swift", "func", "shape"),
			},
		}
		h := build(graph)
		paths := h.DisambiguatedPaths(false)
		Expect(paths["s:MyKit5ShapeV"]).To(Equal("/MyKit/Shape-struct"))
		Expect(paths["s:MyKit5shapeyyF"]).To(Equal("/MyKit/shape-func"))
	})

	It("agrees with PathFor on case-colliding siblings", func() {
		graph := &symbols.Graph{
			Module: symbols.Module{Name: "MyKit"},
			Symbols: []*symbols.Symbol{
				newSymbol("s:MyKit5ShapeV", "swift", "struct", "Shape"),
				newSymbol("s:MyKit5shapeyyF", "swift", "func", "shape"),
			},
		}
		h := build(graph)
		module, _ := h.ModuleNode("MyKit")
		for name, expected := range map[string]string{
			"Shape": "/MyKit/Shape-struct",
			"shape": "/MyKit/shape-func",
		} {
			tree, found := module.ChildTree(name)
			Expect(found).To(BeTrue())
			node, err := tree.Find("", "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(h.PathFor(node)).To(Equal(expected))
		}
	})
})

var _ = Describe("Dump", func() {
	It("renders the tree with box drawing glyphs", func() {
		h := build(twoFooGraph())
		dump := h.Dump()
		Expect(dump).To(ContainSubstring("MyKit"))
		Expect(dump).To(ContainSubstring("├ Foo-class"))
		Expect(dump).To(ContainSubstring("╰ Foo-struct"))
		Expect(dump).To(ContainSubstring("╰ bar()"))
		Expect(dump).To(ContainSubstring("│"))
	})
})
