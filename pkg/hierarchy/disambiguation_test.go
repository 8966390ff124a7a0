// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy_test

import (
	"github.com/gardener/doclink/pkg/hierarchy"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

// twoFooTree is the bag of the two same-named Foo symbols of twoFooGraph.
func twoFooTree() *hierarchy.DisambiguationTree {
	h := build(twoFooGraph())
	module, _ := h.ModuleNode("MyKit")
	tree, found := module.ChildTree("Foo")
	Expect(found).To(BeTrue())
	return tree
}

var _ = Describe("DisambiguationTree", func() {
	DescribeTable("Find follows the decision table",
		func(kind, hash string, expectedPrecise string, expectCollision bool) {
			tree := twoFooTree()
			node, err := tree.Find(kind, hash, "")
			if expectCollision {
				Expect(err).To(BeAssignableToTypeOf(&hierarchy.CollisionError{}))
				return
			}
			if expectedPrecise == "" {
				Expect(err).To(BeAssignableToTypeOf(&hierarchy.NoMatchError{}))
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(node.Symbol().Identifier.Precise).To(Equal(expectedPrecise))
		},
		Entry("kind only, unique within kind", "struct", "", "s:MyKit3FooV", false),
		Entry("neither kind nor hash, several entries", "", "", "", true),
		Entry("unknown kind", "enum", "", "", false),
		Entry("unknown hash", "", "zzzzz", "", false),
	)

	It("finds by hash across kinds", func() {
		tree := twoFooTree()
		structNode, err := tree.Find("struct", "", "")
		Expect(err).NotTo(HaveOccurred())
		byHash, err := tree.Find("", structNode.Symbol().StableHash(), "")
		Expect(err).NotTo(HaveOccurred())
		Expect(byHash).To(Equal(structNode))
	})

	It("labels collision candidates with their minimal disambiguation", func() {
		tree := twoFooTree()
		_, err := tree.Find("", "", "")
		collision, ok := err.(*hierarchy.CollisionError)
		Expect(ok).To(BeTrue())
		Expect(collision.Candidates).To(HaveLen(2))
		suffixes := []string{
			collision.Candidates[0].Disambiguation.Suffix(),
			collision.Candidates[1].Disambiguation.Suffix(),
		}
		Expect(suffixes).To(ConsistOf("-class", "-struct"))
	})

	It("reports no disambiguation for a lone entry", func() {
		h := build(colorGraph())
		module, _ := h.ModuleNode("MyKit")
		tree, _ := module.ChildTree("Color")
		values := tree.DisambiguatedValues(false)
		Expect(values).To(HaveLen(1))
		Expect(values[0].Disambiguation.Suffix()).To(Equal(""))
	})

	It("collapses a multi-language symbol to one disambiguated value", func() {
		h := build(crossLanguageGraphs()...)
		module, _ := h.ModuleNode("MyKit")
		tree, _ := module.ChildTree("Widget")
		values := tree.DisambiguatedValuesWithCollapsedUniqueSymbols()
		Expect(values).To(HaveLen(1))
		Expect(values[0].Node.Symbol().Identifier.InterfaceLanguage).To(Equal("swift"))
		Expect(values[0].Variants).To(HaveLen(1))
		Expect(values[0].Disambiguation.Suffix()).To(Equal(""))
	})

	It("merges trees entry-wise", func() {
		first := build(twoFooGraph())
		module, _ := first.ModuleNode("MyKit")
		fooTree, _ := module.ChildTree("Foo")

		second := build(colorGraph())
		otherModule, _ := second.ModuleNode("MyKit")
		colorTree, _ := otherModule.ChildTree("Color")

		before := fooTree.Count()
		fooTree.Merge(colorTree)
		Expect(fooTree.Count()).To(Equal(before + 1))
	})
})
