// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package linkpath_test

import (
	"github.com/gardener/doclink/pkg/linkpath"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseComponent", func() {
	DescribeTable("should split name, kind and hash",
		func(segment, name, kind, hash, language string) {
			component := linkpath.ParseComponent(segment)
			Expect(component.Full).To(Equal(segment))
			Expect(component.Name).To(Equal(name))
			Expect(component.Kind).To(Equal(kind))
			Expect(component.Hash).To(Equal(hash))
			Expect(component.Language).To(Equal(language))
		},
		Entry("plain name", "Foo", "Foo", "", "", ""),
		Entry("name with kind", "Foo-struct", "Foo", "struct", "", ""),
		Entry("name with hash", "Foo-1a2b3", "Foo", "", "1a2b3", ""),
		Entry("name with kind and hash", "Foo-struct-1a2b3", "Foo", "struct", "1a2b3", ""),
		Entry("name with hash then kind", "Foo-1a2b3-struct", "Foo", "struct", "1a2b3", ""),
		Entry("language qualified kind", "foo()-objc.method", "foo()", "method", "", "objc"),
		Entry("language qualified kind and hash", "foo()-objc.method-1a2b3", "foo()", "method", "1a2b3", "objc"),
		Entry("unknown suffix stays part of the name", "data-store", "data-store", "", "", ""),
		Entry("hash-like middle segment is a hash", "data-store-struct", "data", "struct", "store", ""),
		Entry("hyphenated name with kind", "data-base64-encoder-struct", "data-base64-encoder", "struct", "", ""),
		Entry("too long for a hash", "Foo-abcdef", "Foo-abcdef", "", "", ""),
		Entry("uppercase is not a hash", "Foo-ABC", "Foo-ABC", "", "", ""),
		Entry("leading dash stays verbatim", "-struct", "-struct", "", "", ""),
		Entry("function name with parentheses", "bar()", "bar()", "", "", ""),
		Entry("case suffix", "red-enum.case", "red", "enum.case", "", ""),
	)
})

var _ = Describe("Parse", func() {
	It("parses a relative link", func() {
		parsed := linkpath.Parse("Foo/bar()")
		Expect(parsed.Absolute).To(BeFalse())
		Expect(parsed.Components).To(HaveLen(2))
		Expect(parsed.Components[0].Name).To(Equal("Foo"))
		Expect(parsed.Components[1].Name).To(Equal("bar()"))
	})

	It("marks a leading slash absolute", func() {
		parsed := linkpath.Parse("/MyKit/Foo")
		Expect(parsed.Absolute).To(BeTrue())
		Expect(parsed.Components).To(HaveLen(2))
	})

	It("marks a documentation prefix absolute", func() {
		parsed := linkpath.Parse("documentation/MyKit/Foo")
		Expect(parsed.Absolute).To(BeTrue())
		Expect(parsed.Components[0].Full).To(Equal("documentation"))
	})

	It("marks a tutorials prefix absolute", func() {
		parsed := linkpath.Parse("tutorials/MyBook/Intro")
		Expect(parsed.Absolute).To(BeTrue())
	})

	It("splits a trailing fragment into an anchor component", func() {
		parsed := linkpath.Parse("Foo#overview")
		Expect(parsed.Components).To(HaveLen(2))
		anchor := parsed.Components[1]
		Expect(anchor.IsFragment).To(BeTrue())
		Expect(anchor.Name).To(Equal("overview"))
		Expect(anchor.Full).To(Equal("overview"))
	})

	It("parses a pure fragment", func() {
		parsed := linkpath.Parse("#overview")
		Expect(parsed.Absolute).To(BeFalse())
		Expect(parsed.Components).To(HaveLen(1))
		Expect(parsed.Components[0].IsFragment).To(BeTrue())
	})

	It("parses an empty link to no components", func() {
		parsed := linkpath.Parse("")
		Expect(parsed.Components).To(BeEmpty())
	})

	It("collapses empty components by default", func() {
		parsed := linkpath.Parse("/MyKit//Foo")
		Expect(parsed.Components).To(HaveLen(2))
	})

	It("keeps empty components on request", func() {
		parsed := linkpath.ParseComponents("MyKit//Foo", false)
		Expect(parsed.Components).To(HaveLen(3))
		Expect(parsed.Components[1].Full).To(Equal(""))
	})

	It("extracts the bundle of a doc link", func() {
		parsed := linkpath.Parse("doc://com.example.docs/MyKit/Foo")
		Expect(parsed.BundleID).To(Equal("com.example.docs"))
		Expect(parsed.Absolute).To(BeTrue())
		Expect(parsed.Components).To(HaveLen(2))
	})
})
