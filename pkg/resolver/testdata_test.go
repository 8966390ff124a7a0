// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resolver_test

import (
	"encoding/json"

	"github.com/gardener/doclink/pkg/hierarchy"
	"github.com/gardener/doclink/pkg/resolver"
	"github.com/gardener/doclink/pkg/symbols"
	. "github.com/onsi/gomega"
)

const bundleID = "com.example.mykit"

func newSymbol(precise, language, kind, title string, pathComponents ...string) *symbols.Symbol {
	if len(pathComponents) == 0 {
		pathComponents = []string{title}
	}
	return &symbols.Symbol{
		Identifier:     symbols.Identifier{Precise: precise, InterfaceLanguage: language},
		Kind:           symbols.Kind{Identifier: kind},
		Names:          symbols.Names{Title: title},
		PathComponents: pathComponents,
	}
}

func memberOf(source, target string) symbols.Relationship {
	return symbols.Relationship{Source: source, Target: target, Kind: symbols.MemberOf}
}

// myKitGraph is the shared fixture: two same-named Foo containers with
// members, an enum, a protocol with a default implementation, a nested
// Bar.Baz chain for relative links and a case-colliding Shape/shape pair.
func myKitGraph() *symbols.Graph {
	return &symbols.Graph{
		Module: symbols.Module{Name: "MyKit"},
		Symbols: []*symbols.Symbol{
			newSymbol("s:MyKit3FooV", "swift", "struct", "Foo"),
			newSymbol("s:MyKit3FooC", "swift", "class", "Foo"),
			newSymbol("s:MyKit3FooV3baryyF", "swift", "func", "bar()", "Foo", "bar()"),
			newSymbol("s:MyKit3FooC3baryyF", "swift", "func", "bar()", "Foo", "bar()"),
			newSymbol("s:MyKit5ColorO", "swift", "enum", "Color"),
			newSymbol("s:MyKit5ColorO3redyA2CmF", "swift", "enum.case", "red", "Color", "red"),
			newSymbol("s:MyKit1PP", "swift", "protocol", "P"),
			newSymbol("s:MyKit1PP3fooyyF", "swift", "func", "foo()", "P", "foo()"),
			newSymbol("s:MyKit1PPE3fooyyF", "swift", "func", "foo()", "P", "foo()"),
			newSymbol("s:MyKit3BarV", "swift", "struct", "Bar"),
			newSymbol("s:MyKit3BarV3BazV", "swift", "struct", "Baz", "Bar", "Baz"),
			newSymbol("s:MyKit5ShapeV", "swift", "struct", "Shape"),
			newSymbol("s:MyKit5shapeyyF", "swift", "func", "shape"),
		},
		Relationships: []symbols.Relationship{
			memberOf("s:MyKit3FooV3baryyF", "s:MyKit3FooV"),
			memberOf("s:MyKit3FooC3baryyF", "s:MyKit3FooC"),
			memberOf("s:MyKit5ColorO3redyA2CmF", "s:MyKit5ColorO"),
			{Source: "s:MyKit1PP3fooyyF", Target: "s:MyKit1PP", Kind: symbols.RequirementOf},
			{Source: "s:MyKit1PPE3fooyyF", Target: "s:MyKit1PP3fooyyF", Kind: symbols.DefaultImplementationOf},
			memberOf("s:MyKit3BarV3BazV", "s:MyKit3BarV"),
		},
	}
}

func sparseMyKitGraph() *symbols.Graph {
	return &symbols.Graph{
		Module: symbols.Module{Name: "MyKit"},
		Symbols: []*symbols.Symbol{
			newSymbol("s:MyKit1AV1BV", "swift", "struct", "B", "A", "B"),
		},
	}
}

func buildHierarchy(graphs ...*symbols.Graph) *hierarchy.Hierarchy {
	h, err := hierarchy.Build(graphs, hierarchy.BuildOptions{BundleID: bundleID, DisplayName: "MyKit Docs"})
	Expect(err).NotTo(HaveOccurred())
	return h
}

// colorOnlyGraph is a second, unrelated module used as the local side of
// external archive tests.
func colorOnlyGraph() *symbols.Graph {
	return &symbols.Graph{
		Module: symbols.Module{Name: "OtherKit"},
		Symbols: []*symbols.Symbol{
			newSymbol("s:OtherKit5PaintV", "swift", "struct", "Paint"),
		},
	}
}

func loadArchive(serialized *hierarchy.SerializedHierarchy) (*resolver.Archive, error) {
	encoded, err := json.Marshal(serialized)
	Expect(err).NotTo(HaveOccurred())
	return resolver.LoadArchive(encoded, nil)
}
