// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package hierarchy_test

import "github.com/gardener/doclink/pkg/symbols"

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

// twoFooGraph models: struct Foo { func bar() } and class Foo { func bar() }
func twoFooGraph() *symbols.Graph {
	return &symbols.Graph{
		Module: symbols.Module{Name: "MyKit"},
		Symbols: []*symbols.Symbol{
			newSymbol("s:MyKit3FooV", "swift", "struct", "Foo"),
			newSymbol("s:MyKit3FooC", "swift", "class", "Foo"),
			newSymbol("s:MyKit3FooV3baryyF", "swift", "func", "bar()", "Foo", "bar()"),
			newSymbol("s:MyKit3FooC3baryyF", "swift", "func", "bar()", "Foo", "bar()"),
		},
		Relationships: []symbols.Relationship{
			memberOf("s:MyKit3FooV3baryyF", "s:MyKit3FooV"),
			memberOf("s:MyKit3FooC3baryyF", "s:MyKit3FooC"),
		},
	}
}

// colorGraph models: enum Color { case red }
func colorGraph() *symbols.Graph {
	return &symbols.Graph{
		Module: symbols.Module{Name: "MyKit"},
		Symbols: []*symbols.Symbol{
			newSymbol("s:MyKit5ColorO", "swift", "enum", "Color"),
			newSymbol("s:MyKit5ColorO3redyA2CmF", "swift", "enum.case", "red", "Color", "red"),
		},
		Relationships: []symbols.Relationship{
			memberOf("s:MyKit5ColorO3redyA2CmF", "s:MyKit5ColorO"),
		},
	}
}

// protocolGraph models a protocol requirement with a default implementation
// beside it.
func protocolGraph() *symbols.Graph {
	return &symbols.Graph{
		Module: symbols.Module{Name: "MyKit"},
		Symbols: []*symbols.Symbol{
			newSymbol("s:MyKit1PP", "swift", "protocol", "P"),
			newSymbol("s:MyKit1PP3fooyyF", "swift", "func", "foo()", "P", "foo()"),
			newSymbol("s:MyKit1PPE3fooyyF", "swift", "func", "foo()", "P", "foo()"),
		},
		Relationships: []symbols.Relationship{
			{Source: "s:MyKit1PP3fooyyF", Target: "s:MyKit1PP", Kind: symbols.RequirementOf},
			{Source: "s:MyKit1PPE3fooyyF", Target: "s:MyKit1PP3fooyyF", Kind: symbols.DefaultImplementationOf},
		},
	}
}

// sparseGraph models a partial graph missing the parent A of A.B.
func sparseGraph() *symbols.Graph {
	return &symbols.Graph{
		Module: symbols.Module{Name: "MyKit"},
		Symbols: []*symbols.Symbol{
			newSymbol("s:MyKit1AV1BV", "swift", "struct", "B", "A", "B"),
		},
	}
}

// crossLanguageGraphs model one symbol available in Swift and Objective-C.
func crossLanguageGraphs() []*symbols.Graph {
	return []*symbols.Graph{
		{
			Module: symbols.Module{Name: "MyKit"},
			Symbols: []*symbols.Symbol{
				newSymbol("s:MyKit6WidgetC", "swift", "class", "Widget"),
			},
		},
		{
			Module: symbols.Module{Name: "MyKit"},
			Symbols: []*symbols.Symbol{
				newSymbol("s:MyKit6WidgetC", "objc", "class", "Widget"),
			},
		},
	}
}
