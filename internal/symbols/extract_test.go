package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestigehq/vestige/pkg/models"
	"github.com/vestigehq/vestige/pkg/parser"
)

func parseSource(t *testing.T, src string) *parser.ParseResult {
	t.Helper()
	p := parser.New()
	t.Cleanup(p.Close)

	res, err := p.Parse([]byte(src), parser.LangTypeScript, "test.ts")
	require.NoError(t, err)
	return res
}

func declNames(decls []Decl) []string {
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Name)
	}
	return out
}

func TestExtractDeclarationKinds(t *testing.T) {
	src := `const value = 1;
let counter = 0;
var legacy = true;
function run() {}
class Service {}
interface Shape { x: number; }
type Alias = string;
enum Color { Red }
`
	decls := ExtractDeclarations(parseSource(t, src))

	byName := make(map[string]Decl, len(decls))
	for _, d := range decls {
		byName[d.Name] = d
	}

	tests := []struct {
		name    string
		kind    models.SymbolKind
		keyword string
		line    int
	}{
		{"value", models.KindVariable, "const", 1},
		{"counter", models.KindVariable, "let", 2},
		{"legacy", models.KindVariable, "var", 3},
		{"run", models.KindFunction, "function", 4},
		{"Service", models.KindClass, "class", 5},
		{"Shape", models.KindInterface, "interface", 6},
		{"Alias", models.KindType, "type", 7},
		{"Color", models.KindEnum, "enum", 8},
	}
	for _, tt := range tests {
		d, ok := byName[tt.name]
		require.True(t, ok, "missing declaration %s", tt.name)
		assert.Equal(t, tt.kind, d.Kind, tt.name)
		assert.Equal(t, tt.keyword, d.Keyword, tt.name)
		assert.Equal(t, tt.line, d.Line, tt.name)
	}
}

func TestExtractDeclarationExportFlag(t *testing.T) {
	src := "export const shared = 1;\nconst local = 2;\n"
	decls := ExtractDeclarations(parseSource(t, src))
	require.Len(t, decls, 2)

	for _, d := range decls {
		switch d.Name {
		case "shared":
			assert.True(t, d.Exported)
		case "local":
			assert.False(t, d.Exported)
		}
	}
}

func TestExtractDeclarationEnclosing(t *testing.T) {
	src := "function outer() {\n  const inner = 1;\n  return inner;\n}\n"
	decls := ExtractDeclarations(parseSource(t, src))

	var found bool
	for _, d := range decls {
		if d.Name == "inner" {
			found = true
			assert.Equal(t, "outer", d.Enclosing)
		}
	}
	assert.True(t, found, "inner declaration not extracted")
}

func TestDestructuringPatternsSkipped(t *testing.T) {
	src := "const { a, b } = load();\nconst plain = 1;\n"
	decls := ExtractDeclarations(parseSource(t, src))
	assert.Equal(t, []string{"plain"}, declNames(decls))
}

func TestImportBindingsSkippedByDeclarations(t *testing.T) {
	src := "import { dep } from './dep';\nconst own = 1;\n"
	decls := ExtractDeclarations(parseSource(t, src))
	assert.Equal(t, []string{"own"}, declNames(decls))
}

func TestExtractImports(t *testing.T) {
	src := `import React from 'react';
import { useState, useEffect as effect } from 'react';
import * as utils from './utils';
import type { Props } from './props';
import { type Meta, other } from './mixed';
`
	bindings := ExtractImports(parseSource(t, src))

	byName := make(map[string]ImportBinding, len(bindings))
	for _, b := range bindings {
		byName[b.Name] = b
	}

	react, ok := byName["React"]
	require.True(t, ok)
	assert.Equal(t, models.ImportDefault, react.Kind)
	assert.Equal(t, "react", react.Module)
	assert.Equal(t, 1, react.Line)

	state, ok := byName["useState"]
	require.True(t, ok)
	assert.Equal(t, models.ImportNamed, state.Kind)

	alias, ok := byName["effect"]
	require.True(t, ok, "aliased import should bind under the alias")
	assert.Equal(t, models.ImportNamed, alias.Kind)
	assert.NotContains(t, byName, "useEffect")

	ns, ok := byName["utils"]
	require.True(t, ok)
	assert.Equal(t, models.ImportNamespace, ns.Kind)
	assert.Equal(t, "./utils", ns.Module)

	props, ok := byName["Props"]
	require.True(t, ok)
	assert.True(t, props.TypeOnly)

	meta, ok := byName["Meta"]
	require.True(t, ok, "inline type specifier should still bind")
	assert.True(t, meta.TypeOnly)

	other, ok := byName["other"]
	require.True(t, ok)
	assert.False(t, other.TypeOnly)
}

func TestExtractModuleSpecifiers(t *testing.T) {
	src := `import { a } from './a';
const legacy = require('./legacy');
async function load() {
  const mod = await import('./lazy');
  return mod;
}
load();
console.log(a, legacy);
`
	specs := ExtractModuleSpecifiers(parseSource(t, src))
	assert.ElementsMatch(t, []string{"./a", "./legacy", "./lazy"}, specs)
}

func TestExtractModuleSpecifiersDeduplicates(t *testing.T) {
	src := "import { a } from './shared';\nimport { b } from './shared';\nconsole.log(a, b);\n"
	specs := ExtractModuleSpecifiers(parseSource(t, src))
	assert.Equal(t, []string{"./shared"}, specs)
}

func TestDeclaredNamesMergesDeclsAndImports(t *testing.T) {
	src := "import { dep } from './dep';\nconst own = 1;\nconsole.log(dep, own);\n"
	names := DeclaredNames(parseSource(t, src))
	assert.ElementsMatch(t, []string{"dep", "own"}, names)
}

func TestTrimQuotes(t *testing.T) {
	assert.Equal(t, "./a", trimQuotes("'./a'"))
	assert.Equal(t, "./a", trimQuotes(`"./a"`))
	assert.Equal(t, "bare", trimQuotes("bare"))
}
