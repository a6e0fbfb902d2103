package parser

import (
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"src/app.ts", LangTypeScript},
		{"src/App.tsx", LangTSX},
		{"src/APP.TS", LangTypeScript},
		{"src/types.d.ts", LangUnknown},
		{"src/TYPES.D.TS", LangUnknown},
		{"src/legacy.js", LangUnknown},
		{"README.md", LangUnknown},
		{"noext", LangUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path), tt.path)
	}
}

func TestParseTypeScript(t *testing.T) {
	p := New()
	defer p.Close()

	res, err := p.Parse([]byte("const x: number = 1;\n"), LangTypeScript, "test.ts")
	require.NoError(t, err)
	require.NotNil(t, res.Tree)
	assert.Equal(t, LangTypeScript, res.Language)
	assert.Equal(t, "test.ts", res.Path)
	assert.Equal(t, "program", res.Tree.RootNode().Type())
}

func TestParseTSX(t *testing.T) {
	p := New()
	defer p.Close()

	res, err := p.Parse([]byte("const el = <div>hello</div>;\n"), LangTSX, "test.tsx")
	require.NoError(t, err)
	assert.Equal(t, LangTSX, res.Language)
	assert.False(t, res.Tree.RootNode().HasError(), "valid TSX should parse cleanly")
}

func TestParseUnknownLanguage(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.Parse([]byte("x"), LangUnknown, "test.bin")
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.ts")
	require.NoError(t, os.WriteFile(path, []byte("function f() { return 1; }\n"), 0o644))

	p := New()
	defer p.Close()

	res, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, LangTypeScript, res.Language)
	assert.Equal(t, path, res.Path)
}

func TestParseFileMissing(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.ParseFile(filepath.Join(t.TempDir(), "absent.ts"))
	assert.Error(t, err)
}

func TestParseFileDeclarationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.d.ts")
	require.NoError(t, os.WriteFile(path, []byte("declare const x: number;\n"), 0o644))

	p := New()
	defer p.Close()

	_, err := p.ParseFile(path)
	assert.Error(t, err)
}

func TestFindNodesByType(t *testing.T) {
	p := New()
	defer p.Close()

	res, err := p.Parse([]byte("function a() {}\nfunction b() {}\nconst c = 1;\n"), LangTypeScript, "test.ts")
	require.NoError(t, err)

	fns := FindNodesByType(res.Tree.RootNode(), res.Source, "function_declaration")
	assert.Len(t, fns, 2)
}

func TestWalkStopsOnFalse(t *testing.T) {
	p := New()
	defer p.Close()

	res, err := p.Parse([]byte("function a() { const inner = 1; }\n"), LangTypeScript, "test.ts")
	require.NoError(t, err)

	var visited []string
	Walk(res.Tree.RootNode(), res.Source, func(node *sitter.Node, _ []byte) bool {
		visited = append(visited, node.Type())
		return node.Type() != "function_declaration"
	})

	assert.Contains(t, visited, "function_declaration")
	assert.NotContains(t, visited, "statement_block", "descent should stop below the function")
}

func TestGetNodeText(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("const name = 1;\n")
	res, err := p.Parse(source, LangTypeScript, "test.ts")
	require.NoError(t, err)

	ids := FindNodesByType(res.Tree.RootNode(), res.Source, "identifier")
	require.NotEmpty(t, ids)
	assert.Equal(t, "name", GetNodeText(ids[0], source))

	assert.Equal(t, "", GetNodeText(nil, source))
}
