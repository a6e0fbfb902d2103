package index

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	return dir, paths
}

func TestBuildCollectsSymbolsAndRefs(t *testing.T) {
	dir, paths := writeTree(t, map[string]string{
		"a.ts": "export function helper() {}\nexport const shared = 1;\n",
		"b.ts": "import { helper } from './a';\nconst legacy = require('./legacy');\nhelper();\nconsole.log(legacy);\n",
	})

	idx := Build(paths, nil)

	aPath := filepath.Join(dir, "a.ts")
	bPath := filepath.Join(dir, "b.ts")

	require.Contains(t, idx.Symbols, aPath)
	assert.True(t, idx.Symbols[aPath].Has("helper"))
	assert.True(t, idx.Symbols[aPath].Has("shared"))
	assert.Empty(t, idx.Refs[aPath])

	require.Contains(t, idx.Symbols, bPath)
	assert.True(t, idx.Symbols[bPath].Has("helper"), "import bindings count as declared names")
	assert.True(t, idx.Symbols[bPath].Has("legacy"))
	assert.True(t, idx.Refs[bPath].Has("./a"))
	assert.True(t, idx.Refs[bPath].Has("./legacy"))
}

func TestBuildEmptyInput(t *testing.T) {
	idx := Build(nil, nil)
	require.NotNil(t, idx)
	assert.Empty(t, idx.Symbols)
	assert.Empty(t, idx.Refs)
}

func TestBuildWarnsOnUnreadableFile(t *testing.T) {
	_, paths := writeTree(t, map[string]string{
		"ok.ts": "const fine = 1;\nconsole.log(fine);\n",
	})
	missing := filepath.Join(t.TempDir(), "gone.ts")

	var mu sync.Mutex
	var warned []string
	idx := Build(append(paths, missing), func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		require.Error(t, err)
		warned = append(warned, path)
	})

	assert.Equal(t, []string{missing}, warned)
	assert.Len(t, idx.Symbols, 1)
	assert.NotContains(t, idx.Symbols, missing)
}

func TestSetHas(t *testing.T) {
	s := Set{"a": {}}
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("b"))
	assert.False(t, Set(nil).Has("a"))
}
