package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestigehq/vestige/internal/index"
	"github.com/vestigehq/vestige/pkg/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), ".vestige", "snapshot.json"))
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := tempStore(t)
	data := s.Load()

	require.NotNil(t, data)
	assert.Empty(t, data.Results)
	assert.Empty(t, data.Symbols)
	assert.Empty(t, data.Refs)
	assert.Empty(t, data.Hashes)
}

func TestLoadCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	data := NewStore(path).Load()
	require.NotNil(t, data)
	assert.Empty(t, data.Results)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "a.ts")
	require.NoError(t, os.WriteFile(srcPath, []byte("const unused = 1;\n"), 0o644))

	results := map[string]*models.DetectionResult{
		srcPath: {
			File: srcPath,
			Variables: []models.UnusedVariableFinding{{
				Declaration: models.Declaration{Name: "unused", Kind: models.KindVariable, File: srcPath, Line: 1},
				Confidence:  0.9,
				RiskLevel:   models.RiskLow,
			}},
		},
	}
	idx := &index.Index{
		Symbols: map[string]index.Set{srcPath: {"unused": {}}},
		Refs:    map[string]index.Set{srcPath: {}},
	}

	s := tempStore(t)
	require.NoError(t, s.Save(results, idx))

	data := s.Load()
	require.Contains(t, data.Results, srcPath)
	assert.Len(t, data.Results[srcPath].Variables, 1)
	assert.Equal(t, []string{"unused"}, data.Symbols[srcPath])
	assert.Contains(t, data.Hashes, srcPath)
	assert.False(t, data.Timestamp.IsZero())
}

func TestLoadPrunesStaleEntries(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "a.ts")
	require.NoError(t, os.WriteFile(srcPath, []byte("const unused = 1;\n"), 0o644))

	results := map[string]*models.DetectionResult{
		srcPath: {File: srcPath},
	}
	s := tempStore(t)
	require.NoError(t, s.Save(results, nil))

	// Edit the file so the recorded hash no longer matches.
	require.NoError(t, os.WriteFile(srcPath, []byte("const changed = 2;\n"), 0o644))

	data := s.Load()
	assert.NotContains(t, data.Results, srcPath)
	assert.NotContains(t, data.Hashes, srcPath)
}

func TestLoadPrunesDeletedFiles(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "a.ts")
	require.NoError(t, os.WriteFile(srcPath, []byte("const unused = 1;\n"), 0o644))

	s := tempStore(t)
	require.NoError(t, s.Save(map[string]*models.DetectionResult{srcPath: {File: srcPath}}, nil))
	require.NoError(t, os.Remove(srcPath))

	data := s.Load()
	assert.NotContains(t, data.Results, srcPath)
}

func TestHashFileStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ts")
	require.NoError(t, os.WriteFile(path, []byte("const x = 1;\n"), 0o644))

	h1, err := HashFile(path)
	require.NoError(t, err)
	h2, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.NotEmpty(t, h1)

	require.NoError(t, os.WriteFile(path, []byte("const x = 2;\n"), 0o644))
	h3, err := HashFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "absent.ts"))
	assert.Error(t, err)
}

func TestSaveCreatesParentDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "deep", "nested", "snapshot.json"))
	require.NoError(t, s.Save(map[string]*models.DetectionResult{}, nil))

	_, err := os.Stat(s.Path())
	assert.NoError(t, err)
}
