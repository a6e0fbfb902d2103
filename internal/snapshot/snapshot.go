// Package snapshot persists detection results between runs as a JSON cache.
// Loading is best-effort; a missing or corrupt snapshot yields empty state.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vestigehq/vestige/internal/index"
	"github.com/vestigehq/vestige/pkg/models"
	"github.com/zeebo/blake3"
)

// Data is the on-disk snapshot shape.
type Data struct {
	Results   map[string]*models.DetectionResult `json:"results"`
	Symbols   map[string][]string                `json:"global_symbol_table"`
	Refs      map[string][]string                `json:"cross_file_references"`
	Hashes    map[string]string                  `json:"file_hashes"`
	Timestamp time.Time                          `json:"timestamp"`
}

// Store reads and writes the snapshot file.
type Store struct {
	path string
}

// NewStore creates a store for the given snapshot path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// HashFile returns the hex blake3 digest of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// Load reads the snapshot. Missing or corrupt files yield an empty snapshot,
// never an error. Entries whose recorded file hash no longer matches the file
// on disk are pruned, so stale results do not survive a source edit.
func (s *Store) Load() *Data {
	data := emptyData()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return data
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return emptyData()
	}
	if data.Results == nil {
		data.Results = make(map[string]*models.DetectionResult)
	}
	if data.Symbols == nil {
		data.Symbols = make(map[string][]string)
	}
	if data.Refs == nil {
		data.Refs = make(map[string][]string)
	}
	if data.Hashes == nil {
		data.Hashes = make(map[string]string)
	}

	for file, recorded := range data.Hashes {
		current, err := HashFile(file)
		if err != nil || current != recorded {
			delete(data.Results, file)
			delete(data.Symbols, file)
			delete(data.Refs, file)
			delete(data.Hashes, file)
		}
	}

	return data
}

// Save writes the snapshot wholesale with a temp-file rename.
func (s *Store) Save(results map[string]*models.DetectionResult, idx *index.Index) error {
	data := &Data{
		Results:   results,
		Symbols:   make(map[string][]string),
		Refs:      make(map[string][]string),
		Hashes:    make(map[string]string),
		Timestamp: time.Now(),
	}
	if idx != nil {
		for file, set := range idx.Symbols {
			data.Symbols[file] = sortedSlice(set)
		}
		for file, set := range idx.Refs {
			data.Refs[file] = sortedSlice(set)
		}
	}
	for file := range results {
		if h, err := HashFile(file); err == nil {
			data.Hashes[file] = h
		}
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

func emptyData() *Data {
	return &Data{
		Results: make(map[string]*models.DetectionResult),
		Symbols: make(map[string][]string),
		Refs:    make(map[string][]string),
		Hashes:  make(map[string]string),
	}
}

func sortedSlice(set index.Set) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
