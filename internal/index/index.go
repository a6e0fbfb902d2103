// Package index builds the global symbol table and cross-file reference maps
// that cross-file reconciliation consumes.
package index

import (
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/vestigehq/vestige/internal/symbols"
	"github.com/vestigehq/vestige/pkg/parser"
)

// Set is a string set.
type Set map[string]struct{}

// Has reports membership.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Index holds per-file declared symbols and per-file module references.
type Index struct {
	// Symbols maps file path to the set of symbol names it declares.
	Symbols map[string]Set

	// Refs maps file path to the set of module specifiers it references
	// via import, dynamic import() or require().
	Refs map[string]Set
}

// WarnFunc receives soft per-file failures during index construction.
type WarnFunc func(path string, err error)

// workerMultiplier matches the mixed I/O plus CGO workload of parsing.
const workerMultiplier = 2

// Build parses every file and assembles the two maps. Individual file
// failures are reported through warn and skipped; they never abort the build.
// The returned index is complete: no reader observes a partially built map.
func Build(files []string, warn WarnFunc) *Index {
	idx := &Index{
		Symbols: make(map[string]Set, len(files)),
		Refs:    make(map[string]Set, len(files)),
	}
	if len(files) == 0 {
		return idx
	}

	type fileEntry struct {
		path    string
		symbols []string
		refs    []string
	}

	entries := make([]fileEntry, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(runtime.NumCPU() * workerMultiplier)
	for _, path := range files {
		p.Go(func() {
			psr := parser.New()
			defer psr.Close()

			res, err := psr.ParseFile(path)
			if err != nil {
				if warn != nil {
					warn(path, err)
				}
				return
			}

			entry := fileEntry{
				path:    path,
				symbols: symbols.DeclaredNames(res),
				refs:    symbols.ExtractModuleSpecifiers(res),
			}

			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
		})
	}
	p.Wait()

	for _, e := range entries {
		symSet := make(Set, len(e.symbols))
		for _, name := range e.symbols {
			symSet[name] = struct{}{}
		}
		refSet := make(Set, len(e.refs))
		for _, ref := range e.refs {
			refSet[ref] = struct{}{}
		}
		idx.Symbols[e.path] = symSet
		idx.Refs[e.path] = refSet
	}

	return idx
}
