// Package cleanup applies automated, line-based removal of code flagged by
// cleanup recommendations.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/vestigehq/vestige/pkg/models"
)

// Options controls a cleanup pass.
type Options struct {
	// SafeOnly restricts the pass to recommendations with no listed risks.
	SafeOnly bool

	// DryRun computes and reports changes without touching the file.
	DryRun bool
}

// DefaultOptions matches the conservative default: safe-only, dry-run.
func DefaultOptions() Options {
	return Options{SafeOnly: true, DryRun: true}
}

// Result reports what a cleanup pass did or would do.
type Result struct {
	Success  bool     `json:"success"`
	Changes  []string `json:"changes"`
	Warnings []string `json:"warnings"`
}

// Apply executes the automatable recommendations against path. Target lines
// are blanked rather than deleted so line numbers stay stable across the
// pass; runs of blank lines are collapsed afterwards. The rewritten content
// is buffered fully and written with a temp-file rename, so a write failure
// leaves the original untouched.
func Apply(path string, recs []models.CleanupRecommendation, opts Options) Result {
	res := Result{Success: true}

	eligible := filterEligible(path, recs, opts)
	if len(eligible) == 0 {
		return res
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{Warnings: []string{fmt.Sprintf("read %s: %v", path, err)}}
	}
	lines := strings.Split(string(raw), "\n")

	// Descending line order so earlier blanks never shift later targets.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Line > eligible[j].Line
	})

	marked := roaring.New()
	for _, rec := range eligible {
		first, last := rec.Line, rec.Line
		if rec.EndLine > last {
			last = rec.EndLine
		}
		if last > len(lines) {
			last = len(lines)
		}
		for ln := first; ln <= last; ln++ {
			if ln < 1 || ln > len(lines) {
				continue
			}
			marked.Add(uint32(ln))
		}
		res.Changes = append(res.Changes, fmt.Sprintf("%s: remove %s '%s' (line %d)", filepath.Base(path), rec.Type, rec.Target, rec.Line))
	}

	it := marked.Iterator()
	for it.HasNext() {
		lines[it.Next()-1] = ""
	}

	if opts.DryRun {
		return res
	}

	out := collapseBlankRuns(lines)
	if err := atomicWrite(path, []byte(strings.Join(out, "\n"))); err != nil {
		return Result{Warnings: []string{fmt.Sprintf("write %s: %v", path, err)}}
	}

	return res
}

// filterEligible keeps automatable recommendations for this file, excluding
// any with listed risks when safeOnly is set.
func filterEligible(path string, recs []models.CleanupRecommendation, opts Options) []models.CleanupRecommendation {
	var out []models.CleanupRecommendation
	for _, rec := range recs {
		if rec.File != path || !rec.Automatable {
			continue
		}
		if opts.SafeOnly && len(rec.Risks) > 0 {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// collapseBlankRuns reduces runs of two or more blank lines to a single blank
// line.
func collapseBlankRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return out
}

// atomicWrite writes content to a temp file in the target directory and
// renames it over path.
func atomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vestige-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
