// Package detector exposes the unused code detection pipeline: file
// discovery, global indexing, per-file analysis, cross-file reconciliation
// and automated cleanup.
package detector

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/vestigehq/vestige/internal/analyzer"
	"github.com/vestigehq/vestige/internal/cleanup"
	"github.com/vestigehq/vestige/internal/index"
	"github.com/vestigehq/vestige/internal/scanner"
	"github.com/vestigehq/vestige/internal/snapshot"
	"github.com/vestigehq/vestige/pkg/config"
	"github.com/vestigehq/vestige/pkg/models"
)

// ErrAnalysisInProgress is returned when Detect is called while another run
// is still executing.
var ErrAnalysisInProgress = fmt.Errorf("detection already in progress")

// ProgressFunc is invoked once per analyzed file.
type ProgressFunc func(done, total int, path string)

// Detector owns the detection state: the per-file results map, the global
// index and the persisted snapshot. Multiple detectors can coexist; each
// holds its own state.
type Detector struct {
	cfg   *config.Config
	store *snapshot.Store
	log   *slog.Logger

	mu           sync.Mutex
	analyzing    bool
	results      map[string]*models.DetectionResult
	idx          *index.Index
	lastAnalysis *time.Time
}

// New creates a detector and eagerly loads the snapshot. A missing or corrupt
// snapshot starts the detector from empty state.
func New(cfg *config.Config, log *slog.Logger) *Detector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = slog.Default()
	}

	d := &Detector{
		cfg:     cfg,
		log:     log,
		results: make(map[string]*models.DetectionResult),
	}

	if cfg.Snapshot.Enabled {
		d.store = snapshot.NewStore(cfg.Snapshot.Path)
		data := d.store.Load()
		d.results = data.Results
		if !data.Timestamp.IsZero() {
			ts := data.Timestamp
			d.lastAnalysis = &ts
		}
	}

	return d
}

// Detect runs the full pipeline against root and returns the retained
// results. A second call while a run is in flight fails immediately with
// ErrAnalysisInProgress and mutates nothing.
func (d *Detector) Detect(root string, progress ProgressFunc) ([]*models.DetectionResult, error) {
	d.mu.Lock()
	if d.analyzing {
		d.mu.Unlock()
		return nil, ErrAnalysisInProgress
	}
	d.analyzing = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.analyzing = false
		d.mu.Unlock()
	}()

	files, err := scanner.New(d.cfg).Scan(root)
	if err != nil {
		d.log.Error("file discovery failed", "root", root, "error", err)
		return nil, err
	}
	d.log.Debug("discovered files", "count", len(files))

	idx := index.Build(files, func(path string, err error) {
		d.log.Warn("indexing skipped file", "file", path, "error", err)
	})

	a := analyzer.New(analyzer.OptionsFromConfig(d.cfg))
	defer a.Close()

	results := make(map[string]*models.DetectionResult)
	for i, path := range files {
		result, err := a.AnalyzeFile(path)
		if err != nil {
			d.log.Warn("analysis skipped file", "file", path, "error", err)
			continue
		}
		if result != nil {
			results[path] = result
		}
		if progress != nil {
			progress(i+1, len(files), path)
		}
	}

	analyzer.Reconcile(results, idx)

	now := time.Now()
	d.mu.Lock()
	d.results = results
	d.idx = idx
	d.lastAnalysis = &now
	d.mu.Unlock()

	if d.store != nil {
		if err := d.store.Save(results, idx); err != nil {
			d.log.Warn("snapshot save failed", "path", d.store.Path(), "error", err)
		}
	}

	return d.Results(), nil
}

// Cleanup applies automated cleanup to one previously analyzed file. Asking
// for a file with no stored result is a programmer error and fails hard.
func (d *Detector) Cleanup(path string, opts cleanup.Options) (cleanup.Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return cleanup.Result{}, err
	}

	d.mu.Lock()
	result, ok := d.results[abs]
	if !ok {
		result, ok = d.results[path]
	}
	d.mu.Unlock()

	if !ok {
		return cleanup.Result{}, fmt.Errorf("no detection result for %s: run detect first", path)
	}

	res := cleanup.Apply(result.File, result.Recommendations, opts)
	if !res.Success {
		d.log.Error("cleanup failed", "file", result.File, "warnings", res.Warnings)
	}
	return res, nil
}

// Results returns the retained results sorted by file path.
func (d *Detector) Results() []*models.DetectionResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*models.DetectionResult, 0, len(d.results))
	for _, r := range d.results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// ResultFor returns the result for one file, or nil.
func (d *Detector) ResultFor(path string) *models.DetectionResult {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if r, ok := d.results[abs]; ok {
		return r
	}
	return d.results[path]
}

// Summary aggregates counts across all retained results. Averages use gonum
// so the rollup matches what a statistics-minded reader expects: mean for
// automation potential, median for confidence.
func (d *Detector) Summary() models.AggregateSummary {
	results := d.Results()

	s := models.AggregateSummary{Files: len(results)}
	var automation, confidences []float64

	for _, r := range results {
		s.TotalVariables += len(r.Variables)
		s.TotalImports += len(r.Imports)
		s.TotalExports += len(r.Exports)
		s.TotalDeadBlocks += len(r.DeadCode)
		s.TotalRecommendations += len(r.Recommendations)
		for _, b := range r.DeadCode {
			s.TotalDeadLines += b.Lines()
		}
		for _, v := range r.Variables {
			confidences = append(confidences, v.Confidence)
		}
		automation = append(automation, r.Summary.AutomationPotential)
	}

	if len(automation) > 0 {
		s.AverageAutomation = stat.Mean(automation, nil)
	}
	if len(confidences) > 0 {
		sort.Float64s(confidences)
		s.MedianConfidence = stat.Quantile(0.5, stat.Empirical, confidences, nil)
	}

	return s
}

// Status reports whether a run is in flight and what state is held.
func (d *Detector) Status() models.RunStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.RunStatus{
		Analyzing:    d.analyzing,
		ResultsCount: len(d.results),
		LastAnalysis: d.lastAnalysis,
	}
}

// Clear drops all in-memory results. The snapshot file is left alone until
// the next full run overwrites it.
func (d *Detector) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results = make(map[string]*models.DetectionResult)
	d.idx = nil
	d.lastAnalysis = nil
}

// SnapshotPath returns the configured snapshot location, or empty when
// snapshotting is disabled.
func (d *Detector) SnapshotPath() string {
	if d.store == nil {
		return ""
	}
	return d.store.Path()
}

// NewLogger builds the standard text logger at the given verbosity.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
