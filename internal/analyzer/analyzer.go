// Package analyzer performs per-file unused code analysis: unused variables,
// unused imports, unused exports and unreachable code blocks.
package analyzer

import (
	"strings"
	"time"

	"github.com/vestigehq/vestige/internal/symbols"
	"github.com/vestigehq/vestige/pkg/config"
	"github.com/vestigehq/vestige/pkg/models"
	"github.com/vestigehq/vestige/pkg/parser"
)

// Options selects which detectors run and the thresholds applied to findings.
type Options struct {
	IncludeVariables    bool
	IncludeImports      bool
	IncludeExports      bool
	IncludeDeadCode     bool
	IncludeTypeOnly     bool
	ConfidenceThreshold float64
	RiskThreshold       models.RiskLevel
}

// OptionsFromConfig maps the user configuration onto analyzer options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		IncludeVariables:    cfg.Detection.Variables,
		IncludeImports:      cfg.Detection.Imports,
		IncludeExports:      cfg.Detection.Exports,
		IncludeDeadCode:     cfg.Detection.DeadCode,
		IncludeTypeOnly:     cfg.Detection.TypeOnly,
		ConfidenceThreshold: cfg.Thresholds.Confidence,
		RiskThreshold:       models.RiskLevel(cfg.Thresholds.Risk),
	}
}

// Analyzer runs the per-file detectors.
type Analyzer struct {
	opts   Options
	parser *parser.Parser
}

// New creates an analyzer with the given options.
func New(opts Options) *Analyzer {
	return &Analyzer{opts: opts, parser: parser.New()}
}

// Close releases parser resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// AnalyzeFile runs every enabled detector against one file. It returns nil
// when the file yields no findings at all; callers only retain non-empty
// results.
func (a *Analyzer) AnalyzeFile(path string) (*models.DetectionResult, error) {
	res, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return a.analyze(res), nil
}

// Analyze runs the detectors against already-loaded source. Used by tests and
// the watch loop where content is in hand.
func (a *Analyzer) Analyze(path string, source []byte) (*models.DetectionResult, error) {
	res, err := a.parser.Parse(source, parser.DetectLanguage(path), path)
	if err != nil {
		return nil, err
	}
	return a.analyze(res), nil
}

func (a *Analyzer) analyze(res *parser.ParseResult) *models.DetectionResult {
	content := string(res.Source)
	decls := symbols.ExtractDeclarations(res)

	result := &models.DetectionResult{
		File:      res.Path,
		Timestamp: time.Now(),
	}

	if a.opts.IncludeVariables {
		result.Variables = a.findUnusedVariables(decls, content)
	}
	if a.opts.IncludeImports {
		result.Imports = findUnusedImports(res, content, a.opts.IncludeTypeOnly)
	}
	if a.opts.IncludeExports {
		result.Exports = findUnusedExports(decls, content)
	}
	if a.opts.IncludeDeadCode {
		result.DeadCode = findDeadCode(res)
	}

	if result.TotalFindings() == 0 {
		return nil
	}

	result.Recommendations = BuildRecommendations(result)
	result.ComputeSummary()
	return result
}

// findUnusedVariables classifies each declaration's usage profile and keeps
// those that are neither read, called nor exported, subject to the confidence
// and risk thresholds.
func (a *Analyzer) findUnusedVariables(decls []symbols.Decl, content string) []models.UnusedVariableFinding {
	var findings []models.UnusedVariableFinding

	for _, d := range decls {
		usage := buildUsageProfile(d.Name, content, d.Line)
		if !usage.Unused() {
			continue
		}

		finding := models.UnusedVariableFinding{
			Declaration:     d.Declaration,
			Exported:        d.Exported,
			Usage:           usage,
			Scope:           scopeFor(d.Keyword),
			RiskLevel:       riskFor(d),
			Confidence:      confidenceFor(d, usage),
			EstimatedImpact: impactFor(d),
			Context:         lineSnippet(content, d.Line),
			Enclosing:       d.Enclosing,
		}

		if finding.Confidence < a.opts.ConfidenceThreshold {
			continue
		}
		if finding.RiskLevel.Rank() > a.opts.RiskThreshold.Rank() {
			continue
		}

		findings = append(findings, finding)
	}

	return findings
}

// confidenceFor scores the finding. The base 0.8 rises when none of
// read/called/exported hold and falls for symbols whose use sites are harder
// to see statically.
func confidenceFor(d symbols.Decl, usage models.UsageProfile) float64 {
	c := 0.8
	if usage.Unused() {
		c += 0.1
	}
	if d.Kind == models.KindFunction || d.Kind == models.KindClass {
		c -= 0.1
	}
	if dynamicName(d.Name) {
		c -= 0.2
	}
	return clampConfidence(c)
}

// riskFor grades removal risk. Pure type-level symbols are always low risk
// regardless of export status; exported runtime symbols are high.
func riskFor(d symbols.Decl) models.RiskLevel {
	switch d.Kind {
	case models.KindInterface, models.KindType:
		return models.RiskLow
	}
	if d.Exported {
		return models.RiskHigh
	}
	return models.RiskMedium
}

// impactFor estimates the blast radius of removal.
func impactFor(d symbols.Decl) models.Impact {
	switch d.Kind {
	case models.KindInterface, models.KindType:
		return models.ImpactNone
	}
	if d.Exported {
		return models.ImpactHigh
	}
	if d.Kind == models.KindFunction || d.Kind == models.KindClass {
		return models.ImpactMedium
	}
	return models.ImpactLow
}

// scopeFor derives visibility from the declaring keyword. var hoists to the
// enclosing scope and can leak globally; const and let are block scoped;
// everything else binds at module level.
func scopeFor(keyword string) models.Scope {
	switch keyword {
	case "var":
		return models.ScopeGlobal
	case "const", "let":
		return models.ScopeLocal
	}
	return models.ScopeModule
}

// lineSnippet returns the trimmed declaring line for display.
func lineSnippet(content string, line int) string {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}
