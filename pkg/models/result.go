package models

import "time"

// ResultSummary is the per-file rollup attached to a DetectionResult.
type ResultSummary struct {
	TotalUnused         int       `json:"total_unused"`
	TotalSavings        float64   `json:"total_savings"` // summed removal benefit estimate
	RiskLevel           RiskLevel `json:"risk_level"`    // worst risk across findings
	AutomationPotential float64   `json:"automation_potential"`
}

// DetectionResult is the per-file aggregate of all findings and the
// recommendations derived from them. A result is only retained when its total
// finding count is non-zero.
type DetectionResult struct {
	File            string                  `json:"file"`
	Variables       []UnusedVariableFinding `json:"variables"`
	Imports         []UnusedImportFinding   `json:"imports"`
	Exports         []UnusedExportFinding   `json:"exports"`
	DeadCode        []DeadCodeBlock         `json:"dead_code"`
	Recommendations []CleanupRecommendation `json:"recommendations"`
	Summary         ResultSummary           `json:"summary"`
	Timestamp       time.Time               `json:"timestamp"`
}

// TotalFindings counts findings across all four categories.
func (r *DetectionResult) TotalFindings() int {
	return len(r.Variables) + len(r.Imports) + len(r.Exports) + len(r.DeadCode)
}

// ComputeSummary recomputes the rollup from the current findings and
// recommendations.
func (r *DetectionResult) ComputeSummary() {
	s := ResultSummary{
		TotalUnused: r.TotalFindings(),
		RiskLevel:   RiskLow,
	}

	for _, v := range r.Variables {
		if v.RiskLevel.Rank() > s.RiskLevel.Rank() {
			s.RiskLevel = v.RiskLevel
		}
	}
	for _, b := range r.DeadCode {
		s.TotalSavings += b.RemovalBenefit
	}
	for range r.Imports {
		s.TotalSavings += 0.1
	}

	if len(r.Recommendations) > 0 {
		automatable := 0
		for _, rec := range r.Recommendations {
			if rec.Automatable {
				automatable++
			}
		}
		s.AutomationPotential = float64(automatable) / float64(len(r.Recommendations))
	}

	r.Summary = s
}

// AggregateSummary rolls up detection results across files.
type AggregateSummary struct {
	Files                int     `json:"files"`
	TotalVariables       int     `json:"total_variables"`
	TotalImports         int     `json:"total_imports"`
	TotalExports         int     `json:"total_exports"`
	TotalDeadBlocks      int     `json:"total_dead_blocks"`
	TotalDeadLines       int     `json:"total_dead_lines"`
	TotalRecommendations int     `json:"total_recommendations"`
	AverageAutomation    float64 `json:"average_automation"`
	MedianConfidence     float64 `json:"median_confidence"`
}

// RunStatus reports detector state to callers.
type RunStatus struct {
	Analyzing    bool       `json:"analyzing"`
	ResultsCount int        `json:"results_count"`
	LastAnalysis *time.Time `json:"last_analysis,omitempty"`
}
