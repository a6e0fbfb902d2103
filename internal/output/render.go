package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vestigehq/vestige/pkg/models"
)

// DetectionReport builds the full multi-section report for a detection run.
func DetectionReport(results []*models.DetectionResult, summary models.AggregateSummary) *Report {
	report := &Report{
		Title: "Unused Code Report",
		Data: map[string]any{
			"results": results,
			"summary": summary,
		},
	}

	if rows := variableRows(results); len(rows) > 0 {
		report.Sections = append(report.Sections, NewTable(
			"Unused Variables",
			[]string{"File", "Line", "Name", "Kind", "Risk", "Confidence"},
			rows, nil, nil,
		))
	}
	if rows := importRows(results); len(rows) > 0 {
		report.Sections = append(report.Sections, NewTable(
			"Unused Imports",
			[]string{"File", "Line", "Import", "Module", "Type Only"},
			rows, nil, nil,
		))
	}
	if rows := exportRows(results); len(rows) > 0 {
		report.Sections = append(report.Sections, NewTable(
			"Unused Exports",
			[]string{"File", "Line", "Name", "Kind", "Safety"},
			rows, nil, nil,
		))
	}
	if rows := deadCodeRows(results); len(rows) > 0 {
		report.Sections = append(report.Sections, NewTable(
			"Dead Code",
			[]string{"File", "Lines", "Reason", "Benefit"},
			rows, nil, nil,
		))
	}

	report.Sections = append(report.Sections, SummaryTable(summary))
	return report
}

// SummaryTable renders the aggregate rollup.
func SummaryTable(s models.AggregateSummary) *Table {
	rows := [][]string{
		{"Files with findings", fmt.Sprintf("%d", s.Files)},
		{"Unused variables", fmt.Sprintf("%d", s.TotalVariables)},
		{"Unused imports", fmt.Sprintf("%d", s.TotalImports)},
		{"Unused exports", fmt.Sprintf("%d", s.TotalExports)},
		{"Dead code blocks", fmt.Sprintf("%d (%d lines)", s.TotalDeadBlocks, s.TotalDeadLines)},
		{"Recommendations", fmt.Sprintf("%d", s.TotalRecommendations)},
		{"Automation potential", fmt.Sprintf("%.0f%%", s.AverageAutomation*100)},
		{"Median confidence", fmt.Sprintf("%.2f", s.MedianConfidence)},
	}
	return NewTable("Summary", []string{"Metric", "Value"}, rows, nil, s)
}

// RecommendationTable renders one file's recommendations.
func RecommendationTable(result *models.DetectionResult) *Table {
	rows := make([][]string, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		auto := ""
		if rec.Automatable {
			auto = "yes"
		}
		rows = append(rows, []string{
			string(rec.Priority),
			string(rec.Type),
			rec.Target,
			fmt.Sprintf("%d", rec.Line),
			auto,
			strings.Join(rec.Risks, "; "),
		})
	}
	return NewTable(
		fmt.Sprintf("Recommendations: %s", shortPath(result.File)),
		[]string{"Priority", "Type", "Target", "Line", "Auto", "Risks"},
		rows, nil, result.Recommendations,
	)
}

func variableRows(results []*models.DetectionResult) [][]string {
	var rows [][]string
	for _, r := range results {
		for _, v := range r.Variables {
			rows = append(rows, []string{
				shortPath(r.File),
				fmt.Sprintf("%d", v.Line),
				v.Name,
				string(v.Kind),
				string(v.RiskLevel),
				fmt.Sprintf("%.2f", v.Confidence),
			})
		}
	}
	return rows
}

func importRows(results []*models.DetectionResult) [][]string {
	var rows [][]string
	for _, r := range results {
		for _, imp := range r.Imports {
			typeOnly := ""
			if imp.TypeOnly {
				typeOnly = "yes"
			}
			rows = append(rows, []string{
				shortPath(r.File),
				fmt.Sprintf("%d", imp.Line),
				imp.ImportName,
				imp.Module,
				typeOnly,
			})
		}
	}
	return rows
}

func exportRows(results []*models.DetectionResult) [][]string {
	var rows [][]string
	for _, r := range results {
		for _, exp := range r.Exports {
			rows = append(rows, []string{
				shortPath(r.File),
				fmt.Sprintf("%d", exp.Line),
				exp.Name,
				string(exp.Kind),
				string(exp.RemovalSafety),
			})
		}
	}
	return rows
}

func deadCodeRows(results []*models.DetectionResult) [][]string {
	var rows [][]string
	for _, r := range results {
		for _, b := range r.DeadCode {
			rows = append(rows, []string{
				shortPath(r.File),
				fmt.Sprintf("%d-%d", b.StartLine, b.EndLine),
				b.Reason,
				fmt.Sprintf("%.1f", b.RemovalBenefit),
			})
		}
	}
	return rows
}

// shortPath trims the path to its last two elements for display.
func shortPath(path string) string {
	dir, base := filepath.Split(path)
	parent := filepath.Base(strings.TrimSuffix(dir, string(filepath.Separator)))
	if parent == "." || parent == string(filepath.Separator) || parent == "" {
		return base
	}
	return filepath.Join(parent, base)
}
