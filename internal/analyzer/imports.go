package analyzer

import (
	"strings"

	"github.com/vestigehq/vestige/internal/symbols"
	"github.com/vestigehq/vestige/pkg/models"
	"github.com/vestigehq/vestige/pkg/parser"
)

// developmentModules are module name fragments that indicate a dev-only
// dependency whose removal carries no production risk.
var developmentModules = []string{
	"@types/",
	"jest",
	"vitest",
	"mocha",
	"chai",
	"eslint",
	"prettier",
	"webpack",
	"storybook",
	"testing-library",
	"mock",
}

// findUnusedImports judges each import binding purely on occurrence count:
// a name referenced zero times outside its import line is unused.
func findUnusedImports(res *parser.ParseResult, content string, includeTypeOnly bool) []models.UnusedImportFinding {
	var findings []models.UnusedImportFinding

	for _, binding := range symbols.ExtractImports(res) {
		if binding.TypeOnly && !includeTypeOnly {
			continue
		}

		count := countOccurrences(binding.Name, content, binding.Line)
		if count > 0 {
			continue
		}

		devOnly := isDevelopmentModule(binding.Module)
		findings = append(findings, models.UnusedImportFinding{
			ImportName:       binding.Name,
			Kind:             binding.Kind,
			Module:           binding.Module,
			File:             res.Path,
			Line:             binding.Line,
			UsageCount:       count,
			TypeOnly:         binding.TypeOnly,
			DevelopmentOnly:  devOnly,
			EstimatedSavings: estimateSavings(binding),
		})
	}

	return findings
}

// isDevelopmentModule guesses from the module specifier whether the import
// only matters at development time.
func isDevelopmentModule(module string) bool {
	lower := strings.ToLower(module)
	for _, frag := range developmentModules {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// estimateSavings buckets the expected payoff of dropping the import.
// Package imports of whole modules weigh more than named bindings; type-only
// imports vanish at compile time and save nothing at runtime.
func estimateSavings(b symbols.ImportBinding) models.SavingsEstimate {
	if b.TypeOnly {
		return models.SavingsEstimate{BundleSize: "none", LoadTime: "none", Memory: "none"}
	}

	relative := strings.HasPrefix(b.Module, ".")
	switch b.Kind {
	case models.ImportNamespace, models.ImportDefault:
		if relative {
			return models.SavingsEstimate{BundleSize: "small", LoadTime: "small", Memory: "small"}
		}
		return models.SavingsEstimate{BundleSize: "moderate", LoadTime: "moderate", Memory: "small"}
	default:
		return models.SavingsEstimate{BundleSize: "small", LoadTime: "none", Memory: "none"}
	}
}
