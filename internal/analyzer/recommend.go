package analyzer

import (
	"fmt"

	"github.com/vestigehq/vestige/pkg/models"
)

// BuildRecommendations derives prioritized cleanup recommendations from a
// file's findings. One recommendation per qualifying finding; the returned
// slice is sorted by priority, then by total benefit.
func BuildRecommendations(result *models.DetectionResult) []models.CleanupRecommendation {
	var recs []models.CleanupRecommendation

	for _, v := range result.Variables {
		if v.RiskLevel != models.RiskLow || v.Confidence <= 0.8 {
			continue
		}
		recs = append(recs, models.CleanupRecommendation{
			Type:     recTypeFor(v.Kind),
			Priority: models.PriorityMedium,
			Action:   models.ActionRemove,
			Target:   v.Name,
			File:     v.File,
			Line:     v.Line,
			Benefit: models.BenefitEstimate{
				Maintainability: 0.6,
				Readability:     0.5,
			},
			Automatable:    v.Confidence > 0.9,
			Implementation: fmt.Sprintf("Remove the unused %s '%s' declared at line %d", v.Kind, v.Name, v.Line),
		})
	}

	for _, imp := range result.Imports {
		rec := models.CleanupRecommendation{
			Type:     models.RecImport,
			Priority: models.PriorityHigh,
			Action:   models.ActionRemove,
			Target:   imp.ImportName,
			File:     imp.File,
			Line:     imp.Line,
			Benefit: models.BenefitEstimate{
				Maintainability: 0.4,
				Performance:     performanceScore(imp.EstimatedSavings),
				Readability:     0.4,
			},
			Automatable:    true,
			Implementation: fmt.Sprintf("Remove the unused import '%s' from '%s' at line %d", imp.ImportName, imp.Module, imp.Line),
		}
		if !imp.DevelopmentOnly {
			rec.Risks = append(rec.Risks, "may be used for side effects")
		}
		recs = append(recs, rec)
	}

	for _, exp := range result.Exports {
		if exp.RemovalSafety == models.SafetyDangerous {
			continue
		}
		rec := models.CleanupRecommendation{
			Type:     models.RecExport,
			Priority: models.PriorityLow,
			Action:   models.ActionInvestigate,
			Target:   exp.Name,
			File:     exp.File,
			Line:     exp.Line,
			Benefit: models.BenefitEstimate{
				Maintainability: 0.5,
				Readability:     0.3,
			},
			Automatable:    exp.RemovalSafety == models.SafetySafe,
			Implementation: fmt.Sprintf("Remove the unused export '%s' at line %d after confirming no external consumers", exp.Name, exp.Line),
		}
		if exp.RemovalSafety == models.SafetyWarning {
			rec.Risks = append(rec.Risks, "export may be consumed outside the scanned tree")
		}
		recs = append(recs, rec)
	}

	for _, block := range result.DeadCode {
		recs = append(recs, models.CleanupRecommendation{
			Type:     models.RecBlock,
			Priority: models.PriorityHigh,
			Action:   models.ActionRemove,
			Target:   block.Reason,
			File:     block.File,
			Line:     block.StartLine,
			EndLine:  block.EndLine,
			Benefit: models.BenefitEstimate{
				Maintainability: block.RemovalBenefit,
				Readability:     0.6,
			},
			Automatable:    true,
			Implementation: fmt.Sprintf("Remove unreachable code at lines %d-%d (%s)", block.StartLine, block.EndLine, block.Reason),
		})
	}

	models.SortRecommendations(recs)
	return recs
}

// recTypeFor maps a symbol kind to the recommendation type it produces.
func recTypeFor(kind models.SymbolKind) models.RecommendationType {
	switch kind {
	case models.KindFunction:
		return models.RecFunction
	case models.KindClass:
		return models.RecClass
	default:
		return models.RecVariable
	}
}

// performanceScore translates coarse savings buckets into a benefit score.
func performanceScore(s models.SavingsEstimate) float64 {
	switch s.BundleSize {
	case "moderate":
		return 0.5
	case "small":
		return 0.2
	default:
		return 0.0
	}
}
