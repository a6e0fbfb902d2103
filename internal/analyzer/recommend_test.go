package analyzer

import (
	"testing"

	"github.com/vestigehq/vestige/pkg/models"
)

func TestVariablePromotionRules(t *testing.T) {
	tests := []struct {
		name        string
		risk        models.RiskLevel
		confidence  float64
		promoted    bool
		automatable bool
	}{
		{"low risk high confidence", models.RiskLow, 0.95, true, true},
		{"low risk moderate confidence", models.RiskLow, 0.85, true, false},
		{"low risk at boundary", models.RiskLow, 0.8, false, false},
		{"medium risk never promoted", models.RiskMedium, 0.95, false, false},
		{"high risk never promoted", models.RiskHigh, 0.99, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &models.DetectionResult{
				File: "a.ts",
				Variables: []models.UnusedVariableFinding{{
					Declaration: models.Declaration{Name: "v", Kind: models.KindVariable, File: "a.ts", Line: 1},
					RiskLevel:   tt.risk,
					Confidence:  tt.confidence,
				}},
			}
			recs := BuildRecommendations(result)
			if tt.promoted != (len(recs) == 1) {
				t.Fatalf("promoted = %v, want %v", len(recs) == 1, tt.promoted)
			}
			if tt.promoted && recs[0].Automatable != tt.automatable {
				t.Errorf("Automatable = %v, want %v", recs[0].Automatable, tt.automatable)
			}
		})
	}
}

func TestImportAlwaysPromoted(t *testing.T) {
	result := &models.DetectionResult{
		File: "a.ts",
		Imports: []models.UnusedImportFinding{
			{ImportName: "lodash", Module: "lodash", File: "a.ts", Line: 1},
			{ImportName: "mocked", Module: "jest-mock", File: "a.ts", Line: 2, DevelopmentOnly: true},
		},
	}
	recs := BuildRecommendations(result)
	if len(recs) != 2 {
		t.Fatalf("recs = %d, want 2", len(recs))
	}

	for _, rec := range recs {
		if !rec.Automatable {
			t.Errorf("import recommendation for %q should be automatable", rec.Target)
		}
		switch rec.Target {
		case "lodash":
			if len(rec.Risks) == 0 {
				t.Error("production import should carry a side-effect risk note")
			}
		case "mocked":
			if len(rec.Risks) != 0 {
				t.Errorf("development-only import should carry no risks, got %v", rec.Risks)
			}
		}
	}
}

func TestExportPromotionRules(t *testing.T) {
	result := &models.DetectionResult{
		File: "a.ts",
		Exports: []models.UnusedExportFinding{
			{Name: "safe", File: "a.ts", Line: 1, RemovalSafety: models.SafetySafe},
			{Name: "warn", File: "a.ts", Line: 2, RemovalSafety: models.SafetyWarning},
			{Name: "danger", File: "a.ts", Line: 3, RemovalSafety: models.SafetyDangerous},
		},
	}
	recs := BuildRecommendations(result)
	if len(recs) != 2 {
		t.Fatalf("recs = %d, want 2 (dangerous export excluded)", len(recs))
	}

	for _, rec := range recs {
		switch rec.Target {
		case "safe":
			if !rec.Automatable {
				t.Error("safe export should be automatable")
			}
		case "warn":
			if rec.Automatable {
				t.Error("warning export should not be automatable")
			}
		case "danger":
			t.Error("dangerous export should not be promoted")
		}
	}
}

func TestDeadCodeAlwaysPromoted(t *testing.T) {
	result := &models.DetectionResult{
		File: "a.ts",
		DeadCode: []models.DeadCodeBlock{
			{File: "a.ts", StartLine: 5, EndLine: 8, Reason: "Code after return statement", RemovalBenefit: 0.4},
		},
	}
	recs := BuildRecommendations(result)
	if len(recs) != 1 {
		t.Fatalf("recs = %d, want 1", len(recs))
	}
	if !recs[0].Automatable {
		t.Error("dead code removal should be automatable")
	}
	if recs[0].Line != 5 || recs[0].EndLine != 8 {
		t.Errorf("lines = %d-%d, want 5-8", recs[0].Line, recs[0].EndLine)
	}
}

func TestRecommendationOrdering(t *testing.T) {
	result := &models.DetectionResult{
		File: "a.ts",
		Variables: []models.UnusedVariableFinding{{
			Declaration: models.Declaration{Name: "v", Kind: models.KindVariable, File: "a.ts", Line: 1},
			RiskLevel:   models.RiskLow,
			Confidence:  0.95,
		}},
		Imports: []models.UnusedImportFinding{
			{ImportName: "dep", Module: "dep", File: "a.ts", Line: 2},
		},
	}
	recs := BuildRecommendations(result)
	if len(recs) != 2 {
		t.Fatalf("recs = %d, want 2", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Priority.Rank() > recs[i].Priority.Rank() {
			t.Errorf("recommendations out of priority order: %s before %s", recs[i-1].Priority, recs[i].Priority)
		}
	}
	if recs[0].Type != models.RecImport {
		t.Errorf("high-priority import should sort first, got %s", recs[0].Type)
	}
}

func TestRecTypeMapping(t *testing.T) {
	if recTypeFor(models.KindFunction) != models.RecFunction {
		t.Error("function kind should map to function recommendation")
	}
	if recTypeFor(models.KindClass) != models.RecClass {
		t.Error("class kind should map to class recommendation")
	}
	if recTypeFor(models.KindVariable) != models.RecVariable {
		t.Error("variable kind should map to variable recommendation")
	}
}
