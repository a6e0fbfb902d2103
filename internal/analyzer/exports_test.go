package analyzer

import (
	"testing"

	"github.com/vestigehq/vestige/pkg/models"
)

func analyzePath(t *testing.T, path, src string) *models.DetectionResult {
	t.Helper()
	a := New(allOptions())
	defer a.Close()

	result, err := a.Analyze(path, []byte(src))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return result
}

func TestUnusedExportFlagged(t *testing.T) {
	result := analyzeSource(t, "export function helper() {}\n")
	if result == nil || len(result.Exports) != 1 {
		t.Fatalf("expected one export finding, got %+v", result)
	}

	exp := result.Exports[0]
	if exp.Name != "helper" {
		t.Errorf("Name = %q, want helper", exp.Name)
	}
	if exp.Kind != models.KindFunction {
		t.Errorf("Kind = %s, want function", exp.Kind)
	}
}

func TestLocallyUsedExportNotFlagged(t *testing.T) {
	result := analyzeSource(t, "export function helper() {}\nhelper();\n")
	if result != nil && len(result.Exports) > 0 {
		t.Errorf("locally used export should not be flagged, got %+v", result.Exports)
	}
}

func TestRemovalSafetyGrades(t *testing.T) {
	tests := []struct {
		name string
		path string
		src  string
		want models.RemovalSafety
	}{
		{"entry file export is dangerous", "src/index.ts", "export const api = 1;\n", models.SafetyDangerous},
		{"main file export is dangerous", "src/main.ts", "export const boot = 1;\n", models.SafetyDangerous},
		{"underscore prefix is safe", "src/util.ts", "export const _internal = 1;\n", models.SafetySafe},
		{"type export is safe", "src/types.ts", "export interface Shape { x: number; }\n", models.SafetySafe},
		{"plain export warns", "src/util.ts", "export const token = 1;\n", models.SafetyWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzePath(t, tt.path, tt.src)
			if result == nil || len(result.Exports) != 1 {
				t.Fatalf("expected one export finding, got %+v", result)
			}
			if got := result.Exports[0].RemovalSafety; got != tt.want {
				t.Errorf("RemovalSafety = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNonExportedDeclarationNotInExports(t *testing.T) {
	result := analyzeSource(t, "const quiet = 1;\n")
	if result == nil {
		t.Fatal("expected a result")
	}
	if len(result.Exports) != 0 {
		t.Errorf("non-exported declaration should not yield export findings, got %+v", result.Exports)
	}
}
