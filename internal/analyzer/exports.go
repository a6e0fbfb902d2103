package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/vestigehq/vestige/internal/symbols"
	"github.com/vestigehq/vestige/pkg/models"
)

// entryFiles are conventional application entry points whose exports are
// consumed from outside the scanned tree.
var entryFiles = map[string]bool{
	"index.ts":  true,
	"index.tsx": true,
	"main.ts":   true,
	"main.tsx":  true,
	"app.ts":    true,
	"app.tsx":   true,
}

// findUnusedExports flags exported declarations that nothing else in the file
// references. Whether some other file imports them is settled later during
// reconciliation against the global index.
func findUnusedExports(decls []symbols.Decl, content string) []models.UnusedExportFinding {
	var findings []models.UnusedExportFinding

	for _, d := range decls {
		if !d.Exported {
			continue
		}
		if countOccurrences(d.Name, content, d.Line) > 0 {
			continue
		}
		findings = append(findings, models.UnusedExportFinding{
			Name:          d.Name,
			Kind:          d.Kind,
			File:          d.File,
			Line:          d.Line,
			RemovalSafety: removalSafety(d),
		})
	}

	return findings
}

// removalSafety grades an export removal. Entry file exports are the public
// surface of the package and must never be auto-removed. Type-level symbols
// and underscore-prefixed names are compile-time or conventionally private.
func removalSafety(d symbols.Decl) models.RemovalSafety {
	if entryFiles[strings.ToLower(filepath.Base(d.File))] {
		return models.SafetyDangerous
	}
	if strings.HasPrefix(d.Name, "_") {
		return models.SafetySafe
	}
	switch d.Kind {
	case models.KindInterface, models.KindType:
		return models.SafetySafe
	}
	return models.SafetyWarning
}
