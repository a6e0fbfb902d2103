package analyzer

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vestigehq/vestige/internal/index"
	"github.com/vestigehq/vestige/pkg/models"
)

// Reconcile runs the cross-file pass over per-file results. Exported variable
// findings that turn out to be imported elsewhere are demoted: read flips to
// true and confidence halves. Export findings with a detected importer are
// dropped outright. Reconciliation never adds findings; per-file counts only
// shrink, and results left empty are deleted from the map. Recommendations
// and summaries are rebuilt for every touched result.
func Reconcile(results map[string]*models.DetectionResult, idx *index.Index) {
	for file, result := range results {
		touched := false

		for i := range result.Variables {
			v := &result.Variables[i]
			if (!v.Exported && !v.Usage.Exported) || v.Usage.Read {
				continue
			}
			if hasImporter(file, v.Name, idx) {
				v.Usage.Read = true
				v.Confidence = clampConfidence(v.Confidence * 0.5)
				touched = true
			}
		}

		kept := result.Exports[:0]
		for _, exp := range result.Exports {
			if hasImporter(file, exp.Name, idx) {
				touched = true
				continue
			}
			kept = append(kept, exp)
		}
		result.Exports = kept

		if result.TotalFindings() == 0 {
			delete(results, file)
			continue
		}
		if touched {
			result.Recommendations = BuildRecommendations(result)
			result.ComputeSummary()
		}
	}
}

// hasImporter reports whether any other indexed file imports the named symbol
// from declFile. Candidates come from the module-reference index; the match
// is confirmed against the candidate's raw text. Files deleted since indexing
// read as "no match", never as an error.
func hasImporter(declFile, name string, idx *index.Index) bool {
	if idx == nil {
		return false
	}
	base := moduleBasename(declFile)
	if base == "" {
		return false
	}

	for otherFile, refs := range idx.Refs {
		if otherFile == declFile {
			continue
		}
		if !refsModule(refs, base) {
			continue
		}
		content, err := os.ReadFile(otherFile)
		if err != nil {
			continue
		}
		if importMentions(string(content), base, name) {
			return true
		}
	}
	return false
}

// moduleBasename strips the extension a TypeScript import specifier omits.
func moduleBasename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".tsx")
	base = strings.TrimSuffix(base, ".ts")
	return base
}

// refsModule reports whether any specifier in the set resolves to base.
func refsModule(refs index.Set, base string) bool {
	for spec := range refs {
		if moduleBasename(spec) == base {
			return true
		}
	}
	return false
}

// importMentions checks the raw text for an import of the module that names
// the symbol.
func importMentions(content, base, name string) bool {
	nameRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "import") && !strings.Contains(line, "require") {
			continue
		}
		if !strings.Contains(line, base) {
			continue
		}
		if nameRe.MatchString(line) {
			return true
		}
	}
	return false
}
