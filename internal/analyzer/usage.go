package analyzer

import (
	"regexp"
	"strings"

	"github.com/vestigehq/vestige/pkg/models"
)

// usageMatcher holds the compiled per-name patterns that classify how a
// symbol is referenced. Patterns are line-oriented heuristics; the tree-sitter
// layer finds declarations, this layer decides whether they are used.
type usageMatcher struct {
	assigned []*regexp.Regexp
	read     []*regexp.Regexp
	called   []*regexp.Regexp
	exported []*regexp.Regexp
	imported []*regexp.Regexp
	word     *regexp.Regexp
}

// newUsageMatcher compiles the pattern set for one symbol name.
func newUsageMatcher(name string) *usageMatcher {
	q := regexp.QuoteMeta(name)
	w := `\b` + q + `\b`

	compile := func(exprs ...string) []*regexp.Regexp {
		res := make([]*regexp.Regexp, len(exprs))
		for i, e := range exprs {
			res[i] = regexp.MustCompile(e)
		}
		return res
	}

	return &usageMatcher{
		assigned: compile(
			w+`\s*(\+=|-=|\*=|/=|%=|\*\*=|&&=|\|\|=|\?\?=)`,
			w+`\s*=[^=]`,
			w+`\s*=$`,
			w+`\s*(\+\+|--)`,
			`(\+\+|--)\s*`+w,
		),
		read: compile(
			w+`\s*\.`,
			w+`\?\.`,
			w+`\s*\[`,
			`\$\{[^}]*`+w,
			w+`\s*(&&|\|\|)`,
			`(&&|\|\|)\s*`+w,
			w+`\s*(===|!==|==|!=|<=|>=)`,
			w+`\s*[<>+*/%-]\s*[\w('"]`,
			`(===|!==|==|!=|<=|>=)\s*`+w,
			`\breturn\s+[^;]*`+w,
			`\bthrow\s+[^;]*`+w,
			`\b(if|while|switch)\s*\([^)]*`+w,
			`\bfor\s*\([^)]*`+w,
			`console\.\w+\s*\([^)]*`+w,
			`[=([{,]\s*`+w+`\s*[)\]},;.]`,
			`[=([{,]\s*`+w+`\s*$`,
			`\.\.\.`+w,
		),
		called: compile(
			w+`\s*\(`,
			`\bnew\s+`+q+`\b`,
			w+`\.(apply|call|bind)\b`,
		),
		exported: compile(
			`export\s*\{[^}]*`+w,
			`export\s+default\s+`+w,
			`export\s+`+w,
			`module\.exports\s*=[^;]*`+w,
			`module\.exports\.`+w,
			`\bexports\.`+w,
		),
		imported: compile(
			`import\s+type\s*\{[^}]*`+w,
			`import\s*\{[^}]*`+w,
			`import\s+`+w,
			`import\s*\*\s*as\s+`+q+`\b`,
			`\b(const|let|var)\s*\{[^}]*`+w+`[^}]*\}\s*=\s*require`,
		),
		word: regexp.MustCompile(w),
	}
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// blankLine returns content with the given 1-based line replaced by an empty
// string, preserving line count.
func blankLine(content string, line int) string {
	lines := strings.Split(content, "\n")
	if line >= 1 && line <= len(lines) {
		lines[line-1] = ""
	}
	return strings.Join(lines, "\n")
}

// buildUsageProfile classifies how name is referenced in content, with the
// declaring line blanked out so the declaration never counts as its own
// usage.
func buildUsageProfile(name, content string, declLine int) models.UsageProfile {
	m := newUsageMatcher(name)
	scanned := blankLine(content, declLine)

	return models.UsageProfile{
		Assigned: anyMatch(m.assigned, scanned),
		Read:     anyMatch(m.read, scanned),
		Called:   anyMatch(m.called, scanned),
		Exported: anyMatch(m.exported, scanned),
		Imported: anyMatch(m.imported, scanned),
	}
}

// countOccurrences counts whole-word occurrences of name in content outside
// the given 1-based line.
func countOccurrences(name, content string, excludeLine int) int {
	m := newUsageMatcher(name)
	return len(m.word.FindAllStringIndex(blankLine(content, excludeLine), -1))
}

// dynamicName reports whether the symbol name hints at reflection-style
// access the static scan cannot see.
func dynamicName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "dynamic") || strings.Contains(lower, "runtime")
}

// clampConfidence bounds a confidence score to [0.1, 1.0].
func clampConfidence(c float64) float64 {
	if c < 0.1 {
		return 0.1
	}
	if c > 1.0 {
		return 1.0
	}
	return c
}
