package models

// SymbolKind classifies a declared symbol.
type SymbolKind string

const (
	KindVariable  SymbolKind = "variable"
	KindFunction  SymbolKind = "function"
	KindClass     SymbolKind = "class"
	KindInterface SymbolKind = "interface"
	KindType      SymbolKind = "type"
	KindEnum      SymbolKind = "enum"
	KindImport    SymbolKind = "import"
	KindExport    SymbolKind = "export"
)

// Scope describes where a declaration is visible.
type Scope string

const (
	ScopeLocal  Scope = "local"
	ScopeModule Scope = "module"
	ScopeGlobal Scope = "global"
)

// RiskLevel estimates how dangerous removing a finding is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank returns an ordering value for risk comparison (low < medium < high).
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return 1
	}
}

// Impact estimates the blast radius of removing a symbol.
type Impact string

const (
	ImpactNone   Impact = "none"
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Declaration is a source-level symbol definition captured with its position.
type Declaration struct {
	Name    string     `json:"name"`
	Kind    SymbolKind `json:"kind"`
	Keyword string     `json:"keyword"` // const, let, var, function, class, interface, type, enum
	File    string     `json:"file"`
	Line    int        `json:"line"`   // 1-based
	Column  int        `json:"column"` // byte offset of the identifier within the line
}

// UsageProfile records the ways a declared symbol is referenced elsewhere in
// its file. It is computed with the declaration's own line blanked out so the
// declaration never counts as its own usage.
type UsageProfile struct {
	Assigned bool `json:"assigned"`
	Read     bool `json:"read"`
	Called   bool `json:"called"`
	Exported bool `json:"exported"`
	Imported bool `json:"imported"`
}

// Unused reports whether the profile qualifies the declaration as unused.
func (u UsageProfile) Unused() bool {
	return !u.Read && !u.Called && !u.Exported
}

// UnusedVariableFinding is a declaration classified as unused, enriched with
// risk, confidence and impact heuristics.
type UnusedVariableFinding struct {
	Declaration
	// Exported reports whether the declaration itself is export-wrapped.
	// Distinct from Usage.Exported, which only sees export mentions outside
	// the declaring line.
	Exported        bool         `json:"exported"`
	Usage           UsageProfile `json:"usage"`
	Scope           Scope        `json:"scope"`
	RiskLevel       RiskLevel    `json:"risk_level"`
	Confidence      float64      `json:"confidence"` // clamped to [0.1, 1.0]
	EstimatedImpact Impact       `json:"estimated_impact"`
	Context         string       `json:"context,omitempty"`   // declaring line snippet
	Enclosing       string       `json:"enclosing,omitempty"` // enclosing function or class, if any
}

// ImportKind classifies an import binding.
type ImportKind string

const (
	ImportDefault   ImportKind = "default"
	ImportNamed     ImportKind = "named"
	ImportNamespace ImportKind = "namespace"
)

// SavingsEstimate is a coarse bucket estimate of what removing an import buys.
type SavingsEstimate struct {
	BundleSize string `json:"bundle_size"` // none, small, moderate
	LoadTime   string `json:"load_time"`
	Memory     string `json:"memory"`
}

// UnusedImportFinding is one unused import binding.
type UnusedImportFinding struct {
	ImportName       string          `json:"import_name"`
	Kind             ImportKind      `json:"kind"`
	Module           string          `json:"module"` // module specifier as written
	File             string          `json:"file"`
	Line             int             `json:"line"`
	UsageCount       int             `json:"usage_count"` // occurrences outside the import line
	TypeOnly         bool            `json:"type_only"`
	DevelopmentOnly  bool            `json:"development_only"`
	EstimatedSavings SavingsEstimate `json:"estimated_savings"`
}

// RemovalSafety grades how safely an export can be deleted.
type RemovalSafety string

const (
	SafetySafe      RemovalSafety = "safe"
	SafetyWarning   RemovalSafety = "warning"
	SafetyDangerous RemovalSafety = "dangerous"
)

// UnusedExportFinding is an exported symbol with no detected importers.
type UnusedExportFinding struct {
	Name          string        `json:"name"`
	Kind          SymbolKind    `json:"kind"`
	File          string        `json:"file"`
	Line          int           `json:"line"`
	RemovalSafety RemovalSafety `json:"removal_safety"`
}

// DeadCodeBlock is a contiguous source range statically judged unreachable.
type DeadCodeBlock struct {
	File           string  `json:"file"`
	StartLine      int     `json:"start_line"`
	EndLine        int     `json:"end_line"`
	Reason         string  `json:"reason"`
	Complexity     int     `json:"complexity"`
	RemovalBenefit float64 `json:"removal_benefit"` // 0-1
}

// Lines returns the number of source lines the block covers.
func (b DeadCodeBlock) Lines() int {
	return b.EndLine - b.StartLine + 1
}
