package models

import "sort"

// RecommendationType names what kind of code a recommendation targets.
type RecommendationType string

const (
	RecVariable RecommendationType = "variable"
	RecImport   RecommendationType = "import"
	RecExport   RecommendationType = "export"
	RecFunction RecommendationType = "function"
	RecClass    RecommendationType = "class"
	RecBlock    RecommendationType = "block"
)

// Priority orders recommendations for presentation.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank returns an ordering value (critical sorts first).
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// Action is what the recommendation asks the developer to do.
type Action string

const (
	ActionRemove      Action = "remove"
	ActionOptimize    Action = "optimize"
	ActionRefactor    Action = "refactor"
	ActionInvestigate Action = "investigate"
)

// BenefitEstimate scores the expected payoff of acting on a recommendation.
type BenefitEstimate struct {
	Maintainability float64 `json:"maintainability"`
	Performance     float64 `json:"performance"`
	Readability     float64 `json:"readability"`
}

// Total sums the three sub-scores; used as the sort tie-breaker.
func (b BenefitEstimate) Total() float64 {
	return b.Maintainability + b.Performance + b.Readability
}

// CleanupRecommendation is an actionable, prioritized suggestion derived from
// a single finding.
type CleanupRecommendation struct {
	Type           RecommendationType `json:"type"`
	Priority       Priority           `json:"priority"`
	Action         Action             `json:"action"`
	Target         string             `json:"target"`
	File           string             `json:"file"`
	Line           int                `json:"line"`
	EndLine        int                `json:"end_line,omitempty"` // set for multi-line block targets
	Benefit        BenefitEstimate    `json:"benefit"`
	Risks          []string           `json:"risks,omitempty"`
	Automatable    bool               `json:"automatable"`
	Implementation string             `json:"implementation"`
}

// SortRecommendations orders recommendations by priority rank ascending
// (critical first), tie-broken by descending total benefit.
func SortRecommendations(recs []CleanupRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := recs[i].Priority.Rank(), recs[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return recs[i].Benefit.Total() > recs[j].Benefit.Total()
	})
}
