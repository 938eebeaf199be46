package model

// CheckOutcome is the evaluated result of one Tech Insights check against an entity.
type CheckOutcome struct {
	Passed      bool
	Title       string
	Description string
}

// ResultSet is the normalized, renderable view of an on-demand run.
// Outcomes keep the order in which the API returned them.
type ResultSet struct {
	Mode         RunMode
	Title        string // Scorecard title, or the representative check's name.
	Description  string
	Outcomes     []CheckOutcome
	SuccessCount int
	Total        int
}

// Passed reports whether every outcome in the set passed.
// An empty set never passes.
func (r *ResultSet) Passed() bool {
	return r.Total > 0 && r.SuccessCount == r.Total
}

// RunResult is the decoded response of an on-demand run. It is one of
// *CheckRunResult, *ScorecardRunResult or EmptyRunResult and is decided once
// at the API boundary.
type RunResult interface {
	isRunResult()
}

// CheckRunResult carries the outcomes of a single check.
type CheckRunResult struct {
	Outcomes []CheckOutcome
}

// EntityOutcomes groups the check outcomes produced for one entity of a scorecard run.
type EntityOutcomes struct {
	EntityRef string
	Outcomes  []CheckOutcome
}

// ScorecardRunResult carries the outcomes of every check in a scorecard.
type ScorecardRunResult struct {
	Title       string
	Description string
	Entities    []EntityOutcomes
}

// EmptyRunResult means the API returned no data for the requested id.
type EmptyRunResult struct{}

func (*CheckRunResult) isRunResult()     {}
func (*ScorecardRunResult) isRunResult() {}
func (EmptyRunResult) isRunResult()      {}
