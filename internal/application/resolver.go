package application

import (
	"errors"
	"fmt"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

// ErrEmptyResult is returned when an on-demand run produced nothing to report:
// the id matched no evaluable entity, or the check returned no outcomes.
// Callers treat it as informational.
var ErrEmptyResult = errors.New("on-demand run returned no results")

// Resolve normalizes a decoded on-demand run into a ResultSet.
//
// Scorecard results are flattened across entities in the order returned by
// the API. Check results keep only the first outcome: a check id is expected
// to yield exactly one outcome per entity.
func Resolve(raw model.RunResult) (*model.ResultSet, error) {
	switch r := raw.(type) {
	case *model.ScorecardRunResult:
		return resolveScorecard(r), nil
	case *model.CheckRunResult:
		return resolveCheck(r)
	case model.EmptyRunResult, nil:
		return nil, ErrEmptyResult
	default:
		return nil, fmt.Errorf("unsupported run result type %T", raw)
	}
}

func resolveScorecard(r *model.ScorecardRunResult) *model.ResultSet {
	var outcomes []model.CheckOutcome
	for _, entity := range r.Entities {
		outcomes = append(outcomes, entity.Outcomes...)
	}

	successCount := 0
	for _, o := range outcomes {
		if o.Passed {
			successCount++
		}
	}

	return &model.ResultSet{
		Mode:         model.RunModeScorecard,
		Title:        r.Title,
		Description:  r.Description,
		Outcomes:     outcomes,
		SuccessCount: successCount,
		Total:        len(outcomes),
	}
}

func resolveCheck(r *model.CheckRunResult) (*model.ResultSet, error) {
	if len(r.Outcomes) == 0 {
		return nil, ErrEmptyResult
	}

	first := r.Outcomes[0]
	successCount := 0
	if first.Passed {
		successCount = 1
	}

	return &model.ResultSet{
		Mode:         model.RunModeCheck,
		Title:        first.Title,
		Description:  first.Description,
		Outcomes:     []model.CheckOutcome{first},
		SuccessCount: successCount,
		Total:        1,
	}, nil
}
