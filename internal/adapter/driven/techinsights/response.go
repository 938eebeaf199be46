package techinsights

import (
	"bytes"
	"encoding/json"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

// runResponse is the envelope of an on-demand run response. data is absent
// (or null) when the id matched nothing that could be evaluated.
type runResponse struct {
	Data json.RawMessage `json:"data"`
}

// checkResultJSON is a single evaluated check as returned by the API.
type checkResultJSON struct {
	Result bool `json:"result"`
	Check  struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"check"`
}

// checkData is the data of a check run.
type checkData struct {
	Results []checkResultJSON `json:"results"`
}

// scorecardData is the data of a scorecard run: one result list per entity.
type scorecardData struct {
	Scorecard struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"scorecard"`
	CheckResults []struct {
		Entity  string            `json:"entity"`
		Results []checkResultJSON `json:"results"`
	} `json:"checkResults"`
}

// decodeRunResult decides the variant of a response once: scorecard responses
// carry checkResults at the top of data, check responses do not.
func decodeRunResult(raw []byte) (model.RunResult, error) {
	var envelope runResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 || bytes.Equal(bytes.TrimSpace(envelope.Data), []byte("null")) {
		return model.EmptyRunResult{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Data, &fields); err != nil {
		return nil, err
	}

	if _, ok := fields["checkResults"]; ok {
		var data scorecardData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, err
		}
		result := &model.ScorecardRunResult{
			Title:       data.Scorecard.Title,
			Description: data.Scorecard.Description,
		}
		for _, entity := range data.CheckResults {
			result.Entities = append(result.Entities, model.EntityOutcomes{
				EntityRef: entity.Entity,
				Outcomes:  mapOutcomes(entity.Results),
			})
		}
		return result, nil
	}

	var data checkData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, err
	}
	return &model.CheckRunResult{Outcomes: mapOutcomes(data.Results)}, nil
}

func mapOutcomes(results []checkResultJSON) []model.CheckOutcome {
	outcomes := make([]model.CheckOutcome, 0, len(results))
	for _, r := range results {
		outcomes = append(outcomes, model.CheckOutcome{
			Passed:      r.Result,
			Title:       r.Check.Name,
			Description: r.Check.Description,
		})
	}
	return outcomes
}
