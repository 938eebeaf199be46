package driven

import (
	"context"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

// OnDemandRequest is the payload of an on-demand run.
type OnDemandRequest struct {
	EntityRef string
	BranchRef string
}

// InsightsClient defines the driven port for the Tech Insights API.
type InsightsClient interface {
	// TriggerOnDemand runs the target check or scorecard against an entity and
	// returns the decoded result.
	TriggerOnDemand(ctx context.Context, target model.RunTarget, req OnDemandRequest) (model.RunResult, error)
}
