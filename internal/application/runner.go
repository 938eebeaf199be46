package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
	"github.com/ericfisherdev/techinsights-action/internal/domain/port/driven"
)

// ErrEntitySelector is returned when the entity selector does not address an
// entity of the manifest.
var ErrEntitySelector = errors.New("entity selector out of range")

// RunInput is everything one invocation needs, built once at process start.
type RunInput struct {
	Target          model.RunTarget
	CatalogInfoPath string
	EntitySelector  int
	Event           model.EventContext
	DryRun          bool   // Render and publish outputs without touching comments.
	HTMLReportPath  string // Optional; empty disables the HTML report.
}

// RunOutcome describes what an invocation produced.
type RunOutcome struct {
	EntityRef string
	Results   *model.ResultSet     // nil when the run returned no results.
	Markdown  string               // Comment body without the slot marker.
	Comment   *model.CommentHandle // nil on dry runs and empty results.
}

// ActionRunner triggers an on-demand run, resolves and renders its results,
// and reconciles the pull request comment for the run's slot.
type ActionRunner struct {
	manifests  driven.ManifestReader
	insights   driven.InsightsClient
	reconciler *CommentReconciler
	publisher  driven.OutputPublisher
	reports    driven.ReportWriter
}

// NewActionRunner creates a new ActionRunner with the required dependencies.
// comments may be nil when every run is a dry run.
func NewActionRunner(
	manifests driven.ManifestReader,
	insights driven.InsightsClient,
	comments driven.CommentStore,
	publisher driven.OutputPublisher,
	reports driven.ReportWriter,
) *ActionRunner {
	var reconciler *CommentReconciler
	if comments != nil {
		reconciler = NewCommentReconciler(comments)
	}
	return &ActionRunner{
		manifests:  manifests,
		insights:   insights,
		reconciler: reconciler,
		publisher:  publisher,
		reports:    reports,
	}
}

// Run executes one invocation. An empty run result is not an error: it is
// logged and Run returns an outcome with nil Results.
func (r *ActionRunner) Run(ctx context.Context, in RunInput) (*RunOutcome, error) {
	entities, err := r.manifests.ReadEntities(ctx, in.CatalogInfoPath)
	if err != nil {
		return nil, err
	}
	if in.EntitySelector < 0 || in.EntitySelector >= len(entities) {
		return nil, fmt.Errorf("%w: selector %d, %s has %d entities", ErrEntitySelector, in.EntitySelector, in.CatalogInfoPath, len(entities))
	}

	outcome := &RunOutcome{EntityRef: entities[in.EntitySelector].Ref()}

	slog.Info("triggering on-demand run",
		"target", in.Target.String(),
		"entity_ref", outcome.EntityRef,
		"branch", in.Event.HeadRef,
	)

	raw, err := r.insights.TriggerOnDemand(ctx, in.Target, driven.OnDemandRequest{
		EntityRef: outcome.EntityRef,
		BranchRef: in.Event.HeadRef,
	})
	if err != nil {
		return nil, err
	}

	rs, err := Resolve(raw)
	if errors.Is(err, ErrEmptyResult) {
		slog.Info("on-demand run returned no results, skipping comment",
			"target", in.Target.String(),
			"entity_ref", outcome.EntityRef,
		)
		return outcome, nil
	}
	if err != nil {
		return nil, err
	}

	outcome.Results = rs
	outcome.Markdown = RenderMarkdown(in.Target, rs)

	slog.Info("on-demand run resolved",
		"target", in.Target.String(),
		"success_count", rs.SuccessCount,
		"total", rs.Total,
	)

	if in.DryRun || r.reconciler == nil {
		slog.Info("dry run, comment not posted", "slot", in.Target.SlotID(), "body", outcome.Markdown)
	} else {
		handle, err := r.reconciler.Upsert(ctx, in.Event, in.Target.SlotID(), outcome.Markdown)
		if err != nil {
			return nil, fmt.Errorf("posting results comment: %w", err)
		}
		outcome.Comment = &handle
	}

	if err := r.publish(in, outcome); err != nil {
		return nil, err
	}

	return outcome, nil
}

// publish reports the outcome to the runner and writes the optional HTML report.
func (r *ActionRunner) publish(in RunInput, outcome *RunOutcome) error {
	if r.publisher != nil {
		outputs := map[string]string{
			"entity-ref":    outcome.EntityRef,
			"passed":        strconv.FormatBool(outcome.Results.Passed()),
			"success-count": strconv.Itoa(outcome.Results.SuccessCount),
			"total":         strconv.Itoa(outcome.Results.Total),
		}
		if outcome.Comment != nil {
			outputs["comment-id"] = strconv.FormatInt(outcome.Comment.ID, 10)
			outputs["comment-url"] = outcome.Comment.URL
		}
		if err := r.publisher.SetOutputs(outputs); err != nil {
			return fmt.Errorf("writing step outputs: %w", err)
		}
		if err := r.publisher.AppendSummary(outcome.Markdown); err != nil {
			return fmt.Errorf("writing step summary: %w", err)
		}
	}

	if in.HTMLReportPath != "" && r.reports != nil {
		if err := r.reports.WriteReport(in.HTMLReportPath, outcome.Markdown); err != nil {
			return fmt.Errorf("writing html report: %w", err)
		}
		slog.Info("html report written", "path", in.HTMLReportPath)
	}

	return nil
}
