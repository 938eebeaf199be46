package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/techinsights-action/internal/adapter/driven/actions"
	"github.com/ericfisherdev/techinsights-action/internal/adapter/driven/catalog"
	githubadapter "github.com/ericfisherdev/techinsights-action/internal/adapter/driven/github"
	"github.com/ericfisherdev/techinsights-action/internal/adapter/driven/report"
	"github.com/ericfisherdev/techinsights-action/internal/adapter/driven/techinsights"
	"github.com/ericfisherdev/techinsights-action/internal/application"
	"github.com/ericfisherdev/techinsights-action/internal/config"
	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
	"github.com/ericfisherdev/techinsights-action/internal/domain/port/driven"
	"github.com/ericfisherdev/techinsights-action/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("fatal error", "error", err, "kind", errorKind(err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "techinsights-action",
		Short:         "Run a Tech Insights check or scorecard on demand and report it on the pull request",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flagOverrides(cmd))
		},
	}

	cmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error); overrides INPUT_LOG-LEVEL")
	cmd.Flags().Bool("dry-run", false, "Render results without posting the comment; overrides INPUT_DRY-RUN")

	return cmd
}

// flagOverrides maps explicitly set flags onto the input variables they replace.
func flagOverrides(cmd *cobra.Command) map[string]string {
	overrides := make(map[string]string)
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		overrides["INPUT_LOG_LEVEL"] = f.Value.String()
	}
	if f := cmd.Flags().Lookup("dry-run"); f != nil && f.Changed {
		overrides["INPUT_DRY_RUN"] = f.Value.String()
	}
	return overrides
}

func run(ctx context.Context, overrides map[string]string) error {
	// 1. Load configuration (fail before any network call on bad inputs).
	cfg, err := config.LoadWith(ctx, envconfig.MultiLookuper(
		envconfig.MapLookuper(overrides),
		envconfig.OsLookuper(),
	))
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfig, err)
	}
	slog.SetDefault(logging.NewLogger(os.Stderr, level))

	target := cfg.Target()
	slog.Info("config loaded",
		"target", target.String(),
		"catalog_info_path", cfg.CatalogInfoPath,
		"entity_selector", cfg.EntitySelector,
		"api_url", cfg.APIURL,
		"dry_run", cfg.DryRun,
	)

	// 2. Locate the pull request from the workflow event.
	event, err := githubadapter.LoadEventContext(cfg.EventPath, cfg.Repository)
	if err != nil {
		if !cfg.DryRun {
			return err
		}
		slog.Warn("event context unavailable, continuing dry run", "error", err)
	}
	if conv, convErr := event.Conversation(); convErr == nil {
		slog.Info("event loaded", "conversation", conv.String(), "head_ref", event.HeadRef)
	} else {
		slog.Warn("event has no pull request or issue", "event_path", cfg.EventPath)
	}

	// 3. Wire adapters. Dry runs never touch comments, so no GitHub client.
	var comments driven.CommentStore
	if !cfg.DryRun {
		ghClient, err := githubadapter.NewClient(cfg.RepoToken, cfg.GitHubAPIURL)
		if err != nil {
			return fmt.Errorf("%w: github api url: %w", config.ErrConfig, err)
		}
		comments = ghClient
	}

	runner := application.NewActionRunner(
		catalog.NewReader(),
		techinsights.NewClient(ctx, cfg.APIToken, cfg.APIURL),
		comments,
		actions.NewPublisher(cfg.OutputPath, cfg.StepSummaryPath),
		report.NewWriter("Tech Insights "+target.String()),
	)

	// 4. Run once.
	outcome, err := runner.Run(ctx, application.RunInput{
		Target:          target,
		CatalogInfoPath: cfg.CatalogInfoPath,
		EntitySelector:  cfg.EntitySelector,
		Event:           event,
		DryRun:          cfg.DryRun,
		HTMLReportPath:  cfg.HTMLReportPath,
	})
	if err != nil {
		return err
	}

	if outcome.Results == nil {
		return nil
	}
	attrs := []any{
		"entity_ref", outcome.EntityRef,
		"passed", outcome.Results.Passed(),
		"score", strconv.Itoa(outcome.Results.SuccessCount) + "/" + strconv.Itoa(outcome.Results.Total),
	}
	if outcome.Comment != nil {
		attrs = append(attrs, "comment_url", outcome.Comment.URL)
	}
	slog.Info("run complete", attrs...)

	return nil
}

// errorKind names the failure class for the fatal log line.
func errorKind(err error) string {
	switch {
	case errors.Is(err, config.ErrConfig), errors.Is(err, application.ErrEntitySelector):
		return "config"
	case errors.Is(err, driven.ErrManifestEmpty):
		return "manifest"
	case errors.Is(err, model.ErrNoConversation):
		return "no_conversation"
	case errors.Is(err, driven.ErrUpstream):
		return "upstream"
	default:
		return "internal"
	}
}
