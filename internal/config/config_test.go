package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

// load runs LoadWith against a fixed environment, isolated from the host.
func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadWith(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Success(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"INPUT_SCORECARD-ID":      "sc-1",
		"INPUT_CATALOG-INFO-PATH": "services/catalog-info.yaml",
		"INPUT_API-TOKEN":         "roadie-token",
		"INPUT_REPO-TOKEN":        "ghs_repo",
		"INPUT_ENTITY-SELECTOR":   "2",
		"INPUT_HTML-REPORT-PATH":  "report.html",
		"GITHUB_REPOSITORY":       "acme/payments",
		"GITHUB_EVENT_PATH":       "/github/workflow/event.json",
		"GITHUB_OUTPUT":           "/github/file_commands/output",
		"GITHUB_STEP_SUMMARY":     "/github/file_commands/summary",
	})

	require.NoError(t, err)
	assert.Equal(t, "sc-1", cfg.ScorecardID)
	assert.Equal(t, "services/catalog-info.yaml", cfg.CatalogInfoPath)
	assert.Equal(t, "roadie-token", cfg.APIToken)
	assert.Equal(t, "ghs_repo", cfg.RepoToken)
	assert.Equal(t, 2, cfg.EntitySelector)
	assert.Equal(t, "report.html", cfg.HTMLReportPath)
	assert.Equal(t, "acme/payments", cfg.Repository)
	assert.Equal(t, "/github/workflow/event.json", cfg.EventPath)
	assert.Equal(t, "/github/file_commands/output", cfg.OutputPath)
	assert.Equal(t, "/github/file_commands/summary", cfg.StepSummaryPath)
	assert.Equal(t, model.RunTarget{Mode: model.RunModeScorecard, ID: "sc-1"}, cfg.Target())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"INPUT_CHECK_ID":          "readme",
		"INPUT_API_TOKEN":         "roadie-token",
		"INPUT_CATALOG-INFO-PATH": "",
		"GITHUB_TOKEN":            "ghs_default",
	})

	require.NoError(t, err)
	assert.Equal(t, "./catalog-info.yaml", cfg.CatalogInfoPath)
	assert.Equal(t, "https://api.roadie.so/api/tech-insights/v1", cfg.APIURL)
	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "ghs_default", cfg.RepoToken, "falls back to GITHUB_TOKEN")
	assert.Equal(t, 0, cfg.EntitySelector)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, model.RunTarget{Mode: model.RunModeCheck, ID: "readme"}, cfg.Target())
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{
			name: "neither id",
			env:  map[string]string{"INPUT_API-TOKEN": "t", "GITHUB_TOKEN": "g"},
			msg:  "no 'check-id' or 'scorecard-id' configured",
		},
		{
			name: "both ids",
			env:  map[string]string{"INPUT_CHECK-ID": "c", "INPUT_SCORECARD-ID": "s", "INPUT_API-TOKEN": "t", "GITHUB_TOKEN": "g"},
			msg:  "only one of 'check-id' or 'scorecard-id'",
		},
		{
			name: "blank id counts as unset",
			env:  map[string]string{"INPUT_CHECK-ID": "  ", "INPUT_API-TOKEN": "t", "GITHUB_TOKEN": "g"},
			msg:  "no 'check-id' or 'scorecard-id' configured",
		},
		{
			name: "missing api token",
			env:  map[string]string{"INPUT_CHECK-ID": "c", "GITHUB_TOKEN": "g"},
			msg:  "no api-token input value found",
		},
		{
			name: "missing repo token",
			env:  map[string]string{"INPUT_CHECK-ID": "c", "INPUT_API-TOKEN": "t"},
			msg:  "no repo-token input or GITHUB_TOKEN found",
		},
		{
			name: "malformed dry-run",
			env:  map[string]string{"INPUT_CHECK-ID": "c", "INPUT_API-TOKEN": "t", "INPUT_DRY-RUN": "sometimes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(t, tt.env)

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, ErrConfig)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoad_DryRunWithoutRepoToken(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"INPUT_CHECK-ID":  "c",
		"INPUT_API-TOKEN": "t",
		"INPUT_DRY-RUN":   "true",
	})

	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
}

func TestLoad_OverridesTakePrecedence(t *testing.T) {
	overrides := envconfig.MapLookuper(map[string]string{"INPUT_LOG_LEVEL": "debug"})
	env := envconfig.MapLookuper(map[string]string{
		"INPUT_CHECK-ID":  "c",
		"INPUT_API-TOKEN": "t",
		"INPUT_LOG-LEVEL": "warn",
		"GITHUB_TOKEN":    "g",
	})

	cfg, err := LoadWith(context.Background(), envconfig.MultiLookuper(overrides, env))

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseEntitySelector(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "", want: 0},
		{raw: "1", want: 1},
		{raw: " 3 ", want: 3},
		{raw: "abc", want: 0},
		{raw: "1.5", want: 1},
		{raw: "2abc", want: 2},
		{raw: "-1", want: -1},
		{raw: "+", want: 0},
		{raw: "99999999999999999999", want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseEntitySelector(tt.raw), "input %q", tt.raw)
	}
}
