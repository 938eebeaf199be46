// Package config loads the action's inputs from the GitHub Actions environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

// ErrConfig marks missing, malformed or conflicting inputs. It is reported
// before any network call is attempted.
var ErrConfig = errors.New("invalid configuration")

// Config holds the action configuration. Inputs come from INPUT_* variables
// set by the Actions runner; the rest is the runner's own environment.
type Config struct {
	CheckID             string `env:"INPUT_CHECK_ID"`
	ScorecardID         string `env:"INPUT_SCORECARD_ID"`
	CatalogInfoPath     string `env:"INPUT_CATALOG_INFO_PATH,default=./catalog-info.yaml"`
	APIToken            string `env:"INPUT_API_TOKEN"`
	APIURL              string `env:"INPUT_API_URL,default=https://api.roadie.so/api/tech-insights/v1"`
	RepoToken           string `env:"INPUT_REPO_TOKEN"`
	EntitySelectorInput string `env:"INPUT_ENTITY_SELECTOR"`
	HTMLReportPath      string `env:"INPUT_HTML_REPORT_PATH"`
	LogLevel            string `env:"INPUT_LOG_LEVEL,default=info"`
	DryRun              bool   `env:"INPUT_DRY_RUN,default=false"`

	GitHubToken     string `env:"GITHUB_TOKEN"`
	Repository      string `env:"GITHUB_REPOSITORY"`
	EventPath       string `env:"GITHUB_EVENT_PATH"`
	GitHubAPIURL    string `env:"GITHUB_API_URL,default=https://api.github.com"`
	OutputPath      string `env:"GITHUB_OUTPUT"`
	StepSummaryPath string `env:"GITHUB_STEP_SUMMARY"`

	// EntitySelector is the parsed EntitySelectorInput.
	EntitySelector int
}

// Load reads configuration from the process environment and returns a validated Config.
// Required: exactly one of INPUT_CHECK-ID / INPUT_SCORECARD-ID, INPUT_API-TOKEN,
// and INPUT_REPO-TOKEN or GITHUB_TOKEN unless running dry.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith is Load with a custom lookuper, used for flag overrides and tests.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: &inputLookuper{next: l},
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg.CheckID = strings.TrimSpace(cfg.CheckID)
	cfg.ScorecardID = strings.TrimSpace(cfg.ScorecardID)
	if cfg.RepoToken == "" {
		cfg.RepoToken = cfg.GitHubToken
	}
	cfg.EntitySelector = ParseEntitySelector(cfg.EntitySelectorInput)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the inputs that must hold before any network call.
func (c *Config) Validate() error {
	if c.CheckID == "" && c.ScorecardID == "" {
		return fmt.Errorf("%w: no 'check-id' or 'scorecard-id' configured", ErrConfig)
	}
	if c.CheckID != "" && c.ScorecardID != "" {
		return fmt.Errorf("%w: only one of 'check-id' or 'scorecard-id' can be input", ErrConfig)
	}
	if c.APIToken == "" {
		return fmt.Errorf("%w: no api-token input value found", ErrConfig)
	}
	if !c.DryRun && c.RepoToken == "" {
		return fmt.Errorf("%w: no repo-token input or GITHUB_TOKEN found", ErrConfig)
	}
	return nil
}

// Target returns the check or scorecard the run is for.
func (c *Config) Target() model.RunTarget {
	if c.ScorecardID != "" {
		return model.RunTarget{Mode: model.RunModeScorecard, ID: c.ScorecardID}
	}
	return model.RunTarget{Mode: model.RunModeCheck, ID: c.CheckID}
}

// ParseEntitySelector parses the entity index input from its leading base-10
// digits, so "2abc" selects 2. Input without leading digits selects the first
// entity.
func ParseEntitySelector(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// inputLookuper resolves INPUT_* keys in the form the Actions runner exports
// them, with the input name's hyphens kept (INPUT_CHECK-ID), and treats empty
// values as unset so defaults apply to inputs the workflow left blank.
type inputLookuper struct {
	next envconfig.Lookuper
}

func (l *inputLookuper) Lookup(key string) (string, bool) {
	if v, ok := l.next.Lookup(key); ok && v != "" {
		return v, true
	}
	if name, ok := strings.CutPrefix(key, "INPUT_"); ok {
		if v, ok := l.next.Lookup("INPUT_" + strings.ReplaceAll(name, "_", "-")); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
