// Package techinsights implements the InsightsClient port against the Roadie
// Tech Insights REST API.
package techinsights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/oauth2"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
	"github.com/ericfisherdev/techinsights-action/internal/domain/port/driven"
)

// DefaultAPIURL is the production Tech Insights endpoint.
const DefaultAPIURL = "https://api.roadie.so/api/tech-insights/v1"

// actionType asks the API to evaluate synchronously instead of on its own schedule.
const actionType = "run-on-demand"

// maxErrorBody bounds how much of a failed response is quoted in errors.
const maxErrorBody = 512

// Compile-time interface satisfaction check.
var _ driven.InsightsClient = (*Client)(nil)

// Client implements the driven.InsightsClient port.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client that authenticates every request with the given
// API token as an OAuth2 bearer token. An empty baseURL selects DefaultAPIURL.
func NewClient(ctx context.Context, token, baseURL string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return NewClientWithHTTPClient(oauth2.NewClient(ctx, src), baseURL)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// actionRequest is the JSON body of an on-demand run.
type actionRequest struct {
	Type    string        `json:"type"`
	Payload actionPayload `json:"payload"`
}

type actionPayload struct {
	EntityRef string `json:"entityRef"`
	BranchRef string `json:"branchRef,omitempty"`
}

// TriggerOnDemand posts an on-demand run for target and decodes the result.
// Transport failures and non-2xx responses wrap driven.ErrUpstream.
func (c *Client) TriggerOnDemand(ctx context.Context, target model.RunTarget, req driven.OnDemandRequest) (model.RunResult, error) {
	endpoint, err := c.actionURL(target)
	if err != nil {
		return nil, err
	}

	bodyBytes, err := json.Marshal(actionRequest{
		Type: actionType,
		Payload: actionPayload{
			EntityRef: req.EntityRef,
			BranchRef: req.BranchRef,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling on-demand request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating on-demand request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: on-demand run for %s: %w", driven.ErrUpstream, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading on-demand response for %s: %w", driven.ErrUpstream, target, err)
	}

	slog.Debug("tech insights api call",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(raw),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: on-demand run for %s: HTTP %d: %s", driven.ErrUpstream, target, resp.StatusCode, truncate(raw, maxErrorBody))
	}

	result, err := decodeRunResult(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding on-demand response for %s: %w", driven.ErrUpstream, target, err)
	}
	return result, nil
}

// actionURL returns the action endpoint of a check or scorecard.
func (c *Client) actionURL(target model.RunTarget) (string, error) {
	var collection string
	switch target.Mode {
	case model.RunModeCheck:
		collection = "checks"
	case model.RunModeScorecard:
		collection = "scorecards"
	default:
		return "", fmt.Errorf("unknown run mode %q", target.Mode)
	}
	if target.ID == "" {
		return "", fmt.Errorf("empty %s id", target.Mode)
	}
	return fmt.Sprintf("%s/%s/%s/action", c.baseURL, collection, url.PathEscape(target.ID)), nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
