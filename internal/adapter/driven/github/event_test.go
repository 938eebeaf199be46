package github_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/ericfisherdev/techinsights-action/internal/adapter/driven/github"
	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

func writeEvent(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	return path
}

func TestLoadEventContext(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		repo    string
		want    model.EventContext
	}{
		{
			name: "pull request event",
			payload: `{
				"action": "synchronize",
				"number": 42,
				"pull_request": {"number": 42, "head": {"ref": "feature/readme"}},
				"repository": {"full_name": "acme/payments"}
			}`,
			repo: "acme/payments",
			want: model.EventContext{Owner: "acme", Repo: "payments", PullRequestNumber: 42, HeadRef: "feature/readme"},
		},
		{
			name: "issue comment event",
			payload: `{
				"action": "created",
				"issue": {"number": 9},
				"comment": {"id": 1, "body": "rerun"}
			}`,
			repo: "acme/payments",
			want: model.EventContext{Owner: "acme", Repo: "payments", IssueNumber: 9},
		},
		{
			name:    "repository from payload",
			payload: `{"pull_request": {"number": 3, "head": {"ref": "x"}}, "repository": {"full_name": "octo/cat"}}`,
			want:    model.EventContext{Owner: "octo", Repo: "cat", PullRequestNumber: 3, HeadRef: "x"},
		},
		{
			name:    "push event has no conversation",
			payload: `{"ref": "refs/heads/main", "repository": {"full_name": "acme/payments"}}`,
			repo:    "acme/payments",
			want:    model.EventContext{Owner: "acme", Repo: "payments"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ghAdapter.LoadEventContext(writeEvent(t, tt.payload), tt.repo)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEventContext_NoEventPath(t *testing.T) {
	got, err := ghAdapter.LoadEventContext("", "acme/payments")

	require.NoError(t, err)
	_, convErr := got.Conversation()
	assert.ErrorIs(t, convErr, model.ErrNoConversation)
}

func TestLoadEventContext_Errors(t *testing.T) {
	_, err := ghAdapter.LoadEventContext(filepath.Join(t.TempDir(), "missing.json"), "acme/payments")
	assert.Error(t, err)

	_, err = ghAdapter.LoadEventContext(writeEvent(t, `{not json`), "acme/payments")
	assert.Error(t, err)

	_, err = ghAdapter.LoadEventContext(writeEvent(t, `{}`), "")
	assert.Error(t, err)
}
