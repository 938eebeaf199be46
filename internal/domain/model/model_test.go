package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRef(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   string
	}{
		{
			name:   "default namespace",
			entity: Entity{Kind: "Component", Metadata: EntityMetadata{Name: "payments"}},
			want:   "component:default/payments",
		},
		{
			name:   "explicit namespace lowercased",
			entity: Entity{Kind: "API", Metadata: EntityMetadata{Name: "billing-api", Namespace: "Finance"}},
			want:   "api:finance/billing-api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entity.Ref())
		})
	}
}

func TestEventContextConversation(t *testing.T) {
	t.Run("pull request number wins", func(t *testing.T) {
		conv, err := EventContext{Owner: "acme", Repo: "svc", PullRequestNumber: 7, IssueNumber: 9}.Conversation()
		require.NoError(t, err)
		assert.Equal(t, Conversation{Owner: "acme", Repo: "svc", Number: 7}, conv)
		assert.Equal(t, "acme/svc#7", conv.String())
	})

	t.Run("falls back to issue number", func(t *testing.T) {
		conv, err := EventContext{Owner: "acme", Repo: "svc", IssueNumber: 9}.Conversation()
		require.NoError(t, err)
		assert.Equal(t, 9, conv.Number)
	})

	t.Run("neither number", func(t *testing.T) {
		_, err := EventContext{Owner: "acme", Repo: "svc"}.Conversation()
		assert.ErrorIs(t, err, ErrNoConversation)
	})
}

func TestRunTargetSlotID(t *testing.T) {
	check := RunTarget{Mode: RunModeCheck, ID: "abc"}
	scorecard := RunTarget{Mode: RunModeScorecard, ID: "abc"}

	assert.Equal(t, "check-abc", check.SlotID())
	assert.Equal(t, "scorecard-abc", scorecard.SlotID())
	assert.NotEqual(t, check.SlotID(), scorecard.SlotID())
}

func TestResultSetPassed(t *testing.T) {
	assert.False(t, (&ResultSet{}).Passed())
	assert.False(t, (&ResultSet{SuccessCount: 2, Total: 3}).Passed())
	assert.True(t, (&ResultSet{SuccessCount: 3, Total: 3}).Passed())
}
