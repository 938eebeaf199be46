package github

import (
	"encoding/json"
	"fmt"
	"os"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

// eventPayload is the subset of a workflow event payload used to locate the
// conversation. Pull request events carry pull_request, issue and
// issue_comment events carry issue.
type eventPayload struct {
	Number      int             `json:"number"`
	PullRequest *gh.PullRequest `json:"pull_request"`
	Issue       *gh.Issue       `json:"issue"`
	Repository  *gh.Repository  `json:"repository"`
}

// LoadEventContext builds the event context from the workflow event payload
// at eventPath (GITHUB_EVENT_PATH). repoFullName (GITHUB_REPOSITORY) takes
// precedence over the payload's repository. An empty eventPath yields a
// context without a conversation.
func LoadEventContext(eventPath, repoFullName string) (model.EventContext, error) {
	var payload eventPayload
	if eventPath != "" {
		data, err := os.ReadFile(eventPath)
		if err != nil {
			return model.EventContext{}, fmt.Errorf("reading event payload: %w", err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return model.EventContext{}, fmt.Errorf("decoding event payload %s: %w", eventPath, err)
		}
	}

	if repoFullName == "" {
		repoFullName = payload.Repository.GetFullName()
	}
	owner, repo, err := SplitRepo(repoFullName)
	if err != nil {
		return model.EventContext{}, err
	}

	event := model.EventContext{Owner: owner, Repo: repo}

	switch {
	case payload.PullRequest != nil:
		event.PullRequestNumber = payload.PullRequest.GetNumber()
		event.HeadRef = payload.PullRequest.GetHead().GetRef()
	case payload.Issue != nil:
		event.IssueNumber = payload.Issue.GetNumber()
	}

	if event.PullRequestNumber == 0 && event.IssueNumber == 0 {
		event.IssueNumber = payload.Number
	}

	return event, nil
}
