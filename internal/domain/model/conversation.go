package model

import (
	"errors"
	"fmt"
)

// ErrNoConversation is returned when the invocation context carries neither a
// pull request nor an issue number.
var ErrNoConversation = errors.New("no pull request or issue number in event context")

// Conversation identifies an issue or pull request thread.
type Conversation struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns the "owner/repo" form of the conversation's repository.
func (c Conversation) FullName() string {
	return c.Owner + "/" + c.Repo
}

// String implements fmt.Stringer.
func (c Conversation) String() string {
	return fmt.Sprintf("%s/%s#%d", c.Owner, c.Repo, c.Number)
}

// EventContext is the pull request and repository information of the running
// workflow. It is built once at process start from the event payload.
type EventContext struct {
	Owner             string
	Repo              string
	PullRequestNumber int    // 0 when the event is not a pull request.
	IssueNumber       int    // 0 when the event is not an issue.
	HeadRef           string // Source branch of the pull request, empty otherwise.
}

// Conversation resolves the thread to comment on. The pull request number
// wins over the issue number.
func (e EventContext) Conversation() (Conversation, error) {
	number := e.PullRequestNumber
	if number <= 0 {
		number = e.IssueNumber
	}
	if number <= 0 {
		return Conversation{}, ErrNoConversation
	}
	return Conversation{Owner: e.Owner, Repo: e.Repo, Number: number}, nil
}
