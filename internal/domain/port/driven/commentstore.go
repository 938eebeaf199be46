package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

// ErrUpstream marks failures of a remote API call (GitHub or Tech Insights).
// Adapters and services join it with the underlying cause.
var ErrUpstream = errors.New("upstream request failed")

// CommentStore defines the driven port for reading and writing conversation
// comments. It mirrors the primitives the GitHub Issues API offers: there is
// no find-or-update, only list, create and update.
type CommentStore interface {
	// ListIssueComments returns one page of comments, oldest first. page 0 and 1
	// both address the first page. nextPage is 0 when no further page exists.
	ListIssueComments(ctx context.Context, conv model.Conversation, page int) (comments []model.IssueComment, nextPage int, err error)

	// CreateIssueComment adds a comment to the conversation.
	CreateIssueComment(ctx context.Context, conv model.Conversation, body string) (model.IssueComment, error)

	// UpdateIssueComment replaces the body of an existing comment.
	UpdateIssueComment(ctx context.Context, conv model.Conversation, commentID int64, body string) (model.IssueComment, error)
}
