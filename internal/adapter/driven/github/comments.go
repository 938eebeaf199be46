package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
	"github.com/ericfisherdev/techinsights-action/internal/domain/port/driven"
)

// commentsPerPage is the largest page size the Issues API accepts.
const commentsPerPage = 100

// Compile-time interface satisfaction check.
var _ driven.CommentStore = (*Client)(nil)

// ListIssueComments returns one page of conversation comments and the number
// of the next page, 0 on the last page. The per-issue endpoint takes no sort
// parameters; it always returns comments in ascending id order, oldest first.
func (c *Client) ListIssueComments(ctx context.Context, conv model.Conversation, page int) ([]model.IssueComment, int, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: commentsPerPage,
		},
	}

	comments, resp, err := c.gh.Issues.ListComments(ctx, conv.Owner, conv.Repo, conv.Number, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing issue comments for %s (page %d): %w", conv, page, err)
	}

	logRateLimit(resp, conv.FullName()+"/issue-comments", page, len(comments))

	out := make([]model.IssueComment, 0, len(comments))
	for _, comment := range comments {
		out = append(out, mapIssueComment(comment))
	}

	return out, resp.NextPage, nil
}

// CreateIssueComment creates a top-level (non-diff) comment on an issue or pull request.
func (c *Client) CreateIssueComment(ctx context.Context, conv model.Conversation, body string) (model.IssueComment, error) {
	comment, resp, err := c.gh.Issues.CreateComment(ctx, conv.Owner, conv.Repo, conv.Number, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return model.IssueComment{}, fmt.Errorf("creating issue comment on %s: %w", conv, err)
	}

	logRateLimit(resp, conv.FullName()+"/issue-comments", 0, 1)

	return mapIssueComment(comment), nil
}

// UpdateIssueComment overwrites the body of an existing issue comment.
func (c *Client) UpdateIssueComment(ctx context.Context, conv model.Conversation, commentID int64, body string) (model.IssueComment, error) {
	comment, resp, err := c.gh.Issues.EditComment(ctx, conv.Owner, conv.Repo, commentID, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return model.IssueComment{}, fmt.Errorf("updating issue comment %d on %s: %w", commentID, conv, err)
	}

	logRateLimit(resp, conv.FullName()+"/issue-comments", 0, 1)

	return mapIssueComment(comment), nil
}

// mapIssueComment converts a go-github IssueComment to a domain model IssueComment.
func mapIssueComment(c *gh.IssueComment) model.IssueComment {
	return model.IssueComment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		URL:       c.GetHTMLURL(),
		CreatedAt: c.GetCreatedAt().Time,
		UpdatedAt: c.GetUpdatedAt().Time,
	}
}
