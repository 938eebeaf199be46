package model

import "time"

// IssueComment represents a conversation-level comment (from the GitHub Issues
// API, which also serves pull request conversations).
type IssueComment struct {
	ID        int64
	Author    string
	Body      string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentHandle identifies the comment written by an upsert.
type CommentHandle struct {
	ID      int64
	URL     string
	Created bool // False when an existing comment was updated in place.
}
