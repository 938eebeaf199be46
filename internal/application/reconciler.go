package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
	"github.com/ericfisherdev/techinsights-action/internal/domain/port/driven"
)

// markerPrefix opens the hidden token that binds a comment to its slot.
const markerPrefix = "<!-- techinsights-action:"

// Marker returns the hidden token embedded in every comment owned by slotID.
// It renders as nothing in GitHub-flavored Markdown. A '>' in slotID is
// entity-escaped so the id cannot close the HTML comment early.
func Marker(slotID string) string {
	return markerPrefix + strings.ReplaceAll(slotID, ">", "&gt;") + " -->"
}

// CommentReconciler keeps exactly one comment per slot on a conversation.
// The slot identity lives only in the comment body, so repeated runs with no
// memory of each other converge on the same comment.
//
// Concurrent runs on the same conversation and slot can each create a comment
// before observing the other's. Only the oldest match is maintained afterwards;
// callers that need stronger guarantees must serialize runs themselves.
type CommentReconciler struct {
	store driven.CommentStore
}

// NewCommentReconciler creates a CommentReconciler backed by the given store.
func NewCommentReconciler(store driven.CommentStore) *CommentReconciler {
	return &CommentReconciler{store: store}
}

// Upsert writes content into the slot's comment on the event's conversation,
// updating the oldest comment carrying the slot marker or creating one.
// It returns model.ErrNoConversation before any API call when the event has
// no pull request or issue number; API failures wrap driven.ErrUpstream.
func (r *CommentReconciler) Upsert(ctx context.Context, event model.EventContext, slotID, content string) (model.CommentHandle, error) {
	conv, err := event.Conversation()
	if err != nil {
		return model.CommentHandle{}, err
	}

	marker := Marker(slotID)
	body := content + "\n" + marker

	existing, err := r.findOwned(ctx, conv, marker)
	if err != nil {
		return model.CommentHandle{}, err
	}

	if existing != nil {
		updated, err := r.store.UpdateIssueComment(ctx, conv, existing.ID, body)
		if err != nil {
			return model.CommentHandle{}, fmt.Errorf("%w: %w", driven.ErrUpstream, err)
		}
		slog.Info("comment updated", "conversation", conv.String(), "slot", slotID, "comment_id", existing.ID)
		url := updated.URL
		if url == "" {
			url = existing.URL
		}
		return model.CommentHandle{ID: existing.ID, URL: url}, nil
	}

	created, err := r.store.CreateIssueComment(ctx, conv, body)
	if err != nil {
		return model.CommentHandle{}, fmt.Errorf("%w: %w", driven.ErrUpstream, err)
	}
	slog.Info("comment created", "conversation", conv.String(), "slot", slotID, "comment_id", created.ID)
	return model.CommentHandle{ID: created.ID, URL: created.URL, Created: true}, nil
}

// findOwned pages through the conversation oldest first and returns the first
// comment containing marker, or nil once every page has been scanned.
// Paging stops at the first match, and at any next page that does not advance.
func (r *CommentReconciler) findOwned(ctx context.Context, conv model.Conversation, marker string) (*model.IssueComment, error) {
	page := 1
	for {
		comments, nextPage, err := r.store.ListIssueComments(ctx, conv, page)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", driven.ErrUpstream, err)
		}

		for i := range comments {
			if strings.Contains(comments[i].Body, marker) {
				slog.Debug("found slot comment", "conversation", conv.String(), "page", page, "comment_id", comments[i].ID)
				return &comments[i], nil
			}
		}

		if nextPage <= page {
			return nil, nil
		}
		page = nextPage
	}
}
