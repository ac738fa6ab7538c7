package domain

import (
	"context"
	"time"
)

type PostStatus string

const (
	PostStatusGenerated PostStatus = "generated"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPosted    PostStatus = "posted"
	PostStatusFailed    PostStatus = "failed"
)

// Post is a single entry in the publishing queue. Once created it is only
// touched again by the publish scheduler (scheduled -> posted) or by
// explicit deletion.
type Post struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Status      PostStatus `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LikeCount   int        `json:"like_count"`
	RepostCount int        `json:"repost_count"`
}

// MaxPostLength is the hard cap on post content, matching the downstream
// network's limit.
const MaxPostLength = 280

// IPostRepository is the post queue. List returns most-recent-first; Add
// prepends. Remove is a no-op for unknown IDs.
type IPostRepository interface {
	Add(ctx context.Context, post Post) error
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id string) (Post, error)
	Update(ctx context.Context, post Post) error
	Remove(ctx context.Context, id string) error

	// ListDueScheduled returns scheduled posts whose ScheduledAt is at or
	// before the given instant.
	ListDueScheduled(ctx context.Context, before time.Time) ([]Post, error)
	// NextScheduledAt returns the earliest pending ScheduledAt, or the zero
	// time when nothing is scheduled.
	NextScheduledAt(ctx context.Context) (time.Time, error)
}
