package post

import (
	"context"
	"time"

	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
)

type IPostUsecase interface {
	List(ctx context.Context) ([]pilotDomain.Post, error)
	Get(ctx context.Context, id string) (pilotDomain.Post, error)
	// PostNow publishes immediately (status posted).
	PostNow(ctx context.Context, request CreatePostRequest) (pilotDomain.Post, error)
	// Schedule queues a post for the publish scheduler.
	Schedule(ctx context.Context, request SchedulePostRequest) (pilotDomain.Post, error)
	// Delete removes a post; deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

type CreatePostRequest struct {
	Content string `json:"content" form:"content"`
}

type SchedulePostRequest struct {
	Content     string    `json:"content" form:"content"`
	ScheduledAt time.Time `json:"scheduled_at" form:"scheduled_at"`
}
