package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainPost "github.com/postpilothq/postpilot/domains/post"
	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
	"github.com/postpilothq/postpilot/pilot/repository"
	pkgError "github.com/postpilothq/postpilot/pkg/error"
)

func TestPostNowAppendsPostedPost(t *testing.T) {
	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	service := NewPostService(posts, notifier, nil)

	created, err := service.PostNow(context.Background(), domainPost.CreatePostRequest{Content: "Shipping it."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != pilotDomain.PostStatusPosted {
		t.Fatalf("expected status posted, got %s", created.Status)
	}
	if created.LikeCount != 0 || created.RepostCount != 0 {
		t.Fatal("new posts must start with zero engagement")
	}

	list, _ := posts.List(context.Background())
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected the post at the head of the feed, got %+v", list)
	}
	notes := notifier.List(context.Background())
	if len(notes) != 1 || notes[0].Kind != pilotDomain.NotificationSuccess {
		t.Fatalf("expected one success notification, got %+v", notes)
	}
}

func TestPostNowRejectsOverlongContent(t *testing.T) {
	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	service := NewPostService(posts, notifier, nil)

	_, err := service.PostNow(context.Background(), domainPost.CreatePostRequest{
		Content: strings.Repeat("a", pilotDomain.MaxPostLength+1),
	})
	if err == nil {
		t.Fatal("expected validation error for overlong content")
	}
	if list, _ := posts.List(context.Background()); len(list) != 0 {
		t.Fatal("rejected post must not reach the feed")
	}
}

func TestScheduleStoresFutureTimeInUTC(t *testing.T) {
	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	service := NewPostService(posts, notifier, nil)

	at := time.Now().Add(2 * time.Hour)
	created, err := service.Schedule(context.Background(), domainPost.SchedulePostRequest{
		Content:     "Later today.",
		ScheduledAt: at,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != pilotDomain.PostStatusScheduled {
		t.Fatalf("expected status scheduled, got %s", created.Status)
	}
	if created.ScheduledAt == nil || created.ScheduledAt.Location() != time.UTC {
		t.Fatalf("scheduled time must be stored in UTC, got %v", created.ScheduledAt)
	}
}

func TestScheduleRejectsPastTime(t *testing.T) {
	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	service := NewPostService(posts, notifier, nil)

	_, err := service.Schedule(context.Background(), domainPost.SchedulePostRequest{
		Content:     "Too late.",
		ScheduledAt: time.Now().Add(-time.Minute),
	})
	if err == nil {
		t.Fatal("expected validation error for past schedule time")
	}
}

func TestGetUnknownPostReturnsNotFound(t *testing.T) {
	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	service := NewPostService(posts, notifier, nil)

	_, err := service.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected not found error")
	}
	var generic pkgError.GenericError
	if !errors.As(err, &generic) || generic.StatusCode() != 404 {
		t.Fatalf("expected a 404 error, got %v", err)
	}
}

func TestDeleteUnknownPostIsNoOp(t *testing.T) {
	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	service := NewPostService(posts, notifier, nil)

	if err := service.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("deleting an unknown post must be a no-op, got: %v", err)
	}
}
