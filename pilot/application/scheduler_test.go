package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/postpilothq/postpilot/pilot/domain"
	"github.com/postpilothq/postpilot/pilot/repository"
)

func scheduledPost(content string, at time.Time) domain.Post {
	return domain.Post{
		ID:          uuid.NewString(),
		Content:     content,
		Status:      domain.PostStatusScheduled,
		ScheduledAt: &at,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPublishScheduler_ExecDuePublishesMatured(t *testing.T) {
	ctx := context.Background()
	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	s := NewPublishScheduler(posts, notifier, nil)

	due := scheduledPost("due post #now", time.Now().UTC().Add(-time.Minute))
	if err := posts.Add(ctx, due); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	next := s.ExecDue(ctx)
	if !next.IsZero() {
		t.Fatalf("expected zero next time, got %v", next)
	}

	got, err := posts.Get(ctx, due.ID)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Status != domain.PostStatusPosted {
		t.Fatalf("expected status posted, got %s", got.Status)
	}
	if len(notifier.List(ctx)) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.List(ctx)))
	}
}

func TestPublishScheduler_ExecDueLeavesFutureAlone(t *testing.T) {
	ctx := context.Background()
	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	s := NewPublishScheduler(posts, notifier, nil)

	at := time.Now().UTC().Add(time.Hour)
	future := scheduledPost("future post #later", at)
	if err := posts.Add(ctx, future); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	next := s.ExecDue(ctx)
	if !next.Equal(at) {
		t.Fatalf("expected next %v, got %v", at, next)
	}

	got, _ := posts.Get(ctx, future.ID)
	if got.Status != domain.PostStatusScheduled {
		t.Fatalf("future post must remain scheduled, got %s", got.Status)
	}
}

func TestPublishScheduler_WakeNeverBlocks(t *testing.T) {
	s := NewPublishScheduler(repository.NewMemoryPostRepository(), repository.NewMemoryNotificationStore(), nil)
	s.Wake()
	s.Wake()
	s.Wake()
}

func TestPublishScheduler_LoopPublishesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	posts := repository.NewMemoryPostRepository()
	notifier := repository.NewMemoryNotificationStore()
	s := NewPublishScheduler(posts, notifier, nil)
	s.StartLoop(ctx)

	due := scheduledPost("loop post #go", time.Now().UTC().Add(10*time.Millisecond))
	if err := posts.Add(ctx, due); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	s.Wake()

	deadline := time.After(2 * time.Second)
	for {
		got, err := posts.Get(ctx, due.ID)
		if err == nil && got.Status == domain.PostStatusPosted {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("scheduled post was not published within deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
