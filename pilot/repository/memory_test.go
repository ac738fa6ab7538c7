package repository

import (
	"context"
	"testing"
	"time"

	"github.com/postpilothq/postpilot/pilot/domain"
)

func TestPostRepositoryKeepsNewestFirst(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	_ = repo.Add(ctx, domain.Post{ID: "a", Content: "first", Status: domain.PostStatusPosted})
	_ = repo.Add(ctx, domain.Post{ID: "b", Content: "second", Status: domain.PostStatusPosted})

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
		t.Fatalf("expected newest-first ordering, got %+v", list)
	}
}

func TestPostRepositoryListDueScheduled(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(time.Hour)
	_ = repo.Add(ctx, domain.Post{ID: "due", Status: domain.PostStatusScheduled, ScheduledAt: &past})
	_ = repo.Add(ctx, domain.Post{ID: "later", Status: domain.PostStatusScheduled, ScheduledAt: &future})
	_ = repo.Add(ctx, domain.Post{ID: "published", Status: domain.PostStatusPosted})

	due, err := repo.ListDueScheduled(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 1 || due[0].ID != "due" {
		t.Fatalf("expected only the matured post, got %+v", due)
	}

	next, err := repo.NextScheduledAt(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(past) {
		t.Fatalf("expected next scheduled time %v, got %v", past, next)
	}
}

func TestProfileRepositoryDefaults(t *testing.T) {
	repo := NewMemoryProfileRepository()

	prof, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prof.Language != domain.DefaultLanguage {
		t.Fatalf("expected default language, got %q", prof.Language)
	}
	if prof.Tone != domain.ToneProfessional {
		t.Fatalf("expected professional tone, got %q", prof.Tone)
	}
	if prof.AutoPilotEnabled {
		t.Fatal("auto-pilot must start disabled")
	}
}

func TestProfileRepositoryTopicRules(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	if err := repo.AddTopic(ctx, "  "); err != domain.ErrEmptyTopic {
		t.Fatalf("expected ErrEmptyTopic, got %v", err)
	}
	if err := repo.AddTopic(ctx, "Go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.AddTopic(ctx, "go"); err != domain.ErrDuplicateTopic {
		t.Fatalf("expected ErrDuplicateTopic, got %v", err)
	}
	if err := repo.RemoveTopic(ctx, "unknown"); err != nil {
		t.Fatalf("removing an unknown topic must be a no-op, got %v", err)
	}
}

func TestNotificationStoreInvokesHook(t *testing.T) {
	store := NewMemoryNotificationStore()
	var got domain.Notification
	store.OnPush = func(n domain.Notification) { got = n }

	pushed := store.Push(context.Background(), domain.NotificationInfo, "hello")
	if got.ID != pushed.ID {
		t.Fatalf("hook should receive the pushed notification, got %+v", got)
	}

	store.Remove(context.Background(), pushed.ID)
	if len(store.List(context.Background())) != 0 {
		t.Fatal("expected empty store after removal")
	}
}
