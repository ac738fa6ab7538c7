package repository

import (
	"context"
	"sync"
	"time"

	"github.com/postpilothq/postpilot/pilot/domain"
)

// MemoryPostRepository keeps the queue in process memory, newest first.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts []domain.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{}
}

func (r *MemoryPostRepository) Add(ctx context.Context, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append([]domain.Post{post}, r.posts...)
	return nil
}

func (r *MemoryPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Post, len(r.posts))
	copy(out, r.posts)
	return out, nil
}

func (r *MemoryPostRepository) Get(ctx context.Context, id string) (domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Post{}, domain.ErrPostNotFound
}

func (r *MemoryPostRepository) Update(ctx context.Context, post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == post.ID {
			r.posts[i] = post
			return nil
		}
	}
	return domain.ErrPostNotFound
}

// Remove deletes by ID. Removing an absent post is not an error.
func (r *MemoryPostRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryPostRepository) ListDueScheduled(ctx context.Context, before time.Time) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []domain.Post
	for _, p := range r.posts {
		if p.Status == domain.PostStatusScheduled && p.ScheduledAt != nil && !p.ScheduledAt.After(before) {
			due = append(due, p)
		}
	}
	return due, nil
}

func (r *MemoryPostRepository) NextScheduledAt(ctx context.Context) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var next time.Time
	for _, p := range r.posts {
		if p.Status != domain.PostStatusScheduled || p.ScheduledAt == nil {
			continue
		}
		if next.IsZero() || p.ScheduledAt.Before(next) {
			next = *p.ScheduledAt
		}
	}
	return next, nil
}
