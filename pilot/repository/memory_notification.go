package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/postpilothq/postpilot/pilot/domain"
)

// MemoryNotificationStore keeps notifications in memory, newest first.
// OnPush, when set, is invoked for every new notification; the REST layer
// wires it to the WebSocket hub.
type MemoryNotificationStore struct {
	mu            sync.RWMutex
	notifications []domain.Notification

	OnPush func(domain.Notification)
}

func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{}
}

func (s *MemoryNotificationStore) Push(ctx context.Context, kind domain.NotificationKind, message string) domain.Notification {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	hook := s.OnPush
	s.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return n
}

func (s *MemoryNotificationStore) List(ctx context.Context) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *MemoryNotificationStore) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}
