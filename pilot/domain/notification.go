package domain

import (
	"context"
	"time"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
)

// Notification is a user-facing message. Notifications never expire on
// their own; clients remove them explicitly.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

type INotificationStore interface {
	Push(ctx context.Context, kind NotificationKind, message string) Notification
	List(ctx context.Context) []Notification
	Remove(ctx context.Context, id string)
}
