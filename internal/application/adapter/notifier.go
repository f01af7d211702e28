// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationLevel is the severity of a user notification.
type NotificationLevel string

const (
	NotificationLevelInfo  NotificationLevel = "info"
	NotificationLevelError NotificationLevel = "error"
)

// Notification is a transient, dismissable message shown to the user.
type Notification struct {
	ID        uuid.UUID         `json:"id"`
	Level     NotificationLevel `json:"level"`
	Code      string            `json:"code,omitempty"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// Notifier stores notifications until they are dismissed or expire.
type Notifier interface {
	// Push records a notification and returns it with its id assigned.
	Push(ctx context.Context, notification Notification) (*Notification, error)

	// List returns the live notifications, oldest first.
	List(ctx context.Context) ([]Notification, error)

	// Dismiss removes a notification. Dismissing an unknown id is not an error.
	Dismiss(ctx context.Context, id uuid.UUID) error
}
