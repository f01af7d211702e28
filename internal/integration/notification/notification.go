// Package notification stores transient user notifications, in Redis or in memory.
package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/insights/internal/application/adapter"
)

const (
	defaultTTL      = 30 * time.Second
	defaultMaxItems = 20
)

// Options configures how long notifications live and how many are kept.
type Options struct {
	TTL      time.Duration
	MaxItems int
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = defaultTTL
	}
	if o.MaxItems <= 0 {
		o.MaxItems = defaultMaxItems
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// stamp fills the id and creation time of a notification about to be stored.
func stamp(n adapter.Notification, now time.Time) adapter.Notification {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.Level == "" {
		n.Level = adapter.NotificationLevelInfo
	}
	return n
}
