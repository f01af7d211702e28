package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/insights/internal/application/adapter"
)

// MemoryNotifier keeps notifications in process memory.
type MemoryNotifier struct {
	mu      sync.Mutex
	opts    Options
	entries []adapter.Notification
}

var _ adapter.Notifier = (*MemoryNotifier)(nil)

// NewMemoryNotifier creates a new MemoryNotifier.
func NewMemoryNotifier(opts Options) *MemoryNotifier {
	return &MemoryNotifier{opts: opts.withDefaults()}
}

// Push stores a notification, evicting the oldest ones beyond the limit.
func (m *MemoryNotifier) Push(_ context.Context, n adapter.Notification) (*adapter.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n = stamp(n, m.opts.Now())
	m.entries = append(m.entries, n)
	m.pruneLocked()
	return &n, nil
}

// List returns the live notifications, oldest first.
func (m *MemoryNotifier) List(context.Context) ([]adapter.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()
	return append([]adapter.Notification{}, m.entries...), nil
}

// Dismiss removes the notification with the given id.
func (m *MemoryNotifier) Dismiss(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, n := range m.entries {
		if n.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryNotifier) pruneLocked() {
	cutoff := m.opts.Now().Add(-m.opts.TTL)
	live := m.entries[:0]
	for _, n := range m.entries {
		if n.CreatedAt.After(cutoff) {
			live = append(live, n)
		}
	}
	if overflow := len(live) - m.opts.MaxItems; overflow > 0 {
		live = live[overflow:]
	}
	m.entries = live
}
