// Package dashboard contains the use cases behind the insights dashboard: it
// keeps the latest store snapshot with its derived views and applies mutations
// with read-after-write refreshes.
package dashboard

import (
	"sync"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// ViewState holds the latest snapshot together with the views derived from it.
// Readers always see a matching pair.
type ViewState struct {
	mu       sync.RWMutex
	snapshot *entity.Snapshot
	views    *entity.Views

	// issued is the last generation handed out, applied the last one committed.
	issued  uint64
	applied uint64
}

// NewViewState creates an empty ViewState.
func NewViewState() *ViewState {
	return &ViewState{}
}

// Current returns the latest snapshot and views. Both are nil until the first refresh.
func (s *ViewState) Current() (*entity.Snapshot, *entity.Views) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.views
}

// Loaded reports whether a snapshot has been committed.
func (s *ViewState) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot != nil
}

// nextGeneration reserves a generation number for an update about to start.
func (s *ViewState) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// commit stores the pair unless a later generation was already committed.
func (s *ViewState) commit(generation uint64, snapshot *entity.Snapshot, views *entity.Views) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation < s.applied {
		return false
	}
	s.applied = generation
	s.snapshot = snapshot
	s.views = views
	return true
}
