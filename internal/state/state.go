// Package state holds the currently loaded survey dataset. The dataset is
// immutable once stored; every upload or edit swaps in a freshly built value.
package state

import (
	"sync"

	"anket-backend/internal/survey"
)

// AppState guards the active dataset behind a RWMutex so statistics requests
// can read concurrently while an upload replaces it.
type AppState struct {
	mu      sync.RWMutex
	dataset *survey.Dataset
}

// New returns an empty state.
func New() *AppState {
	return &AppState{}
}

// SetDataset replaces the active dataset.
func (s *AppState) SetDataset(d *survey.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = d
}

// Dataset returns the active dataset, nil when nothing is loaded.
func (s *AppState) Dataset() *survey.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Clear drops the active dataset.
func (s *AppState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = nil
}
