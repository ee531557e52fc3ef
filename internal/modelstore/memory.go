package modelstore

import (
	"sync"

	"github.com/skylabs-meteo/forecast-analytics/internal/model"
)

// MemoryStore holds the artifact in process memory. Used by the backtest tool
// and tests, where persistence across runs is unwanted.
type MemoryStore struct {
	mu       sync.Mutex
	artifact *model.Artifact
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the held artifact, ok=false when nothing was saved yet.
func (s *MemoryStore) Load() (*model.Artifact, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.artifact == nil {
		return nil, false, nil
	}
	return s.artifact, true, nil
}

// Save replaces the held artifact.
func (s *MemoryStore) Save(artifact *model.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = artifact
	return nil
}
