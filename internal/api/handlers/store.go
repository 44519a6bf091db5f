package handlers

import (
	"delivery-simulation-service/internal/services"
	"sync"
)

// RunStore keeps the most recent fleet run for the read endpoints.
type RunStore struct {
	mu     sync.RWMutex
	latest *services.FleetResult
}

func (s *RunStore) Latest() *services.FleetResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *RunStore) Set(res *services.FleetResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = res
}
