package storage

import (
	"encoding/json"
	"sync"

	"github.com/jgagnon/acbtracker/portfolio"
)

// MemStore is an in-memory Store for tests and ephemeral runs. The document
// round-trips through JSON so callers get the same copy semantics as the
// file store.
type MemStore struct {
	mu  sync.RWMutex
	doc []byte
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() ([]*portfolio.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return []*portfolio.Portfolio{}, nil
	}
	var portfolios []*portfolio.Portfolio
	if err := json.Unmarshal(s.doc, &portfolios); err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (s *MemStore) Save(portfolios []*portfolio.Portfolio) error {
	data, err := json.Marshal(portfolios)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = data
	return nil
}
