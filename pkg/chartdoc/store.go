package chartdoc

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrChartNotFound is returned by Store.Get for unknown ids.
var ErrChartNotFound = errors.New("chartdoc: chart not found")

// Store indexes charts by id. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	charts map[string]Chart
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{charts: make(map[string]Chart)}
}

// Add inserts charts, rejecting ids already present.
func (s *Store) Add(charts ...Chart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chart := range charts {
		if existing, ok := s.charts[chart.ID]; ok {
			return fmt.Errorf("%w: %q declared in %s and %s", ErrDuplicateID, chart.ID, existing.Document, chart.Document)
		}
		s.charts[chart.ID] = chart
	}
	return nil
}

// Get returns the chart registered under id.
func (s *Store) Get(id string) (Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chart, ok := s.charts[id]
	if !ok {
		return Chart{}, fmt.Errorf("%w: %q", ErrChartNotFound, id)
	}
	return chart, nil
}

// IDs lists chart ids in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.charts))
	for id := range s.charts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every chart ordered by id.
func (s *Store) All() []Chart {
	ids := s.IDs()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Chart, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.charts[id])
	}
	return out
}

// Len returns the number of charts held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.charts)
}
