package palette

import (
	"rayline/pkg/types"
)

// ResultStore is the authoritative result list. It never holds two results
// with the same ID.
type ResultStore struct {
	results []types.FileResult
	ids     map[string]struct{}
	report  func(error)
}

// NewResultStore creates an empty store. report, if non-nil, receives a
// *errors.DataError for every malformed result that is dropped.
func NewResultStore(report func(error)) *ResultStore {
	return &ResultStore{
		ids:    make(map[string]struct{}),
		report: report,
	}
}

// SetResults replaces the whole set, keeping batch order. Later duplicates of
// an id within batch are dropped. It returns the number of results stored.
func (s *ResultStore) SetResults(batch []types.FileResult) int {
	s.results = make([]types.FileResult, 0, len(batch))
	s.ids = make(map[string]struct{}, len(batch))
	return s.merge(batch)
}

// AppendResults adds the results of batch whose id is not yet present, in
// batch order, after the existing ones. Delivering the same batch twice is
// harmless. It returns the number of results added.
func (s *ResultStore) AppendResults(batch []types.FileResult) int {
	return s.merge(batch)
}

func (s *ResultStore) merge(batch []types.FileResult) int {
	added := 0
	for _, r := range batch {
		if err := r.Validate(); err != nil {
			if s.report != nil {
				s.report(err)
			}
			continue
		}
		if _, seen := s.ids[r.ID]; seen {
			continue
		}
		s.ids[r.ID] = struct{}{}
		s.results = append(s.results, r)
		added++
	}
	return added
}

// Results returns the stored results. Callers must not modify the slice.
func (s *ResultStore) Results() []types.FileResult {
	return s.results
}

// Len returns the number of stored results.
func (s *ResultStore) Len() int {
	return len(s.results)
}

// Contains reports whether a result with id is stored.
func (s *ResultStore) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}
