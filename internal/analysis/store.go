package analysis

import (
	"context"
	"sync"
	"time"
)

// DefaultListLimit is the number of records ListRecent returns when the
// caller does not ask for a specific count.
const DefaultListLimit = 10

// MemoryStore is the in-memory Store. Storage lives as long as the
// process; a restart clears all history.
type MemoryStore struct {
	mu      sync.RWMutex
	byCode  map[string]*Record
	ordered []*Record // insertion order; IDs are monotonic so this is also createdAt order
	nextID  int64
}

// Compile-time check that MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[string]*Record),
	}
}

// Find returns the record for this exact code string, or nil.
func (s *MemoryStore) Find(ctx context.Context, code string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byCode[code]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

// Create assigns the next ID and timestamp and stores the record. If a
// record already exists for the same code it is kept untouched and
// returned, so concurrent duplicate submissions cannot create two rows.
func (s *MemoryStore) Create(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byCode[rec.Code]; ok {
		*rec = *existing
		return nil
	}

	s.nextID++
	rec.ID = s.nextID
	rec.CreatedAt = time.Now().UTC()

	copied := *rec
	s.byCode[rec.Code] = &copied
	s.ordered = append(s.ordered, &copied)
	return nil
}

// ListRecent returns up to limit records, newest first.
func (s *MemoryStore) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.ordered)
	if limit > n {
		limit = n
	}

	out := make([]*Record, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		copied := *s.ordered[i]
		out = append(out, &copied)
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}
