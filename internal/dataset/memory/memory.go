// Package memory is the default dataset backend: uploads live for the
// lifetime of the process and are discarded on exit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mailmeter/internal/core"
	"mailmeter/internal/dataset"
)

type entry struct {
	meta    dataset.Meta
	records []core.MailRecord
}

type Store struct {
	mu     sync.Mutex
	nextID int
	items  map[string]entry
}

func New() *Store {
	return &Store{items: make(map[string]entry)}
}

// Save implements dataset.Writer.
func (s *Store) Save(_ context.Context, name string, records []core.MailRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := fmt.Sprintf("mem-%d", s.nextID)
	stored := append([]core.MailRecord(nil), records...)
	s.items[id] = entry{
		meta: dataset.Meta{
			ID:        id,
			Name:      name,
			Records:   len(stored),
			CreatedAt: time.Now().UTC(),
		},
		records: stored,
	}
	return id, nil
}

// Load implements dataset.Reader.
func (s *Store) Load(_ context.Context, id string) ([]core.MailRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dataset.ErrNotFound, id)
	}
	return append([]core.MailRecord(nil), e.records...), nil
}

// List implements dataset.Lister.
func (s *Store) List(_ context.Context) ([]dataset.Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]dataset.Meta, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e.meta)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
