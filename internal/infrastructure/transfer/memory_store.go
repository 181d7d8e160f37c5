package transfer

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/repository"
)

// MemoryStore is an in-process HandoffRepository. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	payloads map[string]*entity.HandoffPayload
	// FailWith, when set, makes Save fail; used to exercise storage errors.
	FailWith error
}

var _ repository.HandoffRepository = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{payloads: make(map[string]*entity.HandoffPayload)}
}

func (s *MemoryStore) Save(_ context.Context, payload *entity.HandoffPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	cp := *payload
	cp.Payload = slices.Clone(payload.Payload)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.payloads[cp.Key] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*entity.HandoffPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payloads[key]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Payload = slices.Clone(p.Payload)
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.payloads, key)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]*entity.HandoffPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.HandoffPayload, 0, len(s.payloads))
	for _, p := range s.payloads {
		cp := *p
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *entity.HandoffPayload) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *MemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for key, p := range s.payloads {
		if p.CreatedAt.Before(cutoff) {
			delete(s.payloads, key)
			removed++
		}
	}
	return removed, nil
}
