// Package memory keeps contracts, users and uploaded media in process memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"renza-entrega/internal/storage"
)

type Storage struct {
	mu        sync.RWMutex
	contracts map[string]storage.Contract
}

func New(contracts []storage.Contract) (*Storage, error) {
	const op = "storage.memory.New"

	s := &Storage{contracts: make(map[string]storage.Contract, len(contracts))}
	for _, c := range contracts {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, ok := s.contracts[c.ID]; ok {
			return nil, fmt.Errorf("%s: duplicate contract id %s", op, c.ID)
		}
		s.contracts[c.ID] = c.Clone()
	}

	return s, nil
}

func (s *Storage) Contracts(ctx context.Context) ([]storage.Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *Storage) Contract(ctx context.Context, id string) (storage.Contract, error) {
	const op = "storage.memory.Contract"

	if err := ctx.Err(); err != nil {
		return storage.Contract{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contracts[id]
	if !ok {
		return storage.Contract{}, fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrContractNotFound)
	}

	return c.Clone(), nil
}

// UpdateContract applies fn to a private copy and publishes the copy only
// when fn succeeds.
func (s *Storage) UpdateContract(ctx context.Context, id string, fn func(*storage.Contract) error) (storage.Contract, error) {
	const op = "storage.memory.UpdateContract"

	if err := ctx.Err(); err != nil {
		return storage.Contract{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.contracts[id]
	if !ok {
		return storage.Contract{}, fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrContractNotFound)
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		return storage.Contract{}, err
	}
	if err := next.Validate(); err != nil {
		return storage.Contract{}, fmt.Errorf("%s: %w", op, err)
	}

	s.contracts[id] = next

	return next.Clone(), nil
}
