package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"resident/internal/transaction/models"
	"resident/pkg/platform/sentinel"
)

// InMemoryStore keeps transactions in process. Used when no database is
// configured and in tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	byEvent map[string]*models.ResidentTransaction
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{byEvent: make(map[string]*models.ResidentTransaction)}
}

func (s *InMemoryStore) Save(_ context.Context, txn *models.ResidentTransaction) error {
	if txn == nil || txn.EventID == "" {
		return fmt.Errorf("resident transaction with event id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEvent[txn.EventID]; ok {
		return fmt.Errorf("event %s: %w", txn.EventID, sentinel.ErrConflict)
	}
	cp := *txn
	cp.OTPChannels = append([]string(nil), txn.OTPChannels...)
	s.byEvent[txn.EventID] = &cp
	return nil
}

func (s *InMemoryStore) FindByEventID(_ context.Context, eventID string) (*models.ResidentTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.byEvent[eventID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *txn
	return &cp, nil
}

// ListByIndividualID returns the individual's transactions, newest first.
func (s *InMemoryStore) ListByIndividualID(_ context.Context, individualID string) ([]*models.ResidentTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ResidentTransaction
	for _, txn := range s.byEvent {
		if txn.IndividualID == individualID {
			cp := *txn
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].EventID > out[j].EventID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Count returns the number of stored transactions.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEvent)
}
