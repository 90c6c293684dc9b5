package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"resident/internal/grievance/models"
	"resident/pkg/platform/sentinel"
)

// InMemoryStore keeps grievance tickets in process.
type InMemoryStore struct {
	mu       sync.RWMutex
	byTicket map[string]*models.Ticket
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{byTicket: make(map[string]*models.Ticket)}
}

func (s *InMemoryStore) Save(_ context.Context, ticket *models.Ticket) error {
	if ticket == nil || ticket.TicketID == "" {
		return fmt.Errorf("grievance ticket with ticket id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byTicket[ticket.TicketID]; ok {
		return fmt.Errorf("ticket %s: %w", ticket.TicketID, sentinel.ErrConflict)
	}
	cp := *ticket
	s.byTicket[ticket.TicketID] = &cp
	return nil
}

func (s *InMemoryStore) FindByTicketID(_ context.Context, ticketID string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.byTicket[ticketID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *ticket
	return &cp, nil
}

// ListByIndividualID returns the resident's tickets, newest first.
func (s *InMemoryStore) ListByIndividualID(_ context.Context, individualID string) ([]*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Ticket
	for _, ticket := range s.byTicket {
		if ticket.IndividualID == individualID {
			cp := *ticket
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].TicketID > out[j].TicketID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
