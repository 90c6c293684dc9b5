// Package fanout writes each audit event to several sinks.
package fanout

import (
	"context"
	"errors"

	audit "resident/pkg/platform/audit"
)

// Store appends to every sink and joins their errors. Reads are served by
// the first sink that supports them.
type Store struct {
	sinks []audit.Store
}

func New(sinks ...audit.Store) *Store {
	return &Store{sinks: sinks}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	for _, sink := range s.sinks {
		if lister, ok := sink.(audit.Lister); ok {
			return lister.ListBySubject(ctx, subject)
		}
	}
	return nil, nil
}
