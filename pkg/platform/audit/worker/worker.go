package worker

import (
	"context"
	"log/slog"

	audit "resident/pkg/platform/audit"
)

// Worker drains audit events from a channel into a store. A failed append is
// logged and the worker moves on; audit delivery never blocks the caller.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run persists events until the inbox is closed and drained, or ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "failed to persist audit event",
					"event", event.Action,
					"request_id", event.RequestID,
					"error", err,
				)
			}
		}
	}
}
