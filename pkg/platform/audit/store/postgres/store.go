package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	audit "resident/pkg/platform/audit"
	txcontext "resident/pkg/platform/tx"
)

// Store implements audit.Store on the audit_events table. Writes join the
// caller's transaction when one is present in ctx.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	SELECT id, category, event_type, timestamp, action, description,
		   subject, reason, request_id, client_ip, device, module
	FROM audit_events`

// Append inserts an audit event. Duplicate ids are ignored so replays are idempotent.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}
	eventType := event.Type
	if eventType == "" {
		eventType = audit.AuditEvent(event.Action).Type()
	}

	query := `
		INSERT INTO audit_events (
			id, category, event_type, timestamp, action, description,
			subject, reason, request_id, client_ip, device, module
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query,
		event.ID,
		string(category),
		string(eventType),
		event.Timestamp,
		event.Action,
		event.Description,
		event.Subject,
		event.Reason,
		event.RequestID,
		event.ClientIP,
		event.Device,
		event.Module,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListBySubject returns events recorded for a resident, newest first.
func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		WHERE subject = $1
		ORDER BY timestamp DESC`, subject)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListRecent returns the N most recent events.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		ORDER BY timestamp DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event

	for rows.Next() {
		var (
			event     audit.Event
			category  string
			eventType string
		)
		err := rows.Scan(
			&event.ID,
			&category,
			&eventType,
			&event.Timestamp,
			&event.Action,
			&event.Description,
			&event.Subject,
			&event.Reason,
			&event.RequestID,
			&event.ClientIP,
			&event.Device,
			&event.Module,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		event.Type = audit.EventType(eventType)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
