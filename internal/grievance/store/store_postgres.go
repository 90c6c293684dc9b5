package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"resident/internal/grievance/models"
	"resident/pkg/platform/sentinel"
	txcontext "resident/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists tickets in the resident_grievance_ticket table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectTicket = `
	SELECT ticket_id, event_id, individual_id, name, email_id,
		   alternate_email_id, phone_no, alternate_phone_no, message,
		   status, created_at
	FROM resident_grievance_ticket`

func (s *PostgresStore) Save(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO resident_grievance_ticket (
			ticket_id, event_id, individual_id, name, email_id,
			alternate_email_id, phone_no, alternate_phone_no, message,
			status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query,
		ticket.TicketID,
		ticket.EventID,
		ticket.IndividualID,
		ticket.Name,
		ticket.EmailID,
		ticket.AlternateEmailID,
		ticket.PhoneNo,
		ticket.AlternatePhoneNo,
		ticket.Message,
		ticket.Status,
		ticket.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("ticket %s: %w", ticket.TicketID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert grievance ticket: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) FindByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	row := txcontext.ExecutorFor(ctx, s.db).QueryRowContext(ctx, selectTicket+` WHERE ticket_id = $1`, ticketID)
	ticket, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find grievance ticket: %w", err)
	}
	return ticket, nil
}

func (s *PostgresStore) ListByIndividualID(ctx context.Context, individualID string) ([]*models.Ticket, error) {
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx,
		selectTicket+` WHERE individual_id = $1 ORDER BY created_at DESC, ticket_id DESC`, individualID)
	if err != nil {
		return nil, fmt.Errorf("list grievance tickets: %w", err)
	}
	defer rows.Close()

	var out []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grievance ticket: %w", err)
		}
		out = append(out, ticket)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTicket(row scanner) (*models.Ticket, error) {
	var t models.Ticket
	if err := row.Scan(
		&t.TicketID,
		&t.EventID,
		&t.IndividualID,
		&t.Name,
		&t.EmailID,
		&t.AlternateEmailID,
		&t.PhoneNo,
		&t.AlternatePhoneNo,
		&t.Message,
		&t.Status,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
