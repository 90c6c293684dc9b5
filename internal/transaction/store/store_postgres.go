package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"resident/internal/transaction/models"
	"resident/pkg/platform/sentinel"
	txcontext "resident/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists transactions in the resident_transaction table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed transaction store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectTransaction = `
	SELECT event_id, request_trn_id, request_type_code, request_summary,
		   auth_type_code, attribute_list, otp_channels, status_code,
		   status_comment, lang_code, ref_id_type, ref_id, individual_id,
		   token_id, purpose, created_by, created_at
	FROM resident_transaction`

// Save inserts a transaction, joining the caller's transaction when one is
// present in ctx. A duplicate event id is sentinel.ErrConflict.
func (s *PostgresStore) Save(ctx context.Context, txn *models.ResidentTransaction) error {
	query := `
		INSERT INTO resident_transaction (
			event_id, request_trn_id, request_type_code, request_summary,
			auth_type_code, attribute_list, otp_channels, status_code,
			status_comment, lang_code, ref_id_type, ref_id, individual_id,
			token_id, purpose, created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query,
		txn.EventID,
		txn.RequestTrnID,
		txn.RequestTypeCode,
		txn.RequestSummary,
		txn.AuthTypeCode,
		txn.AttributeList,
		pq.Array(txn.OTPChannels),
		txn.StatusCode,
		txn.StatusComment,
		txn.LangCode,
		txn.RefIDType,
		txn.RefID,
		txn.IndividualID,
		txn.TokenID,
		txn.Purpose,
		txn.CreatedBy,
		txn.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("event %s: %w", txn.EventID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert resident transaction: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) FindByEventID(ctx context.Context, eventID string) (*models.ResidentTransaction, error) {
	row := txcontext.ExecutorFor(ctx, s.db).QueryRowContext(ctx, selectTransaction+` WHERE event_id = $1`, eventID)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find resident transaction: %w", err)
	}
	return txn, nil
}

// ListByIndividualID returns the individual's transactions, newest first.
func (s *PostgresStore) ListByIndividualID(ctx context.Context, individualID string) ([]*models.ResidentTransaction, error) {
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx,
		selectTransaction+` WHERE individual_id = $1 ORDER BY created_at DESC, event_id DESC`, individualID)
	if err != nil {
		return nil, fmt.Errorf("list resident transactions: %w", err)
	}
	defer rows.Close()

	var out []*models.ResidentTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resident transaction: %w", err)
		}
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resident transactions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*models.ResidentTransaction, error) {
	var txn models.ResidentTransaction
	err := row.Scan(
		&txn.EventID,
		&txn.RequestTrnID,
		&txn.RequestTypeCode,
		&txn.RequestSummary,
		&txn.AuthTypeCode,
		&txn.AttributeList,
		pq.Array(&txn.OTPChannels),
		&txn.StatusCode,
		&txn.StatusComment,
		&txn.LangCode,
		&txn.RefIDType,
		&txn.RefID,
		&txn.IndividualID,
		&txn.TokenID,
		&txn.Purpose,
		&txn.CreatedBy,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
