package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aliyevq/veresiye/internal/apperr"
	"github.com/aliyevq/veresiye/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a ledger row in column order:
// id, customer_id, amount, event_type, payment_date, created_at, updated_at, reversed_at
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var eventType int

	if err := s.Scan(
		&tx.ID, &tx.CustomerID, &tx.Amount, &eventType, &tx.PaymentDate,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.ReversedAt,
	); err != nil {
		return nil, err
	}

	tx.EventType = ledger.EventType(eventType)

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.customer_id, t.amount, t.event_type, t.payment_date,
	t.created_at, t.updated_at, t.reversed_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (customer_id, amount, event_type, payment_date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.CustomerID,
		tx.Amount,
		int(tx.EventType),
		tx.PaymentDate,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions t WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// UpdateTransaction overwrites the mutable fields of an active row. The
// reversed_at IS NULL condition makes the edit lose cleanly against a
// concurrent reverse.
func (s *Store) UpdateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $1, event_type = $2, payment_date = $3, updated_at = NOW()
		WHERE id = $4 AND reversed_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Amount,
		int(tx.EventType),
		tx.PaymentDate,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.classifyMiss(ctx, tx.ID)
	}

	return nil
}

func (s *Store) ReverseTransaction(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE transactions
		SET reversed_at = $1
		WHERE id = $2 AND reversed_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("reversing transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.classifyMiss(ctx, id)
	}

	return nil
}

// classifyMiss distinguishes a missing row from a reversed one after a
// conditional write touched nothing.
func (s *Store) classifyMiss(ctx context.Context, id int64) error {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return fmt.Errorf("classifying write miss: %w", err)
	}

	if !exists {
		return apperr.ErrNotFound
	}

	return apperr.ErrAlreadyReversed
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions t WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND t.customer_id = $%d", argIdx)

		args = append(args, *filter.CustomerID)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND t.payment_date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND t.payment_date <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY t.payment_date ASC, t.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) RecentTransactions(ctx context.Context, limit int) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectTransactionColumns + `, c.name
		FROM transactions t
		JOIN customers c ON c.id = t.customer_id
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent transactions: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		var tx ledger.Transaction

		var eventType int

		var name string

		if err := rows.Scan(
			&tx.ID, &tx.CustomerID, &tx.Amount, &eventType, &tx.PaymentDate,
			&tx.CreatedAt, &tx.UpdatedAt, &tx.ReversedAt, &name,
		); err != nil {
			return nil, fmt.Errorf("scanning recent transaction: %w", err)
		}

		tx.EventType = ledger.EventType(eventType)

		entries = append(entries, &ledger.Entry{Transaction: &tx, CustomerName: name})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent rows: %w", err)
	}

	return entries, nil
}
