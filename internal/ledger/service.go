package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliyevq/veresiye/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	// UpdateTransaction overwrites the mutable fields of an active
	// transaction. It must be conditional on the row not being reversed and
	// return apperr.ErrAlreadyReversed when the condition fails.
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	// ReverseTransaction sets reversed_at, conditional on it being unset.
	ReverseTransaction(ctx context.Context, id int64, at time.Time) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	RecentTransactions(ctx context.Context, limit int) ([]*Entry, error)
}

// CustomerDirectory answers whether a customer id references an existing
// customer. The postgres implementation lives in the customer store.
type CustomerDirectory interface {
	CustomerExists(ctx context.Context, id int64) (bool, error)
}

// Service is the mutation gateway over the ledger: every write either fully
// succeeds or fails with a classified error and no partial state.
type Service struct {
	repo      Repository
	customers CustomerDirectory
}

func NewService(repo Repository, customers CustomerDirectory) *Service {
	return &Service{repo: repo, customers: customers}
}

type AppendParams struct {
	CustomerID  int64
	Amount      decimal.Decimal
	EventType   EventType
	PaymentDate time.Time
}

type EditParams struct {
	Amount      decimal.Decimal
	EventType   EventType
	PaymentDate time.Time
}

// AddDebt records an amount the customer now owes.
func (s *Service) AddDebt(ctx context.Context, customerID int64, amount decimal.Decimal, paymentDate time.Time) (*Transaction, error) {
	return s.Append(ctx, AppendParams{
		CustomerID:  customerID,
		Amount:      amount,
		EventType:   EventDebt,
		PaymentDate: paymentDate,
	})
}

// AddPayment records an amount the customer paid off.
func (s *Service) AddPayment(ctx context.Context, customerID int64, amount decimal.Decimal, paymentDate time.Time) (*Transaction, error) {
	return s.Append(ctx, AppendParams{
		CustomerID:  customerID,
		Amount:      amount,
		EventType:   EventPayment,
		PaymentDate: paymentDate,
	})
}

func (s *Service) Append(ctx context.Context, params AppendParams) (*Transaction, error) {
	if err := validateAmount(params.Amount); err != nil {
		return nil, err
	}

	if !params.EventType.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %d", apperr.ErrValidation, params.EventType)
	}

	exists, err := s.customers.CustomerExists(ctx, params.CustomerID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("%w: customer %d", apperr.ErrNotFound, params.CustomerID)
	}

	tx := &Transaction{
		CustomerID:  params.CustomerID,
		Amount:      params.Amount,
		EventType:   params.EventType,
		PaymentDate: params.PaymentDate,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Edit overwrites the mutable fields of an active transaction in place. The
// id never changes and a reversed target is rejected before any write.
func (s *Service) Edit(ctx context.Context, id int64, params EditParams) (*Transaction, error) {
	if err := validateAmount(params.Amount); err != nil {
		return nil, err
	}

	if !params.EventType.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %d", apperr.ErrValidation, params.EventType)
	}

	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.Reversed() {
		return nil, fmt.Errorf("%w: transaction %d", apperr.ErrAlreadyReversed, id)
	}

	tx.Amount = params.Amount
	tx.EventType = params.EventType
	tx.PaymentDate = params.PaymentDate

	// The repository re-checks reversed_at in the same statement, so a
	// reverse racing this edit cannot be overwritten.
	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Reverse tombstones a transaction. Reversal is terminal: the row stays in
// the ledger for audit but leaves every aggregate.
func (s *Service) Reverse(ctx context.Context, id int64) error {
	return s.repo.ReverseTransaction(ctx, id, time.Now().UTC())
}

// List returns transactions ordered by payment date ascending, reversed rows
// included.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Recent returns the latest entries across all customers, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.repo.RecentTransactions(ctx, limit)
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperr.ErrValidation, amount)
	}

	return nil
}
