package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType discriminates ledger entries. The numeric values are the wire
// values the dashboard sends: 0 adds to what the customer owes, 1 pays it off.
type EventType int

const (
	EventDebt    EventType = 0
	EventPayment EventType = 1
)

func (e EventType) Valid() bool {
	return e == EventDebt || e == EventPayment
}

func (e EventType) String() string {
	switch e {
	case EventDebt:
		return "debt"
	case EventPayment:
		return "payment"
	}

	return "unknown"
}

// Transaction is a single signed monetary event in a customer's ledger.
// PaymentDate is the point in time the event is attributed to and may be
// back-dated; CreatedAt is the insertion time. A non-nil ReversedAt marks the
// transaction as logically cancelled: it stays out of every aggregate but is
// kept for audit.
type Transaction struct {
	ID          int64
	CustomerID  int64
	Amount      decimal.Decimal
	EventType   EventType
	PaymentDate time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	ReversedAt  *time.Time
}

// Reversed reports whether the transaction is a tombstone.
func (t *Transaction) Reversed() bool {
	return t.ReversedAt != nil
}

// ListFilter narrows a ledger listing. Reversed rows are always included;
// aggregate math is responsible for skipping them.
type ListFilter struct {
	CustomerID *int64
	From       *time.Time
	To         *time.Time
}

// Entry pairs a transaction with the owning customer's name for feeds that
// span customers.
type Entry struct {
	Transaction  *Transaction
	CustomerName string
}
