package customer

import (
	"time"
)

// Customer represents a person whose debts and payments are tracked.
// Balance fields are never stored on the customer; they are derived from the
// ledger by the report service.
type Customer struct {
	ID          int64
	Name        string
	Description string
	Address     *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
