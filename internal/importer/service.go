package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/ledger"
)

// Service parses notebook files and lands their rows as customers with
// opening debts. Rows fail individually: one bad line does not sink the rest
// of the notebook.
type Service struct {
	parsers   map[Format]Parser
	customers *customer.Service
	entries   *ledger.Service
}

func NewService(customers *customer.Service, entries *ledger.Service, parsers map[Format]Parser) *Service {
	return &Service{
		parsers:   parsers,
		customers: customers,
		entries:   entries,
	}
}

// RowError records why a single notebook line was rejected.
type RowError struct {
	Name string
	Err  error
}

type Result struct {
	Imported []*customer.Customer
	Failures []RowError
}

// Parse reads rows without touching storage, for previewing a file.
func (s *Service) Parse(format Format, r io.Reader) ([]Row, error) {
	parser, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown notebook format: %s", format)
	}

	return parser.Parse(r)
}

// Import parses the file and creates a customer per row. A non-zero opening
// debt becomes a single debt entry dated at the import time.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*Result, error) {
	rows, err := s.Parse(format, r)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	now := time.Now().UTC()

	for _, row := range rows {
		c, err := s.customers.Create(ctx, customer.CreateParams{
			Name:        row.Name,
			Description: row.Description,
			Address:     row.Address,
		})
		if err != nil {
			result.Failures = append(result.Failures, RowError{Name: row.Name, Err: err})
			continue
		}

		if row.OpeningDebt.IsPositive() {
			if _, err := s.entries.AddDebt(ctx, c.ID, row.OpeningDebt, now); err != nil {
				result.Failures = append(result.Failures, RowError{Name: row.Name, Err: err})
				continue
			}
		}

		result.Imported = append(result.Imported, c)
	}

	return result, nil
}
