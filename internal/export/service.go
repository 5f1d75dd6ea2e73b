// Package export renders a customer's ledger as a CSV statement: one line
// per transaction followed by the derived totals. Amounts are rounded to two
// decimal places here and nowhere earlier.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyevq/veresiye/internal/report"
)

// ReportSource is the slice of the report service the exporter needs.
type ReportSource interface {
	CustomerCashflow(ctx context.Context, customerID int64, from, to *time.Time) (*report.CustomerReport, error)
}

type Service struct {
	reports ReportSource
}

func NewService(reports ReportSource) *Service {
	return &Service{reports: reports}
}

// WriteStatement streams the statement for one customer to w.
func (s *Service) WriteStatement(ctx context.Context, w io.Writer, customerID int64, from, to *time.Time) error {
	rep, err := s.reports.CustomerCashflow(ctx, customerID, from, to)
	if err != nil {
		return fmt.Errorf("computing report: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Type", "Amount", "Status"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range rep.Transactions {
		status := "active"
		if tx.Reversed() {
			status = "reversed"
		}

		row := []string{
			tx.PaymentDate.Format(time.DateOnly),
			tx.EventType.String(),
			tx.Amount.StringFixed(2),
			status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	summary := [][]string{
		{"", "total debt", rep.TotalDebt.StringFixed(2), ""},
		{"", "total paid", rep.TotalPaid.StringFixed(2), ""},
		{"", "current debt", rep.CurrentDebt.StringFixed(2), ""},
	}
	for _, row := range summary {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing statement: %w", err)
	}

	return nil
}

// StatementFilename builds a download name like 20250201_Vagif.csv.
func StatementFilename(customerName string, at time.Time) string {
	safeName := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, customerName)

	return fmt.Sprintf("%s_%s.csv", at.Format("20060102"), safeName)
}
