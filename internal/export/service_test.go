package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/ledger"
	"github.com/aliyevq/veresiye/internal/report"
)

type fakeReports struct {
	rep *report.CustomerReport
	err error
}

func (f *fakeReports) CustomerCashflow(ctx context.Context, customerID int64, from, to *time.Time) (*report.CustomerReport, error) {
	return f.rep, f.err
}

func TestService_WriteStatement(t *testing.T) {
	day1 := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	day5 := time.Date(2025, 2, 5, 10, 0, 0, 0, time.UTC)
	reversedAt := day5.Add(time.Hour)

	rep := &report.CustomerReport{
		Customer: &customer.Customer{ID: 1, Name: "Vagif"},
		Report: report.Report{
			TotalDebt:   decimal.NewFromInt(100),
			TotalPaid:   decimal.NewFromInt(40),
			CurrentDebt: decimal.NewFromInt(60),
		},
		Transactions: []*ledger.Transaction{
			{
				ID:          1,
				Amount:      decimal.NewFromInt(100),
				EventType:   ledger.EventDebt,
				PaymentDate: day1,
			},
			{
				ID:          2,
				Amount:      decimal.NewFromInt(40),
				EventType:   ledger.EventPayment,
				PaymentDate: day5,
			},
			{
				ID:          3,
				Amount:      decimal.NewFromFloat(7.5),
				EventType:   ledger.EventDebt,
				PaymentDate: day5,
				ReversedAt:  &reversedAt,
			},
		},
	}

	svc := NewService(&fakeReports{rep: rep})

	var buf bytes.Buffer

	require.NoError(t, svc.WriteStatement(context.Background(), &buf, 1, nil, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, "Date,Type,Amount,Status", lines[0])
	assert.Equal(t, "2025-02-01,debt,100.00,active", lines[1])
	assert.Equal(t, "2025-02-05,payment,40.00,active", lines[2])
	assert.Equal(t, "2025-02-05,debt,7.50,reversed", lines[3])
	assert.Equal(t, ",total debt,100.00,", lines[4])
	assert.Equal(t, ",total paid,40.00,", lines[5])
	assert.Equal(t, ",current debt,60.00,", lines[6])
}

func TestService_WriteStatement_ReportError(t *testing.T) {
	svc := NewService(&fakeReports{err: errors.New("boom")})

	var buf bytes.Buffer

	err := svc.WriteStatement(context.Background(), &buf, 1, nil, nil)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestStatementFilename(t *testing.T) {
	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "20250201_Vagif.csv", StatementFilename("Vagif", at))
	assert.Equal(t, "20250201_a_kopoglu.csv", StatementFilename("a kopoglu", at))
}
