package report_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aliyevq/veresiye/internal/apperr"
	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/ledger"
	"github.com/aliyevq/veresiye/internal/report"
)

func day(d int) time.Time {
	return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC)
}

func debt(amount float64, d int) *ledger.Transaction {
	return &ledger.Transaction{
		CustomerID:  1,
		Amount:      decimal.NewFromFloat(amount),
		EventType:   ledger.EventDebt,
		PaymentDate: day(d),
	}
}

func payment(amount float64, d int) *ledger.Transaction {
	return &ledger.Transaction{
		CustomerID:  1,
		Amount:      decimal.NewFromFloat(amount),
		EventType:   ledger.EventPayment,
		PaymentDate: day(d),
	}
}

func reversed(tx *ledger.Transaction) *ledger.Transaction {
	at := tx.PaymentDate.Add(time.Hour)
	tx.ReversedAt = &at

	return tx
}

func TestSummarize(t *testing.T) {
	t.Run("DebtThenPayment", func(t *testing.T) {
		r := report.Summarize([]*ledger.Transaction{debt(100, 1), payment(40, 5)})

		assert.True(t, r.TotalDebt.Equal(decimal.NewFromInt(100)), "totalDebt = %s", r.TotalDebt)
		assert.True(t, r.TotalPaid.Equal(decimal.NewFromInt(40)), "totalPaid = %s", r.TotalPaid)
		assert.True(t, r.CurrentDebt.Equal(decimal.NewFromInt(60)), "currentDebt = %s", r.CurrentDebt)
	})

	t.Run("ReversedPaymentExcluded", func(t *testing.T) {
		r := report.Summarize([]*ledger.Transaction{debt(100, 1), reversed(payment(40, 5))})

		assert.True(t, r.TotalDebt.Equal(decimal.NewFromInt(100)))
		assert.True(t, r.TotalPaid.Equal(decimal.Zero))
		assert.True(t, r.CurrentDebt.Equal(decimal.NewFromInt(100)))
	})

	t.Run("OverpaymentKeepsSign", func(t *testing.T) {
		r := report.Summarize([]*ledger.Transaction{debt(30, 1), payment(50, 2)})

		// Raw signed value, never clamped at zero.
		assert.True(t, r.CurrentDebt.Equal(decimal.NewFromInt(-20)), "currentDebt = %s", r.CurrentDebt)
	})

	t.Run("ExactDecimalSums", func(t *testing.T) {
		// 0.1 + 0.2 style accumulation must stay exact.
		txs := make([]*ledger.Transaction, 0, 100)
		for range 100 {
			txs = append(txs, debt(0.1, 1))
		}

		r := report.Summarize(txs)
		assert.True(t, r.TotalDebt.Equal(decimal.NewFromInt(10)), "totalDebt = %s", r.TotalDebt)
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		txs := []*ledger.Transaction{
			debt(100, 1), payment(40, 5), debt(19, 2),
			reversed(debt(7, 3)), payment(0.04, 4), debt(261.98, 6),
		}

		want := report.Summarize(txs)

		rng := rand.New(rand.NewSource(1))
		for range 10 {
			rng.Shuffle(len(txs), func(i, j int) { txs[i], txs[j] = txs[j], txs[i] })

			got := report.Summarize(txs)
			assert.True(t, got.TotalDebt.Equal(want.TotalDebt))
			assert.True(t, got.TotalPaid.Equal(want.TotalPaid))
			assert.True(t, got.CurrentDebt.Equal(want.CurrentDebt))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		r := report.Summarize(nil)
		assert.True(t, r.CurrentDebt.Equal(decimal.Zero))
	})
}

func TestService_CustomerCashflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txSrc := report.NewMockTransactionSource(ctrl)
	custSrc := report.NewMockCustomerSource(ctrl)
	svc := report.NewService(txSrc, custSrc)

	c := &customer.Customer{ID: 1, Name: "borclu"}
	txs := []*ledger.Transaction{debt(100, 1), payment(40, 5), reversed(debt(5, 2))}

	custSrc.EXPECT().GetCustomer(gomock.Any(), int64(1)).Return(c, nil)
	txSrc.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
			require.NotNil(t, filter.CustomerID)
			assert.Equal(t, int64(1), *filter.CustomerID)
			return txs, nil
		})

	got, err := svc.CustomerCashflow(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, c, got.Customer)
	assert.True(t, got.CurrentDebt.Equal(decimal.NewFromInt(60)))
	// The reversed row stays visible in the listing.
	assert.Len(t, got.Transactions, 3)
}

func TestService_CustomerCashflow_UnknownCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txSrc := report.NewMockTransactionSource(ctrl)
	custSrc := report.NewMockCustomerSource(ctrl)
	svc := report.NewService(txSrc, custSrc)

	custSrc.EXPECT().GetCustomer(gomock.Any(), int64(99)).Return(nil, apperr.ErrNotFound)

	_, err := svc.CustomerCashflow(context.Background(), 99, nil, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_GlobalCashflow_PassesRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txSrc := report.NewMockTransactionSource(ctrl)
	svc := report.NewService(txSrc, report.NewMockCustomerSource(ctrl))

	from := day(1)
	to := day(28)

	txSrc.EXPECT().
		ListTransactions(gomock.Any(), ledger.ListFilter{From: &from, To: &to}).
		Return([]*ledger.Transaction{debt(22, 2), payment(3, 4)}, nil)

	got, err := svc.GlobalCashflow(context.Background(), &from, &to)
	require.NoError(t, err)
	assert.True(t, got.CurrentDebt.Equal(decimal.NewFromInt(19)))
}

func TestService_CustomerSummaries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txSrc := report.NewMockTransactionSource(ctrl)
	custSrc := report.NewMockCustomerSource(ctrl)
	svc := report.NewService(txSrc, custSrc)

	custSrc.EXPECT().ListCustomers(gomock.Any()).Return([]*customer.Customer{
		{ID: 1, Name: "borclu"},
		{ID: 2, Name: "idle"},
	}, nil)

	first := debt(100, 1)
	second := payment(40, 5)
	txSrc.EXPECT().
		ListTransactions(gomock.Any(), ledger.ListFilter{}).
		Return([]*ledger.Transaction{first, second}, nil)

	got, err := svc.CustomerSummaries(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].CurrentDebt.Equal(decimal.NewFromInt(60)))
	// Customers without transactions come back with zero totals.
	assert.True(t, got[1].CurrentDebt.Equal(decimal.Zero))
}

func TestService_RecentActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txSrc := report.NewMockTransactionSource(ctrl)
	svc := report.NewService(txSrc, report.NewMockCustomerSource(ctrl))

	e1 := &ledger.Entry{Transaction: debt(100, 1), CustomerName: "borclu"}
	e2 := &ledger.Entry{Transaction: payment(40, 5), CustomerName: "borclu"}

	txSrc.EXPECT().RecentTransactions(gomock.Any(), 5).Return([]*ledger.Entry{e2, e1}, nil)
	// Both entries belong to customer 1; the balance is looked up once.
	txSrc.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		Return([]*ledger.Transaction{debt(100, 1), payment(40, 5)}, nil).
		Times(1)

	got, err := svc.RecentActivity(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CurrentDebt.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "borclu", got[0].Entry.CustomerName)
}
