// Package report derives balances from the ledger. Nothing in here mutates
// state: every figure is recomputed from the transaction log on each call, so
// the totals can never drift from the ledger.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=report
type TransactionSource interface {
	ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error)
	RecentTransactions(ctx context.Context, limit int) ([]*ledger.Entry, error)
}

type CustomerSource interface {
	GetCustomer(ctx context.Context, id int64) (*customer.Customer, error)
	ListCustomers(ctx context.Context) ([]*customer.Customer, error)
}

// Report holds the derived totals over a set of transactions. CurrentDebt
// carries the raw signed value; a negative balance means the customer is in
// credit and it is up to the presentation layer how to render that.
type Report struct {
	TotalPaid   decimal.Decimal
	TotalDebt   decimal.Decimal
	CurrentDebt decimal.Decimal
}

// CustomerSummary is one row of the dashboard's customer list.
type CustomerSummary struct {
	Customer *customer.Customer
	Report
}

// CustomerReport backs the customer detail page: identity, totals, and the
// full transaction list (reversed rows included, flagged by ReversedAt).
type CustomerReport struct {
	Customer *customer.Customer
	Report
	Transactions []*ledger.Transaction
}

type Service struct {
	transactions TransactionSource
	customers    CustomerSource
}

func NewService(transactions TransactionSource, customers CustomerSource) *Service {
	return &Service{transactions: transactions, customers: customers}
}

// Summarize folds transactions into totals. Reversed transactions are
// skipped. The computation is a plain sum per event type, so the result is
// independent of ordering.
func Summarize(txs []*ledger.Transaction) Report {
	totalPaid := decimal.Zero
	totalDebt := decimal.Zero

	for _, tx := range txs {
		if tx.Reversed() {
			continue
		}

		switch tx.EventType {
		case ledger.EventDebt:
			totalDebt = totalDebt.Add(tx.Amount)
		case ledger.EventPayment:
			totalPaid = totalPaid.Add(tx.Amount)
		}
	}

	return Report{
		TotalPaid:   totalPaid,
		TotalDebt:   totalDebt,
		CurrentDebt: totalDebt.Sub(totalPaid),
	}
}

// CustomerCashflow computes a customer's report for the given date range.
func (s *Service) CustomerCashflow(ctx context.Context, customerID int64, from, to *time.Time) (*CustomerReport, error) {
	c, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListTransactions(ctx, ledger.ListFilter{
		CustomerID: &customerID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, err
	}

	return &CustomerReport{
		Customer:     c,
		Report:       Summarize(txs),
		Transactions: txs,
	}, nil
}

// GlobalCashflow computes totals across all customers for the dashboard's
// summary cards.
func (s *Service) GlobalCashflow(ctx context.Context, from, to *time.Time) (Report, error) {
	txs, err := s.transactions.ListTransactions(ctx, ledger.ListFilter{From: from, To: to})
	if err != nil {
		return Report{}, err
	}

	return Summarize(txs), nil
}

// CustomerSummaries returns every customer with their derived totals over the
// range. Customers without transactions get zero totals.
func (s *Service) CustomerSummaries(ctx context.Context, from, to *time.Time) ([]*CustomerSummary, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListTransactions(ctx, ledger.ListFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[int64][]*ledger.Transaction, len(customers))
	for _, tx := range txs {
		byCustomer[tx.CustomerID] = append(byCustomer[tx.CustomerID], tx)
	}

	summaries := make([]*CustomerSummary, 0, len(customers))
	for _, c := range customers {
		summaries = append(summaries, &CustomerSummary{
			Customer: c,
			Report:   Summarize(byCustomer[c.ID]),
		})
	}

	return summaries, nil
}

// Activity is one row of the recent-transactions feed: the entry plus the
// owning customer's balance at the time of the call.
type Activity struct {
	Entry       *ledger.Entry
	CurrentDebt decimal.Decimal
}

// RecentActivity returns the latest ledger entries across customers, each
// annotated with the customer's present balance.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]*Activity, error) {
	entries, err := s.transactions.RecentTransactions(ctx, limit)
	if err != nil {
		return nil, err
	}

	// One balance lookup per distinct customer in the feed.
	balances := make(map[int64]decimal.Decimal)

	activities := make([]*Activity, 0, len(entries))

	for _, e := range entries {
		id := e.Transaction.CustomerID

		debt, ok := balances[id]
		if !ok {
			txs, err := s.transactions.ListTransactions(ctx, ledger.ListFilter{CustomerID: &id})
			if err != nil {
				return nil, err
			}

			debt = Summarize(txs).CurrentDebt
			balances[id] = debt
		}

		activities = append(activities, &Activity{Entry: e, CurrentDebt: debt})
	}

	return activities, nil
}
