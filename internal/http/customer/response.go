package customer

import (
	"encoding/json"
	"time"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/http/response"
	"github.com/aliyevq/veresiye/internal/ledger"
	"github.com/aliyevq/veresiye/internal/report"
)

type customerResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Address     *string    `json:"address"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type summaryResponse struct {
	customerResponse
	TotalDebt   json.Number `json:"totalDebt"`
	TotalPaid   json.Number `json:"totalPaid"`
	CurrentDebt json.Number `json:"currentDebt"`
}

type transactionResponse struct {
	ID          int64       `json:"id"`
	CustomerID  int64       `json:"customerId"`
	Amount      json.Number `json:"amount"`
	EventType   int         `json:"eventType"`
	PaymentDate time.Time   `json:"paymentDate"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   *time.Time  `json:"updatedAt,omitempty"`
	ReversedAt  *time.Time  `json:"reversedAt"`
}

// activityResponse is one row of the recent-transactions feed; the nested
// customer carries the balance the dashboard shows next to the entry.
type activityResponse struct {
	transactionResponse
	Customer activityCustomer `json:"customer"`
}

type activityCustomer struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	CurrentDebt json.Number `json:"currentDebt"`
}

func toCustomerResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toSummaryResponse(s *report.CustomerSummary) summaryResponse {
	return summaryResponse{
		customerResponse: toCustomerResponse(s.Customer),
		TotalDebt:        response.Number(s.TotalDebt),
		TotalPaid:        response.Number(s.TotalPaid),
		CurrentDebt:      response.Number(s.CurrentDebt),
	}
}

func toSummaryList(summaries []*report.CustomerSummary) []summaryResponse {
	resp := make([]summaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = toSummaryResponse(s)
	}

	return resp
}

func toTransactionResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		CustomerID:  tx.CustomerID,
		Amount:      response.Number(tx.Amount),
		EventType:   int(tx.EventType),
		PaymentDate: tx.PaymentDate,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
		ReversedAt:  tx.ReversedAt,
	}
}

func toActivityList(activities []*report.Activity) []activityResponse {
	resp := make([]activityResponse, len(activities))
	for i, a := range activities {
		resp[i] = activityResponse{
			transactionResponse: toTransactionResponse(a.Entry.Transaction),
			Customer: activityCustomer{
				ID:          a.Entry.Transaction.CustomerID,
				Name:        a.Entry.CustomerName,
				CurrentDebt: response.Number(a.CurrentDebt),
			},
		}
	}

	return resp
}
