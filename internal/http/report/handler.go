package report

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aliyevq/veresiye/internal/http/query"
	"github.com/aliyevq/veresiye/internal/http/response"
	"github.com/aliyevq/veresiye/internal/ledger"
	"github.com/aliyevq/veresiye/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/cashflow", h.customerCashflow)
	r.Get("/total-cashflow", h.totalCashflow)
}

type cashflowResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	Address      *string               `json:"address"`
	TotalPaid    json.Number           `json:"totalPaid"`
	TotalDebt    json.Number           `json:"totalDebt"`
	CurrentDebt  json.Number           `json:"currentDebt"`
	Transactions []transactionResponse `json:"transactions"`
}

type transactionResponse struct {
	ID          int64       `json:"id"`
	Amount      json.Number `json:"amount"`
	EventType   int         `json:"eventType"`
	PaymentDate time.Time   `json:"paymentDate"`
	CreatedAt   time.Time   `json:"createdAt"`
	ReversedAt  *time.Time  `json:"reversedAt"`
}

type totalsResponse struct {
	TotalPaid   json.Number `json:"totalPaid"`
	TotalDebt   json.Number `json:"totalDebt"`
	CurrentDebt json.Number `json:"currentDebt"`
}

func (h *Handler) customerCashflow(w http.ResponseWriter, r *http.Request) {
	customerID, ok := query.ID(r.URL.Query().Get("customerId"))
	if !ok {
		response.Fail(w, r, http.StatusBadRequest, "customerId query parameter is required", nil)
		return
	}

	from, to, err := query.DateRange(r.URL.Query())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	rep, err := h.svc.CustomerCashflow(r.Context(), customerID, from, to)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Operation successful", toCashflowResponse(rep))
}

func (h *Handler) totalCashflow(w http.ResponseWriter, r *http.Request) {
	from, to, err := query.DateRange(r.URL.Query())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	rep, err := h.svc.GlobalCashflow(r.Context(), from, to)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Operation successful", totalsResponse{
		TotalPaid:   response.Number(rep.TotalPaid),
		TotalDebt:   response.Number(rep.TotalDebt),
		CurrentDebt: response.Number(rep.CurrentDebt),
	})
}

func toCashflowResponse(rep *report.CustomerReport) cashflowResponse {
	txs := make([]transactionResponse, len(rep.Transactions))
	for i, tx := range rep.Transactions {
		txs[i] = toTransactionResponse(tx)
	}

	return cashflowResponse{
		ID:           rep.Customer.ID,
		Name:         rep.Customer.Name,
		Description:  rep.Customer.Description,
		Address:      rep.Customer.Address,
		TotalPaid:    response.Number(rep.TotalPaid),
		TotalDebt:    response.Number(rep.TotalDebt),
		CurrentDebt:  response.Number(rep.CurrentDebt),
		Transactions: txs,
	}
}

func toTransactionResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      response.Number(tx.Amount),
		EventType:   int(tx.EventType),
		PaymentDate: tx.PaymentDate,
		CreatedAt:   tx.CreatedAt,
		ReversedAt:  tx.ReversedAt,
	}
}
