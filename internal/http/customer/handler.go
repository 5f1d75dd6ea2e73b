package customer

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/http/query"
	"github.com/aliyevq/veresiye/internal/http/response"
	"github.com/aliyevq/veresiye/internal/ledger"
	"github.com/aliyevq/veresiye/internal/report"
)

const recentLimit = 10

type Handler struct {
	customers *customer.Service
	entries   *ledger.Service
	reports   *report.Service
	validate  *validator.Validate
}

func NewHandler(customers *customer.Service, entries *ledger.Service, reports *report.Service) *Handler {
	return &Handler{
		customers: customers,
		entries:   entries,
		reports:   reports,
		validate:  validator.New(),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/recent-transactions", h.recentTransactions)
	r.Put("/update-debt/{transactionID}", h.editTransaction)
	r.Delete("/update-debt/{transactionID}", h.reverseTransaction)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/transactions", h.addTransaction)
}

// list returns every customer with totals derived over the optional range.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	from, to, err := query.DateRange(r.URL.Query())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	summaries, err := h.reports.CustomerSummaries(r.Context(), from, to)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Operation successful", toSummaryList(summaries))
}

type createRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Address     *string `json:"address"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Invalid request body", []string{err.Error()})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Invalid request body", response.ValidationMessages(err))
		return
	}

	c, err := h.customers.Create(r.Context(), customer.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusCreated, "Customer added successfully", toCustomerResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := query.ID(chi.URLParam(r, "id"))
	if !ok {
		response.Fail(w, r, http.StatusBadRequest, "Invalid customer id", nil)
		return
	}

	c, err := h.customers.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Operation successful", toCustomerResponse(c))
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := query.ID(chi.URLParam(r, "id"))
	if !ok {
		response.Fail(w, r, http.StatusBadRequest, "Invalid customer id", nil)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Invalid request body", []string{err.Error()})
		return
	}

	c, err := h.customers.Update(r.Context(), id, customer.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Customer updated successfully", toCustomerResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := query.ID(chi.URLParam(r, "id"))
	if !ok {
		response.Fail(w, r, http.StatusBadRequest, "Invalid customer id", nil)
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Customer deleted successfully", nil)
}

type addTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	EventType   *int            `json:"eventType" validate:"required,oneof=0 1"`
	PaymentDate *time.Time      `json:"paymentDate"`
}

// addTransaction records a debt or payment for the customer. A missing
// paymentDate means "now"; a past date back-dates the entry.
func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := query.ID(chi.URLParam(r, "id"))
	if !ok {
		response.Fail(w, r, http.StatusBadRequest, "Invalid customer id", nil)
		return
	}

	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Invalid request body", []string{err.Error()})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Invalid request body", response.ValidationMessages(err))
		return
	}

	paymentDate := time.Now().UTC()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	tx, err := h.entries.Append(r.Context(), ledger.AppendParams{
		CustomerID:  id,
		Amount:      req.Amount,
		EventType:   ledger.EventType(*req.EventType),
		PaymentDate: paymentDate,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusCreated, "Transaction added successfully", toTransactionResponse(tx))
}

type editTransactionRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	EventType *int            `json:"eventType" validate:"required,oneof=0 1"`
	// The edit form historically sends debtDate; paymentDate wins when both
	// are present.
	PaymentDate *time.Time `json:"paymentDate"`
	DebtDate    *time.Time `json:"debtDate"`
}

func (h *Handler) editTransaction(w http.ResponseWriter, r *http.Request) {
	txID, ok := query.ID(chi.URLParam(r, "transactionID"))
	if !ok {
		response.Fail(w, r, http.StatusBadRequest, "Invalid transaction id", nil)
		return
	}

	var req editTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Invalid request body", []string{err.Error()})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "Invalid request body", response.ValidationMessages(err))
		return
	}

	paymentDate := time.Now().UTC()

	switch {
	case req.PaymentDate != nil:
		paymentDate = *req.PaymentDate
	case req.DebtDate != nil:
		paymentDate = *req.DebtDate
	}

	tx, err := h.entries.Edit(r.Context(), txID, ledger.EditParams{
		Amount:      req.Amount,
		EventType:   ledger.EventType(*req.EventType),
		PaymentDate: paymentDate,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Transaction updated successfully", toTransactionResponse(tx))
}

// reverseTransaction tombstones the entry; the row survives for audit and
// drops out of every total.
func (h *Handler) reverseTransaction(w http.ResponseWriter, r *http.Request) {
	txID, ok := query.ID(chi.URLParam(r, "transactionID"))
	if !ok {
		response.Fail(w, r, http.StatusBadRequest, "Invalid transaction id", nil)
		return
	}

	if err := h.entries.Reverse(r.Context(), txID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Transaction reversed successfully", nil)
}

func (h *Handler) recentTransactions(w http.ResponseWriter, r *http.Request) {
	activities, err := h.reports.RecentActivity(r.Context(), recentLimit)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, "Operation successful", toActivityList(activities))
}
