package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/export"
	"github.com/aliyevq/veresiye/internal/http/query"
	"github.com/aliyevq/veresiye/internal/http/response"
)

type Handler struct {
	svc       *export.Service
	customers *customer.Service
}

func NewHandler(svc *export.Service, customers *customer.Service) *Handler {
	return &Handler{svc: svc, customers: customers}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/statement/{customerID}", h.statement)
}

// statement streams the customer's ledger as a CSV download. Errors found
// before the first byte is written still come back in the JSON envelope.
func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	customerID, ok := query.ID(chi.URLParam(r, "customerID"))
	if !ok {
		response.Fail(w, r, http.StatusBadRequest, "Invalid customer id", nil)
		return
	}

	from, to, err := query.DateRange(r.URL.Query())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	c, err := h.customers.Get(r.Context(), customerID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	filename := export.StatementFilename(c.Name, time.Now())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.svc.WriteStatement(r.Context(), w, customerID, from, to); err != nil {
		// The CSV header may already be out; all we can do is cut the
		// stream short and log.
		slog.Error("failed to write statement", "customer_id", customerID, "error", err)
	}
}
