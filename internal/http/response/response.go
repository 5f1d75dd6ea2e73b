// Package response implements the envelope every JSON endpoint wraps its
// payload in:
//
//	{ "success": bool, "message": string, "data": T|null,
//	  "errors": [string]|null, "statusCode": int, "traceId": string }
//
// Service errors are classified here so no error kind ever leaks to the
// dashboard as an unhandled fault.
package response

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aliyevq/veresiye/internal/apperr"
)

type Envelope struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Data       any      `json:"data"`
	Errors     []string `json:"errors"`
	StatusCode int      `json:"statusCode"`
	TraceID    string   `json:"traceId"`
}

type ctxKey struct{}

// TraceID is chi-style middleware that tags every request with a uuid, echoed
// back in the envelope so dashboard reports can be matched to server logs.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ctxKey{}, uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func traceID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}

	return ""
}

// OK writes a success envelope with the given status and payload.
func OK(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	write(w, r, Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		StatusCode: status,
	})
}

// Fail writes a failure envelope.
func Fail(w http.ResponseWriter, r *http.Request, status int, message string, errs []string) {
	write(w, r, Envelope{
		Message:    message,
		Errors:     errs,
		StatusCode: status,
	})
}

// Error classifies a service error and writes the matching failure envelope.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		Fail(w, r, http.StatusBadRequest, "Invalid request", []string{err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		Fail(w, r, http.StatusNotFound, "Resource not found", []string{err.Error()})
	case errors.Is(err, apperr.ErrAlreadyReversed), errors.Is(err, apperr.ErrConflict):
		Fail(w, r, http.StatusConflict, "Conflict", []string{err.Error()})
	default:
		slog.Error("unhandled service error", "error", err, "trace_id", traceID(r.Context()))
		Fail(w, r, http.StatusInternalServerError, "Internal error", nil)
	}
}

// ValidationMessages flattens a validator.ValidationErrors into the
// envelope's errors list.
func ValidationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Error())
	}

	return msgs
}

// Number renders a decimal as a bare JSON number, which is what the dashboard
// expects for every monetary field.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func write(w http.ResponseWriter, r *http.Request, env Envelope) {
	env.TraceID = traceID(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
