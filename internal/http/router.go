package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aliyevq/veresiye/internal/http/customer"
	"github.com/aliyevq/veresiye/internal/http/export"
	"github.com/aliyevq/veresiye/internal/http/importcsv"
	"github.com/aliyevq/veresiye/internal/http/report"
	"github.com/aliyevq/veresiye/internal/http/response"
)

// New mounts every handler under /base-api, the base path the dashboard is
// built against.
func New(
	customersV1 *customer.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(response.TraceID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/base-api", func(r chi.Router) {
		r.Route("/customer", func(r chi.Router) {
			customersV1.Routes(r)
		})

		r.Route("/report", func(r chi.Router) {
			reportsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/export", func(r chi.Router) {
			exportV1.Routes(r)
		})
	})

	return router
}
