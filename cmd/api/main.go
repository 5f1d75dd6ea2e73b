package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/aliyevq/veresiye/internal/config"
	"github.com/aliyevq/veresiye/internal/customer"
	customerStore "github.com/aliyevq/veresiye/internal/customer/store"
	"github.com/aliyevq/veresiye/internal/database"
	"github.com/aliyevq/veresiye/internal/export"
	veresiyeHttp "github.com/aliyevq/veresiye/internal/http"
	customerHandler "github.com/aliyevq/veresiye/internal/http/customer"
	exportHandler "github.com/aliyevq/veresiye/internal/http/export"
	importHandler "github.com/aliyevq/veresiye/internal/http/importcsv"
	reportHandler "github.com/aliyevq/veresiye/internal/http/report"
	"github.com/aliyevq/veresiye/internal/importer"
	"github.com/aliyevq/veresiye/internal/importer/notebook"
	"github.com/aliyevq/veresiye/internal/ledger"
	ledgerStore "github.com/aliyevq/veresiye/internal/ledger/store"
	"github.com/aliyevq/veresiye/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		customers = customerStore.New(db)
		entries   = ledgerStore.New(db)

		customerService = customer.NewService(customers)
		ledgerService   = ledger.NewService(entries, customers)
		reportService   = report.NewService(entries, customers)
		exportService   = export.NewService(reportService)
		importService   = importer.NewService(customerService, ledgerService, map[importer.Format]importer.Parser{
			importer.FormatNotebook: notebook.NewParser(),
		})
	)

	var (
		customerH = customerHandler.NewHandler(customerService, ledgerService, reportService)
		reportH   = reportHandler.NewHandler(reportService)
		importH   = importHandler.NewHandler(importService)
		exportH   = exportHandler.NewHandler(exportService, customerService)
	)

	router := veresiyeHttp.New(customerH, reportH, importH, exportH, cfg.AllowedOrigins())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
