package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/aliyevq/veresiye/cmd/tui/internal/view"
	"github.com/aliyevq/veresiye/internal/config"
	"github.com/aliyevq/veresiye/internal/customer"
	customerStore "github.com/aliyevq/veresiye/internal/customer/store"
	"github.com/aliyevq/veresiye/internal/database"
	"github.com/aliyevq/veresiye/internal/export"
	"github.com/aliyevq/veresiye/internal/importer"
	"github.com/aliyevq/veresiye/internal/importer/notebook"
	"github.com/aliyevq/veresiye/internal/ledger"
	ledgerStore "github.com/aliyevq/veresiye/internal/ledger/store"
	"github.com/aliyevq/veresiye/internal/report"
)

type model struct {
	customerService *customer.Service
	ledgerService   *ledger.Service
	reportService   *report.Service
	importService   *importer.Service
	exportService   *export.Service

	currentView View

	customersView view.CustomersModel
	ledgerView    view.LedgerModel
	cashflowView  view.CashflowModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewCustomers View = 1
	ViewLedger    View = 2
	ViewCashflow  View = 3
	ViewImport    View = 4
	ViewExport    View = 5
)

func initialModel() model {
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

	customers := customerStore.New(db)
	entries := ledgerStore.New(db)

	custSvc := customer.NewService(customers)
	ledgerSvc := ledger.NewService(entries, customers)
	reportSvc := report.NewService(entries, customers)
	expSvc := export.NewService(reportSvc)
	impSvc := importer.NewService(custSvc, ledgerSvc, map[importer.Format]importer.Parser{
		importer.FormatNotebook: notebook.NewParser(),
	})

	return model{
		customerService: custSvc,
		ledgerService:   ledgerSvc,
		reportService:   reportSvc,
		importService:   impSvc,
		exportService:   expSvc,
		currentView:     ViewMenu,
		customersView:   view.NewCustomersModel(custSvc, reportSvc),
		cashflowView:    view.NewCashflowModel(reportSvc),
		importView:      view.NewImportModel(impSvc),
		exportView:      view.NewExportModel(expSvc, custSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.customerService, m.reportService)

				return m, m.customersView.Init()
			case "2":
				m.currentView = ViewCashflow
				m.cashflowView = view.NewCashflowModel(m.reportService)

				return m, m.cashflowView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.customerService)

				return m, m.exportView.Init()
			}
		}
	case view.OpenLedgerMsg:
		m.currentView = ViewLedger
		m.ledgerView = view.NewLedgerModel(m.ledgerService, m.reportService, msg.Customer)

		return m, m.ledgerView.Init()
	case view.BackMsg:
		// Leaving a ledger returns to the customer list, not the menu.
		if m.currentView == ViewLedger {
			m.currentView = ViewCustomers
			return m, m.customersView.Init()
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewCashflow:
		var newModel tea.Model
		newModel, cmd = m.cashflowView.Update(msg)
		m.cashflowView = newModel.(view.CashflowModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Veresiye TUI\n\n" +
				"1. Customers\n" +
				"2. Cashflow\n" +
				"3. Import Notebook\n" +
				"4. Export Statement\n\n" +
				"q. Quit",
		)
	case ViewCustomers:
		return m.customersView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewCashflow:
		return m.cashflowView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
