package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aliyevq/veresiye/internal/customer"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenLedgerMsg asks the root model to drill into a customer's ledger.
type OpenLedgerMsg struct {
	Customer *customer.Customer
}
