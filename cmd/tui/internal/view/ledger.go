package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/ledger"
	"github.com/aliyevq/veresiye/internal/report"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdd
	ledgerStateEdit
	ledgerStateReverse
)

type LedgerModel struct {
	CommonModel
	ledgerService *ledger.Service
	reportService *report.Service

	cust *customer.Customer

	state  ledgerState
	table  table.Model
	rep    *report.CustomerReport
	form   *huh.Form
	target *ledger.Transaction

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount  string
	formDate    string
	formType    ledger.EventType
	formConfirm bool
}

func NewLedgerModel(ledgerSvc *ledger.Service, reportSvc *report.Service, cust *customer.Customer) LedgerModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return LedgerModel{
		ledgerService: ledgerSvc,
		reportService: reportSvc,
		cust:          cust,
		table:         t,
	}
}

func (m LedgerModel) Title() string { return fmt.Sprintf("Ledger: %s", m.cust.Name) }
func (m LedgerModel) ShortHelp() string {
	if m.state != ledgerStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | d: debt | p: payment | e: edit | v: reverse | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLedgerMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rep = msg.rep
		m.err = nil
		m.refreshTable()
		return m, nil

	case ledgerSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = ledgerStateBrowse
		m.form = nil
		m.target = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "d":
			return m.enterAddMode(ledger.EventDebt)
		case "p":
			return m.enterAddMode(ledger.EventPayment)
		case "e":
			return m.enterEditMode()
		case "v":
			return m.enterReverseMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LedgerModel) selected() *ledger.Transaction {
	if m.rep == nil {
		return nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rep.Transactions) {
		return nil
	}
	return m.rep.Transactions[idx]
}

func (m LedgerModel) enterAddMode(eventType ledger.EventType) (tea.Model, tea.Cmd) {
	m.formAmount = ""
	m.formDate = FormatDate(time.Now())
	m.formType = eventType
	m.target = nil

	title := "Add Debt"
	if eventType == ledger.EventPayment {
		title = "Add Payment"
	}

	m.form = m.buildEntryForm(title, false)
	m.state = ledgerStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m LedgerModel) enterEditMode() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}
	if tx.Reversed() {
		m.status = "Reversed entries cannot be edited."
		return m, nil
	}

	m.target = tx
	m.formAmount = FormatAmount(tx.Amount)
	m.formDate = FormatDate(tx.PaymentDate)
	m.formType = tx.EventType

	m.form = m.buildEntryForm("Edit Entry", true)
	m.state = ledgerStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m LedgerModel) enterReverseMode() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}
	if tx.Reversed() {
		m.status = "Entry is already reversed."
		return m, nil
	}

	m.target = tx
	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Reverse %s of %s from %s?",
					tx.EventType, FormatAmount(tx.Amount), FormatDate(tx.PaymentDate))).
				Affirmative("Reverse").
				Negative("Keep").
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = ledgerStateReverse
	m.table.Blur()
	return m, m.form.Init()
}

func (m LedgerModel) buildEntryForm(title string, withType bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("amount").
			Title("Amount").
			Placeholder("0.00").
			Value(&m.formAmount).
			Validate(func(s string) error {
				d, err := decimal.NewFromString(strings.TrimSpace(s))
				if err != nil {
					return fmt.Errorf("invalid amount")
				}
				if !d.IsPositive() {
					return fmt.Errorf("amount must be positive")
				}
				return nil
			}),

		huh.NewInput().
			Key("date").
			Title("Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.formDate).
			Validate(func(s string) error {
				if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
					return fmt.Errorf("invalid date (YYYY-MM-DD)")
				}
				return nil
			}),
	}

	if withType {
		fields = append(fields, huh.NewSelect[ledger.EventType]().
			Key("type").
			Title("Type").
			Options(
				huh.NewOption("Debt", ledger.EventDebt),
				huh.NewOption("Payment", ledger.EventPayment),
			).
			Value(&m.formType))
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).WithWidth(45).WithShowHelp(false)
}

func (m LedgerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ledgerStateBrowse
			m.form = nil
			m.target = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case ledgerStateAdd:
		return m, m.appendCmd()
	case ledgerStateEdit:
		return m, m.editCmd()
	case ledgerStateReverse:
		if !m.formConfirm {
			m.state = ledgerStateBrowse
			m.form = nil
			m.target = nil
			m.table.Focus()
			return m, nil
		}
		return m, m.reverseCmd()
	}

	return m, nil
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := ""
	if m.rep != nil {
		header = fmt.Sprintf(
			"%s  |  Debt: %s  Paid: %s  Balance: %s",
			m.cust.Name,
			FormatAmount(m.rep.TotalDebt),
			FormatAmount(m.rep.TotalPaid),
			activeStyle(FormatAmount(m.rep.CurrentDebt)),
		)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != ledgerStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *LedgerModel) refreshTable() {
	if m.rep == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.rep.Transactions))
	for _, tx := range m.rep.Transactions {
		status := "active"
		if tx.Reversed() {
			status = "reversed"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", tx.ID),
			FormatDate(tx.PaymentDate),
			tx.EventType.String(),
			FormatAmount(tx.Amount),
			status,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadLedgerMsg struct {
	rep *report.CustomerReport
	err error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.reportService.CustomerCashflow(ctx, m.cust.ID, nil, nil)
		return loadLedgerMsg{rep: rep, err: err}
	}
}

type ledgerSavedMsg struct {
	err error
}

func (m LedgerModel) appendCmd() tea.Cmd {
	customerID := m.cust.ID
	eventType := m.formType
	amountStr := m.formAmount
	dateStr := m.formDate

	return func() tea.Msg {
		amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
		if err != nil {
			return ledgerSavedMsg{err: err}
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
		if err != nil {
			return ledgerSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.ledgerService.Append(ctx, ledger.AppendParams{
			CustomerID:  customerID,
			Amount:      amount,
			EventType:   eventType,
			PaymentDate: date,
		})
		return ledgerSavedMsg{err: err}
	}
}

func (m LedgerModel) editCmd() tea.Cmd {
	if m.target == nil {
		return nil
	}

	id := m.target.ID
	eventType := m.formType
	amountStr := m.formAmount
	dateStr := m.formDate

	return func() tea.Msg {
		amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
		if err != nil {
			return ledgerSavedMsg{err: err}
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
		if err != nil {
			return ledgerSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.ledgerService.Edit(ctx, id, ledger.EditParams{
			Amount:      amount,
			EventType:   eventType,
			PaymentDate: date,
		})
		return ledgerSavedMsg{err: err}
	}
}

func (m LedgerModel) reverseCmd() tea.Cmd {
	if m.target == nil {
		return nil
	}

	id := m.target.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return ledgerSavedMsg{err: m.ledgerService.Reverse(ctx, id)}
	}
}
