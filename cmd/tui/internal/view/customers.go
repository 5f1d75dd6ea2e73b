package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/report"
)

type customersState int

const (
	customersStateBrowse customersState = iota
	customersStateCreate
	customersStateEdit
	customersStateDelete
)

type CustomersModel struct {
	CommonModel
	customerService *customer.Service
	reportService   *report.Service

	state     customersState
	table     table.Model
	summaries []*report.CustomerSummary
	form      *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName    string
	formDesc    string
	formAddress string
	formConfirm bool
}

func NewCustomersModel(custSvc *customer.Service, reportSvc *report.Service) CustomersModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Address", Width: 20},
		{Title: "Debt", Width: 10},
		{Title: "Paid", Width: 10},
		{Title: "Balance", Width: 10},
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

	return CustomersModel{
		customerService: custSvc,
		reportService:   reportSvc,
		table:           t,
	}
}

func (m CustomersModel) Title() string { return "Customers" }
func (m CustomersModel) ShortHelp() string {
	if m.state != customersStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | Enter: ledger | a: add | e: edit | x: delete | r: refresh"
}

func (m CustomersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summaries = msg.summaries
		m.err = nil
		m.refreshTable()
		return m, nil

	case customerSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = customersStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case customersStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m CustomersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			if s := m.selected(); s != nil {
				c := s.Customer
				return m, func() tea.Msg { return OpenLedgerMsg{Customer: c} }
			}
			return m, nil
		case "a":
			return m.enterCreateMode()
		case "e":
			return m.enterEditMode()
		case "x":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m CustomersModel) selected() *report.CustomerSummary {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.summaries) {
		return nil
	}
	return m.summaries[idx]
}

func (m CustomersModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formDesc = ""
	m.formAddress = ""
	m.form = m.buildForm("New Customer")
	m.state = customersStateCreate
	m.table.Blur()
	return m, m.form.Init()
}

func (m CustomersModel) enterEditMode() (tea.Model, tea.Cmd) {
	s := m.selected()
	if s == nil {
		return m, nil
	}

	m.formName = s.Customer.Name
	m.formDesc = s.Customer.Description
	m.formAddress = ""
	if s.Customer.Address != nil {
		m.formAddress = *s.Customer.Address
	}

	m.form = m.buildForm("Edit Customer")
	m.state = customersStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m CustomersModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	s := m.selected()
	if s == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %q and all of its transactions?", s.Customer.Name)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = customersStateDelete
	m.table.Blur()
	return m, m.form.Init()
}

func (m CustomersModel) buildForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),

			huh.NewInput().
				Key("address").
				Title("Address").
				Value(&m.formAddress),
		).Title(title),
	).WithWidth(45).WithShowHelp(false)
}

func (m CustomersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = customersStateBrowse
			m.form = nil
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
	case customersStateCreate:
		return m, m.createCmd()
	case customersStateEdit:
		return m, m.editCmd()
	case customersStateDelete:
		if !m.formConfirm {
			m.state = customersStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m CustomersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state != customersStateBrowse && m.form != nil {
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

func (m *CustomersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.summaries))
	for _, s := range m.summaries {
		address := ""
		if s.Customer.Address != nil {
			address = *s.Customer.Address
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(s.Customer.ID, 10),
			s.Customer.Name,
			address,
			FormatAmount(s.TotalDebt),
			FormatAmount(s.TotalPaid),
			FormatAmount(s.CurrentDebt),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadCustomersMsg struct {
	summaries []*report.CustomerSummary
	err       error
}

func (m CustomersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summaries, err := m.reportService.CustomerSummaries(ctx, nil, nil)
		return loadCustomersMsg{summaries: summaries, err: err}
	}
}

type customerSavedMsg struct {
	err error
}

func (m CustomersModel) createCmd() tea.Cmd {
	params := customer.CreateParams{
		Name:        m.formName,
		Description: m.formDesc,
	}
	if strings.TrimSpace(m.formAddress) != "" {
		params.Address = &m.formAddress
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.customerService.Create(ctx, params)
		return customerSavedMsg{err: err}
	}
}

func (m CustomersModel) editCmd() tea.Cmd {
	s := m.selected()
	if s == nil {
		return nil
	}

	id := s.Customer.ID
	name := m.formName
	desc := m.formDesc
	address := m.formAddress

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		params := customer.UpdateParams{
			Name:        &name,
			Description: &desc,
		}
		if strings.TrimSpace(address) != "" {
			params.Address = &address
		}

		_, err := m.customerService.Update(ctx, id, params)
		return customerSavedMsg{err: err}
	}
}

func (m CustomersModel) deleteCmd() tea.Cmd {
	s := m.selected()
	if s == nil {
		return nil
	}

	id := s.Customer.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.customerService.Delete(ctx, id)
		return customerSavedMsg{err: err}
	}
}
