package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliyevq/veresiye/internal/customer"
	"github.com/aliyevq/veresiye/internal/export"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateCustomerSelect exportState = iota
	exportStateTimeframe
	exportStatePath
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService   *export.Service
	customerService *customer.Service

	state exportState
	err   error

	customers      []*customer.Customer
	customerCursor int
	selectedCust   *customer.Customer

	timeframePicker TimeframePicker
	startDate       time.Time
	endDate         time.Time
	allTime         bool

	form    *huh.Form
	path    string
	spinner spinner.Model
	summary string
}

func NewExportModel(expSvc *export.Service, custSvc *customer.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService:   expSvc,
		customerService: custSvc,
		state:           exportStateCustomerSelect,
		timeframePicker: NewTimeframePicker(),
		path:            "./statements",
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Export Statement" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}
	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.loadCustomersCmd()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportCustomersMsg:
		if msg.err != nil {
			m.state = exportStateResult
			m.err = msg.err
			return m, nil
		}
		m.customers = msg.customers
		return m, nil

	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.form = m.buildPathForm()
		m.state = exportStatePath
		return m, m.form.Init()
	}

	switch m.state {
	case exportStateCustomerSelect:
		return m.updateCustomerSelect(msg)
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateCustomerSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return m, Back
	case tea.KeyUp:
		if m.customerCursor > 0 {
			m.customerCursor--
		}
	case tea.KeyDown:
		if m.customerCursor < len(m.customers)-1 {
			m.customerCursor++
		}
	case tea.KeyEnter:
		if len(m.customers) == 0 {
			return m, nil
		}
		m.selectedCust = m.customers[m.customerCursor]
		m.state = exportStateTimeframe
		m.timeframePicker.Reset()
		return m, nil
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			m.state = exportStateCustomerSelect
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)
	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.timeframePicker.Reset()
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

	m.state = exportStateExporting
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		if result.err != nil {
			m.err = result.err
		}
		m.summary = result.body
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}
	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./statements").
				Value(&m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateCustomerSelect:
		return m.viewCustomerSelect()

	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing statement...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewCustomerSelect() string {
	if len(m.customers) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No customers yet.\n\n(Esc to go back)")
	}

	s := "Select Customer:\n\n"
	for i, c := range m.customers {
		cursor := " "
		if i == m.customerCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, c.Name)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Statement Written!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.summary,
		),
	)
}

// Messages

type exportCustomersMsg struct {
	customers []*customer.Customer
	err       error
}

func (m ExportModel) loadCustomersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.customerService.List(ctx)
		return exportCustomersMsg{customers: customers, err: err}
	}
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	cust := m.selectedCust
	path := m.path
	allTime := m.allTime
	start, end := m.startDate, m.endDate

	return func() tea.Msg {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return exportResultMsg{err: err}
		}

		filename := filepath.Join(path, export.StatementFilename(cust.Name, time.Now()))

		f, err := os.Create(filename)
		if err != nil {
			return exportResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		var from, to *time.Time
		if !allTime {
			from, to = &start, &end
		}

		if err := m.exportService.WriteStatement(ctx, f, cust.ID, from, to); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{body: fmt.Sprintf("Saved to %s", filename)}
	}
}
