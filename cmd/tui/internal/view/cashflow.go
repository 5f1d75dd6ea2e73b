package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliyevq/veresiye/internal/report"
)

const activityFeedSize = 10

type cashflowState int

const (
	cashflowStateTimeframe cashflowState = iota
	cashflowStateLoading
	cashflowStateResult
)

type CashflowModel struct {
	CommonModel
	reportService *report.Service

	state           cashflowState
	timeframePicker TimeframePicker

	startDate time.Time
	endDate   time.Time
	allTime   bool

	totals   report.Report
	activity []*report.Activity
	err      error
}

func NewCashflowModel(reportSvc *report.Service) CashflowModel {
	return CashflowModel{
		reportService:   reportSvc,
		timeframePicker: NewTimeframePicker(),
	}
}

func (m CashflowModel) Title() string { return "Cashflow" }

func (m CashflowModel) ShortHelp() string {
	if m.state == cashflowStateResult {
		return "Esc: back | t: change timeframe"
	}
	return "Esc: back | Enter: select"
}

func (m CashflowModel) Init() tea.Cmd {
	return nil
}

func (m CashflowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.state = cashflowStateLoading

		return m, m.loadCmd()

	case loadCashflowMsg:
		m.state = cashflowStateResult
		m.err = msg.err
		m.totals = msg.totals
		m.activity = msg.activity

		return m, nil
	}

	switch m.state {
	case cashflowStateTimeframe:
		return m.updateTimeframe(msg)
	case cashflowStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m CashflowModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m CashflowModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "t":
			m.state = cashflowStateTimeframe
			m.timeframePicker.Reset()
			return m, nil
		}
	}

	return m, nil
}

func (m CashflowModel) View() string {
	switch m.state {
	case cashflowStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case cashflowStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Crunching numbers...")

	case cashflowStateResult:
		return m.viewResult()
	}

	return ""
}

func (m CashflowModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	rangeLabel := "All Time"
	if !m.allTime {
		rangeLabel = fmt.Sprintf("%s to %s", FormatDate(m.startDate), FormatDate(m.endDate))
	}

	totals := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		Render(fmt.Sprintf(
			"%s\n\nTotal Debt:   %s\nTotal Paid:   %s\nOutstanding:  %s",
			rangeLabel,
			FormatAmount(m.totals.TotalDebt),
			FormatAmount(m.totals.TotalPaid),
			activeStyle(FormatAmount(m.totals.CurrentDebt)),
		))

	feed := lipgloss.NewStyle().Bold(true).Render("Recent Activity") + "\n"
	if len(m.activity) == 0 {
		feed += lipgloss.NewStyle().Faint(true).Render("  Nothing recorded yet.")
	}

	for _, a := range m.activity {
		tx := a.Entry.Transaction
		line := fmt.Sprintf("  %s  %-8s %10s  %s (balance %s)",
			FormatDate(tx.PaymentDate),
			tx.EventType.String(),
			FormatAmount(tx.Amount),
			a.Entry.CustomerName,
			FormatAmount(a.CurrentDebt),
		)
		if tx.Reversed() {
			line = lipgloss.NewStyle().Faint(true).Strikethrough(true).Render(line)
		}
		feed += line + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, totals, "", feed),
	)
}

// Messages

type loadCashflowMsg struct {
	totals   report.Report
	activity []*report.Activity
	err      error
}

func (m CashflowModel) loadCmd() tea.Cmd {
	allTime := m.allTime
	start, end := m.startDate, m.endDate

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var from, to *time.Time
		if !allTime {
			from, to = &start, &end
		}

		totals, err := m.reportService.GlobalCashflow(ctx, from, to)
		if err != nil {
			return loadCashflowMsg{err: err}
		}

		activity, err := m.reportService.RecentActivity(ctx, activityFeedSize)
		if err != nil {
			return loadCashflowMsg{err: err}
		}

		return loadCashflowMsg{totals: totals, activity: activity}
	}
}
