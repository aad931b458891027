package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/prajwal2403/fintrack/internal/report"
)

type reportKind int

const (
	reportMonthly reportKind = iota
	reportCategory
	reportRecent
)

type reportState int

const (
	reportStatePick reportState = iota
	reportStateShow
)

// ReportsModel shows the three spending aggregations for one user,
// switchable with a single keypress.
type ReportsModel struct {
	CommonModel
	reportService *report.Service

	state    reportState
	kind     reportKind
	table    table.Model
	pickForm *huh.Form

	email   string
	loading bool
	err     error
}

func NewReportsModel(reportSvc *report.Service) ReportsModel {
	t := table.New(
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

	m := ReportsModel{
		reportService: reportSvc,
		table:         t,
		state:         reportStatePick,
	}
	m.pickForm = m.newPickForm()

	return m
}

func (m ReportsModel) newPickForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("User email").
				Placeholder("someone@example.com").
				Value(&m.email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ReportsModel) Title() string { return "Reports" }
func (m ReportsModel) ShortHelp() string {
	if m.state == reportStatePick {
		return "Enter: load | Esc: back"
	}
	return "Esc: back | m: monthly | c: category | d: recent daily"
}

func (m ReportsModel) Init() tea.Cmd {
	return m.pickForm.Init()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.state = reportStatePick
			m.pickForm = m.newPickForm()
			return m, m.pickForm.Init()
		}
		m.err = nil
		m.state = reportStateShow
		m.table.SetColumns(msg.columns)
		m.table.SetRows(msg.rows)
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case reportStatePick:
		return m.updatePick(msg)
	case reportStateShow:
		return m.updateShow(msg)
	}

	return m, nil
}

func (m ReportsModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.pickForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.pickForm = f
	}

	if m.pickForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.email = m.pickForm.GetString("email")
	m.loading = true

	return m, m.loadCmd()
}

func (m ReportsModel) updateShow(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.state = reportStatePick
			m.pickForm = m.newPickForm()
			return m, m.pickForm.Init()
		case "m":
			m.kind = reportMonthly
			m.loading = true
			return m, m.loadCmd()
		case "c":
			m.kind = reportCategory
			m.loading = true
			return m, m.loadCmd()
		case "d":
			m.kind = reportRecent
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReportsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading report...")
	}

	if m.state == reportStatePick {
		body := fmt.Sprintf("Spending Reports\n\n%s", m.pickForm.View())
		if m.err != nil {
			body = fmt.Sprintf("Error: %v\n\n%s", m.err, body)
		}
		return lipgloss.NewStyle().Padding(2).Render(body)
	}

	titles := map[reportKind]string{
		reportMonthly:  "Monthly Expenses",
		reportCategory: "Spending by Category",
		reportRecent:   "Recent Daily Spending",
	}

	header := fmt.Sprintf("%s — %s",
		titles[m.kind],
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.email))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
		),
	)
}

// Messages

type reportLoadedMsg struct {
	columns []table.Column
	rows    []table.Row
	err     error
}

func (m ReportsModel) loadCmd() tea.Cmd {
	kind := m.kind
	email := m.email
	svc := m.reportService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch kind {
		case reportCategory:
			totals, err := svc.ByCategory(ctx, email)
			if err != nil {
				return reportLoadedMsg{err: err}
			}
			rows := make([]table.Row, 0, len(totals))
			for _, t := range totals {
				category := t.Category
				if category == "" {
					category = "(uncategorized)"
				}
				rows = append(rows, table.Row{category, FormatAmount(t.Total), fmt.Sprintf("%d", t.Count)})
			}
			return reportLoadedMsg{
				columns: []table.Column{
					{Title: "Category", Width: 24},
					{Title: "Total", Width: 14},
					{Title: "Count", Width: 8},
				},
				rows: rows,
			}

		case reportRecent:
			totals, err := svc.RecentDaily(ctx, email, report.DefaultRecentDays)
			if err != nil {
				return reportLoadedMsg{err: err}
			}
			rows := make([]table.Row, 0, len(totals))
			for _, t := range totals {
				rows = append(rows, table.Row{t.Date, FormatAmount(t.Amount)})
			}
			return reportLoadedMsg{
				columns: []table.Column{
					{Title: "Date", Width: 14},
					{Title: "Amount", Width: 14},
				},
				rows: rows,
			}

		default:
			totals, err := svc.Monthly(ctx, email)
			if err != nil {
				return reportLoadedMsg{err: err}
			}
			rows := make([]table.Row, 0, len(totals))
			for _, t := range totals {
				rows = append(rows, table.Row{t.Month, FormatAmount(t.Total)})
			}
			return reportLoadedMsg{
				columns: []table.Column{
					{Title: "Month", Width: 14},
					{Title: "Total", Width: 14},
				},
				rows: rows,
			}
		}
	}
}
