package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/prajwal2403/fintrack/internal/transaction"
)

type txState int

const (
	txStatePick txState = iota
	txStateBrowse
	txStateEdit
)

// TransactionsModel browses one user's transactions. The user is picked by
// email first, then every service call runs through the same ownership
// checks the API uses.
type TransactionsModel struct {
	CommonModel
	txService *transaction.Service

	state txState
	table table.Model
	txs   []*transaction.Transaction

	pickForm *huh.Form
	editForm *huh.Form

	email   string
	loading bool
	err     error
	status  string

	formAmount   string
	formDesc     string
	formCategory string
}

func NewTransactionsModel(txSvc *transaction.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 40},
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

	m := TransactionsModel{
		txService: txSvc,
		table:     t,
		state:     txStatePick,
	}
	m.pickForm = m.newPickForm()

	return m
}

func (m TransactionsModel) newPickForm() *huh.Form {
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

func (m TransactionsModel) Title() string { return "Transactions" }
func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStatePick:
		return "Enter: load | Esc: back"
	case txStateEdit:
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | e: edit | x: delete | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.pickForm.Init()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.state = txStatePick
			m.pickForm = m.newPickForm()
			return m, m.pickForm.Init()
		}
		m.err = nil
		m.txs = msg.txs
		m.state = txStateBrowse
		m.refreshTable()
		return m, nil

	case txMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.note
		}
		m.state = txStateBrowse
		m.editForm = nil
		m.table.Focus()
		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStatePick:
		return m.updatePick(msg)
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m TransactionsModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	return m, m.loadTxsCmd()
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.state = txStatePick
			m.pickForm = m.newPickForm()
			return m, m.pickForm.Init()
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TransactionsModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	m.formAmount = FormatAmount(tx.Amount)
	m.formDesc = ""
	if tx.Description != nil {
		m.formDesc = *tx.Description
	}
	m.formCategory = ""
	if tx.Category != nil {
		m.formCategory = *tx.Category
	}

	m.editForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a valid amount")
					}
					if !d.IsPositive() {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateEdit
	m.table.Blur()
	return m, m.editForm.Init()
}

func (m TransactionsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
			m.editForm = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.editForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.editForm = f
	}

	if m.editForm.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.state == txStatePick {
		body := fmt.Sprintf("Browse Transactions\n\n%s", m.pickForm.View())
		if m.err != nil {
			body = fmt.Sprintf("Error: %v\n\n%s", m.err, body)
		}
		return lipgloss.NewStyle().Padding(2).Render(body)
	}

	header := fmt.Sprintf("Transactions for %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(m.email))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == txStateEdit && m.editForm != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Edit Transaction\n\n%s", m.editForm.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		desc := ""
		if tx.Description != nil {
			desc = *tx.Description
		}
		category := ""
		if tx.Category != nil {
			category = *tx.Category
		}
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			FormatAmount(tx.Amount),
			category,
			desc,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	email := m.email

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, email)
		return loadTxsMsg{txs: txs, err: err}
	}
}

type txMutatedMsg struct {
	note string
	err  error
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	id := m.txs[idx].ID.String()
	email := m.email

	amount, err := decimal.NewFromString(strings.TrimSpace(m.editForm.GetString("amount")))
	if err != nil {
		return func() tea.Msg { return txMutatedMsg{err: err} }
	}

	patch := transaction.Patch{Amount: &amount}
	if desc := strings.TrimSpace(m.editForm.GetString("description")); desc != "" {
		patch.Description = &desc
	}
	if category := strings.TrimSpace(m.editForm.GetString("category")); category != "" {
		patch.Category = &category
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.txService.Update(ctx, id, email, patch); err != nil {
			return txMutatedMsg{err: err}
		}
		return txMutatedMsg{note: "Saved"}
	}
}

func (m TransactionsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	id := m.txs[idx].ID.String()
	email := m.email

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Delete(ctx, id, email); err != nil {
			return txMutatedMsg{err: err}
		}
		return txMutatedMsg{note: "Deleted"}
	}
}
