package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/prajwal2403/fintrack/cmd/tui/internal/view"
	"github.com/prajwal2403/fintrack/internal/config"
	"github.com/prajwal2403/fintrack/internal/database"
	"github.com/prajwal2403/fintrack/internal/report"
	"github.com/prajwal2403/fintrack/internal/transaction"
	txStore "github.com/prajwal2403/fintrack/internal/transaction/store"
	"github.com/prajwal2403/fintrack/internal/user"
	userStore "github.com/prajwal2403/fintrack/internal/user/store"
)

type model struct {
	txService     *transaction.Service
	reportService *report.Service

	currentView View

	transactionsView view.TransactionsModel
	reportsView      view.ReportsModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTransactions View = 1
	ViewReports      View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	store := txStore.New(db)
	userSvc := user.NewService(userStore.New(db))
	txSvc := transaction.NewService(store, userSvc)
	reportSvc := report.NewService(userSvc, store)

	return model{
		txService:        txSvc,
		reportService:    reportSvc,
		currentView:      ViewMenu,
		transactionsView: view.NewTransactionsModel(txSvc),
		reportsView:      view.NewReportsModel(reportSvc),
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
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService)

				return m, m.transactionsView.Init()
			case "2":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.reportService)

				return m, m.reportsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Fintrack TUI\n\n" +
				"1. Browse Transactions\n" +
				"2. Spending Reports\n\n" +
				"q. Quit",
		)
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewReports:
		return m.reportsView.View()
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
