package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prajwal2403/fintrack/internal/transaction"
	"github.com/prajwal2403/fintrack/internal/user"
)

const (
	// DefaultRecentDays bounds the recent-spending window when the caller
	// does not supply one.
	DefaultRecentDays = 30

	// monthlyCap limits the monthly report to the first twelve groups.
	monthlyCap = 12
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// MonthlyTotal is one month's summed spending.
type MonthlyTotal struct {
	Month string
	Total decimal.Decimal
}

// CategoryTotal is one category's summed spending and transaction count.
// The uncategorized group carries an empty Category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// DailyTotal is one calendar day's summed spending.
type DailyTotal struct {
	Date   string
	Amount decimal.Decimal
}

// UserDirectory resolves report owners. Satisfied by user.Service.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// TransactionSource lists one user's transactions. Satisfied by the
// transaction store.
type TransactionSource interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error)
}

// Service computes grouped aggregations over a single user's transactions.
// All sums accumulate in decimals; amounts never pass through float64.
type Service struct {
	users UserDirectory
	txs   TransactionSource
}

func NewService(users UserDirectory, txs TransactionSource) *Service {
	return &Service{users: users, txs: txs}
}

func (s *Service) listForOwner(ctx context.Context, ownerEmail string) ([]*transaction.Transaction, error) {
	owner, err := s.users.FindByEmail(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	return s.txs.ListByUser(ctx, owner.ID)
}

// Monthly groups the owner's transactions by calendar month, ascending,
// capped at twelve groups.
func (s *Service) Monthly(ctx context.Context, ownerEmail string) ([]MonthlyTotal, error) {
	txs, err := s.listForOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		month := tx.Date.Format(monthLayout)
		totals[month] = totals[month].Add(tx.Amount)
	}

	months := sortedKeys(totals)
	if len(months) > monthlyCap {
		months = months[:monthlyCap]
	}

	result := make([]MonthlyTotal, len(months))
	for i, month := range months {
		result[i] = MonthlyTotal{Month: month, Total: totals[month]}
	}

	return result, nil
}

// ByCategory groups by category, including the uncategorized group, sorted
// by total descending. Ties break on the label for a deterministic order.
func (s *Service) ByCategory(ctx context.Context, ownerEmail string) ([]CategoryTotal, error) {
	txs, err := s.listForOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)

	for _, tx := range txs {
		var category string
		if tx.Category != nil {
			category = *tx.Category
		}

		totals[category] = totals[category].Add(tx.Amount)
		counts[category]++
	}

	result := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, CategoryTotal{
			Category: category,
			Total:    total,
			Count:    counts[category],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}

		return result[i].Category < result[j].Category
	})

	return result, nil
}

// RecentDaily sums spending per calendar day over the trailing window,
// ascending by day.
func (s *Service) RecentDaily(ctx context.Context, ownerEmail string, days int) ([]DailyTotal, error) {
	if days <= 0 {
		days = DefaultRecentDays
	}

	txs, err := s.listForOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Date.Before(cutoff) {
			continue
		}

		day := tx.Date.Format(dayLayout)
		totals[day] = totals[day].Add(tx.Amount)
	}

	ordered := sortedKeys(totals)

	result := make([]DailyTotal, len(ordered))
	for i, day := range ordered {
		result[i] = DailyTotal{Date: day, Amount: totals[day]}
	}

	return result, nil
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
