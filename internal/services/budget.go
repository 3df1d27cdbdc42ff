package services

import (
	"context"
	"fmt"

	"finman/internal/core"
	"finman/internal/log"
	"finman/internal/storage"
)

// BudgetService sets monthly category limits and evaluates recorded
// spend against them.
type BudgetService struct {
	store  *storage.Store
	logger *log.Logger
}

func NewBudgetService(store *storage.Store) *BudgetService {
	return &BudgetService{store: store, logger: log.ForComponent(log.ComponentBudget)}
}

// Set creates or replaces the budget for (category, month, year) and
// reports whether a new budget was created.
func (s *BudgetService) Set(ctx context.Context, ownerID int64, category core.Category, limit float64, month, year int) (bool, error) {
	b := core.Budget{
		OwnerID:      ownerID,
		Category:     category,
		MonthlyLimit: limit,
		Month:        month,
		Year:         year,
	}
	if err := b.Validate(); err != nil {
		return false, err
	}

	created, err := s.store.UpsertBudget(ctx, b)
	if err != nil {
		return false, fmt.Errorf("set budget: %w", err)
	}
	return created, nil
}

// Get returns the budget for one (category, month, year) key.
func (s *BudgetService) Get(ctx context.Context, ownerID int64, category core.Category, month, year int) (core.Budget, error) {
	return s.store.GetBudget(ctx, ownerID, category, month, year)
}

// CheckStatus evaluates every budget the owner defined for the month.
// Spend counts expense-kind entries for the budget's category within
// the calendar month; a budget with no matching spend still appears
// with Spent 0. Spend in categories without a budget is not reported.
func (s *BudgetService) CheckStatus(ctx context.Context, ownerID int64, month, year int) (core.BudgetStatusReport, error) {
	report := core.BudgetStatusReport{Month: month, Year: year, Budgets: []core.BudgetStatus{}}
	if month < 1 || month > 12 {
		return report, core.ErrInvalidMonth
	}

	budgets, err := s.store.QueryBudgets(ctx, ownerID, month, year)
	if err != nil {
		return report, fmt.Errorf("check budget status: %w", err)
	}

	start, end := core.MonthWindow(year, month)
	expense := core.Expense

	for _, b := range budgets {
		category := b.Category
		txs, err := s.store.QueryTransactions(ctx, ownerID, storage.TransactionFilter{
			From:     &start,
			To:       &end,
			Category: &category,
			Kind:     &expense,
		})
		if err != nil {
			return report, fmt.Errorf("spend for %s: %w", category, err)
		}

		var spent float64
		for _, t := range txs {
			spent += t.Amount
		}

		percentage := 0.0
		if b.MonthlyLimit > 0 {
			percentage = spent / b.MonthlyLimit * 100
		}

		report.Budgets = append(report.Budgets, core.BudgetStatus{
			Category:   category,
			Limit:      b.MonthlyLimit,
			Spent:      spent,
			Remaining:  b.MonthlyLimit - spent,
			Percentage: percentage,
			Exceeded:   spent > b.MonthlyLimit,
		})
	}

	s.logger.DebugContext(ctx, "Budget status evaluated",
		log.FieldOwner, ownerID,
		log.FieldMonth, month,
		log.FieldYear, year,
		"budgets", len(report.Budgets))

	return report, nil
}

// Alerts filters CheckStatus down to the exceeded budgets.
func (s *BudgetService) Alerts(ctx context.Context, ownerID int64, month, year int) ([]core.BudgetAlert, error) {
	status, err := s.CheckStatus(ctx, ownerID, month, year)
	if err != nil {
		return nil, err
	}

	alerts := []core.BudgetAlert{}
	for _, b := range status.Budgets {
		if !b.Exceeded {
			continue
		}
		alerts = append(alerts, core.BudgetAlert{
			Category:   b.Category,
			Limit:      b.Limit,
			Spent:      b.Spent,
			OverBudget: b.Spent - b.Limit,
			Percentage: b.Percentage,
		})
	}
	return alerts, nil
}
