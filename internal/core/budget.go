package core

import "time"

// Budget caps spending for one category in one calendar month. At most
// one budget exists per (owner, category, month, year); setting it again
// replaces the limit.
type Budget struct {
	ID           int64
	OwnerID      int64
	Category     Category
	MonthlyLimit float64
	Month        int
	Year         int
	CreatedAt    time.Time
}

func (b Budget) Validate() error {
	if !ValidBudgetCategory(b.Category) {
		return ErrInvalidCategory
	}
	if b.MonthlyLimit <= 0 {
		return ErrInvalidLimit
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// BudgetStatus compares one budget against the expense spend recorded
// for its category within its month.
type BudgetStatus struct {
	Category   Category
	Limit      float64
	Spent      float64
	Remaining  float64 // may be negative
	Percentage float64
	Exceeded   bool // strictly Spent > Limit
}

// BudgetStatusReport is the status of every budget an owner defined for
// one month. Categories with spend but no budget do not appear.
type BudgetStatusReport struct {
	Month   int
	Year    int
	Budgets []BudgetStatus
}

// BudgetAlert is a status row whose limit was exceeded.
type BudgetAlert struct {
	Category   Category
	Limit      float64
	Spent      float64
	OverBudget float64
	Percentage float64
}
