package core

// Kind is the polarity of a transaction.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Category labels a transaction or budget. Two disjoint closed sets exist,
// one per kind; budgets accept any category from their union.
type Category string

var IncomeCategories = []Category{
	"Salary",
	"Freelance",
	"Investment",
	"Bonus",
	"Other Income",
}

var ExpenseCategories = []Category{
	"Food",
	"Rent",
	"Utilities",
	"Transportation",
	"Entertainment",
	"Healthcare",
	"Education",
	"Shopping",
	"Bills",
	"Other Expense",
}

// CategoriesFor returns the closed category set for a kind.
func CategoriesFor(kind Kind) []Category {
	if kind == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// AllCategories returns the union of both category sets, income first.
func AllCategories() []Category {
	all := make([]Category, 0, len(IncomeCategories)+len(ExpenseCategories))
	all = append(all, IncomeCategories...)
	all = append(all, ExpenseCategories...)
	return all
}

// ValidCategory reports whether c belongs to the category set of kind.
func ValidCategory(kind Kind, c Category) bool {
	for _, known := range CategoriesFor(kind) {
		if c == known {
			return true
		}
	}
	return false
}

// ValidBudgetCategory reports whether c belongs to either category set.
// Budgets are checked against the union, not the expense set alone.
func ValidBudgetCategory(c Category) bool {
	return ValidCategory(Income, c) || ValidCategory(Expense, c)
}
