package core

import (
	"errors"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Kind:     Expense,
		Category: "Food",
		Amount:   12.50,
		Date:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"bad kind", Transaction{Kind: "transfer", Category: "Food", Amount: 1}, ErrInvalidKind},
		{"income category on expense", Transaction{Kind: Expense, Category: "Salary", Amount: 1}, ErrInvalidCategory},
		{"expense category on income", Transaction{Kind: Income, Category: "Rent", Amount: 1}, ErrInvalidCategory},
		{"unknown category", Transaction{Kind: Expense, Category: "Yachts", Amount: 1}, ErrInvalidCategory},
		{"zero amount", Transaction{Kind: Income, Category: "Salary", Amount: 0}, ErrInvalidAmount},
		{"negative amount", Transaction{Kind: Income, Category: "Salary", Amount: -5}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestTransactionUpdateValidate(t *testing.T) {
	row := Transaction{Kind: Expense, Category: "Food", Amount: 20}
	kind := Income
	cat := Category("Salary")
	amount := 100.0

	if err := (TransactionUpdate{}).Validate(row); !errors.Is(err, ErrNoFields) {
		t.Fatalf("empty update: got %v, want %v", err, ErrNoFields)
	}

	// Kind and category changed together are checked as a pair.
	upd := TransactionUpdate{Kind: &kind, Category: &cat}
	if err := upd.Validate(row); err != nil {
		t.Fatalf("kind+category update: expected ok, got %v", err)
	}

	// Category alone is checked against the row's kind.
	if err := (TransactionUpdate{Category: &cat}).Validate(row); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected %v for income category on expense row", ErrInvalidCategory)
	}

	// Kind alone is checked against the row's category, so flipping
	// the kind without re-picking a category cannot mismatch them.
	if err := (TransactionUpdate{Kind: &kind}).Validate(row); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected %v for kind-only flip leaving expense category", ErrInvalidCategory)
	}

	bad := -1.0
	if err := (TransactionUpdate{Amount: &bad}).Validate(row); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected %v for negative amount", ErrInvalidAmount)
	}
	if err := (TransactionUpdate{Amount: &amount}).Validate(row); err != nil {
		t.Fatalf("amount-only update: expected ok, got %v", err)
	}
}

func TestMonthWindow(t *testing.T) {
	cases := []struct {
		year, month int
		wantStart   string
		wantEnd     string
	}{
		{2024, 6, "2024-06-01", "2024-06-30"},
		{2024, 2, "2024-02-01", "2024-02-29"}, // leap year
		{2023, 2, "2023-02-01", "2023-02-28"},
		{2024, 12, "2024-12-01", "2024-12-31"}, // December rolls into next year
		{2024, 1, "2024-01-01", "2024-01-31"},
	}
	for _, tc := range cases {
		start, end := MonthWindow(tc.year, tc.month)
		if got := start.Format("2006-01-02"); got != tc.wantStart {
			t.Errorf("MonthWindow(%d, %d) start = %s, want %s", tc.year, tc.month, got, tc.wantStart)
		}
		if got := end.Format("2006-01-02"); got != tc.wantEnd {
			t.Errorf("MonthWindow(%d, %d) end = %s, want %s", tc.year, tc.month, got, tc.wantEnd)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Category: "Food", MonthlyLimit: 500, Month: 6, Year: 2024}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Budgets accept income categories too: validation runs against the
	// union of both sets.
	incomeCat := Budget{Category: "Salary", MonthlyLimit: 500, Month: 6, Year: 2024}
	if err := incomeCat.Validate(); err != nil {
		t.Fatalf("income category budget: expected ok, got %v", err)
	}

	cases := []struct {
		name string
		b    Budget
		want error
	}{
		{"unknown category", Budget{Category: "Yachts", MonthlyLimit: 1, Month: 1, Year: 2024}, ErrInvalidCategory},
		{"zero limit", Budget{Category: "Food", MonthlyLimit: 0, Month: 1, Year: 2024}, ErrInvalidLimit},
		{"month zero", Budget{Category: "Food", MonthlyLimit: 1, Month: 0, Year: 2024}, ErrInvalidMonth},
		{"month thirteen", Budget{Category: "Food", MonthlyLimit: 1, Month: 13, Year: 2024}, ErrInvalidMonth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.b.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCategorySets(t *testing.T) {
	if got := len(AllCategories()); got != len(IncomeCategories)+len(ExpenseCategories) {
		t.Fatalf("AllCategories() length = %d", got)
	}
	for _, c := range IncomeCategories {
		if ValidCategory(Expense, c) {
			t.Errorf("income category %q accepted for expense kind", c)
		}
		if !ValidBudgetCategory(c) {
			t.Errorf("income category %q rejected for budgets", c)
		}
	}
}
