package core

import (
	"errors"
	"time"
)

var (
	ErrInvalidKind     = errors.New("kind must be income or expense")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAmount   = errors.New("amount must be greater than 0")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrInvalidLimit    = errors.New("monthly limit must be greater than 0")
	ErrNoFields        = errors.New("no fields to update")

	// ErrNotFound covers both a missing row and a row owned by someone
	// else, so callers cannot distinguish existence from ownership.
	ErrNotFound = errors.New("not found or access denied")
)

// Transaction is a single income or expense entry. Amounts are plain
// float64; rounding happens only at display time.
type Transaction struct {
	ID        int64
	OwnerID   int64
	Kind      Kind
	Category  Category
	Amount    float64
	Note      string
	Date      time.Time // calendar date, no time-of-day
	CreatedAt time.Time
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !ValidCategory(t.Kind, t.Category) {
		return ErrInvalidCategory
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// TransactionUpdate is a partial-field update. Nil fields are left
// untouched; the update is rejected when every field is nil.
type TransactionUpdate struct {
	Kind     *Kind
	Category *Category
	Amount   *float64
	Note     *string
	Date     *time.Time
}

// Empty reports whether no field is set.
func (u TransactionUpdate) Empty() bool {
	return u.Kind == nil && u.Category == nil && u.Amount == nil && u.Note == nil && u.Date == nil
}

// Validate checks the update merged over the current row. The
// effective category must belong to the effective kind, so changing
// one without the other is rejected when the pair no longer matches.
func (u TransactionUpdate) Validate(current Transaction) error {
	if u.Empty() {
		return ErrNoFields
	}
	kind := current.Kind
	if u.Kind != nil {
		if !u.Kind.Valid() {
			return ErrInvalidKind
		}
		kind = *u.Kind
	}
	category := current.Category
	if u.Category != nil {
		category = *u.Category
	}
	if !ValidCategory(kind, category) {
		return ErrInvalidCategory
	}
	if u.Amount != nil && *u.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MonthWindow returns the inclusive [first day, last day] window of a
// calendar month. December rolls over to January of the following year.
func MonthWindow(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}
