package models

// Expense is a monetary outlay on a plan.
// Expenses are immutable once created; they can only be deleted.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// PlanID is the plan this expense belongs to.
	PlanID string

	Title string

	// Amount is the positive amount paid, currency-agnostic.
	Amount float64

	// Payer is the member ID of whoever paid.
	Payer string

	// Split maps a member ID to its fractional share of Amount.
	// Shares sum to 1.0 unless the expense was recorded in raw mode.
	Split map[string]float64

	// CreatedBy is the user ID who recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
