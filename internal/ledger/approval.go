package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidExpenseStatus = errors.New("the expense status must be one of pending, approved, rejected")
	ErrAmountNotPositive    = errors.New("the expense amount must be positive")
)

// SpentFor sums the amounts of all approved expenses explicitly linked to the budget.
//
// Expenses without a budget ID are never included, even when their category
// matches. See Health for the category fallback used for display.
func SpentFor(budgetID uuid.UUID, expenses []Expense) decimal.Decimal {
	spent := decimal.Zero
	for _, e := range expenses {
		if e.Approved() && e.LinkedTo(budgetID) {
			spent = spent.Add(e.Amount)
		}
	}
	return spent
}

// Transition moves the expense into the target status.
//
// Re-transitions between approved and rejected are allowed and are not
// idempotent: callers must re-run aggregation for every transition.
func Transition(e Expense, to ExpenseStatus, actor Actor) (Expense, error) {
	if !to.Valid() {
		return e, fmt.Errorf("%w: %q", ErrInvalidExpenseStatus, to)
	}

	e.Status = to
	switch to {
	case ExpenseApproved, ExpenseRejected:
		e.ApprovedBy = actor.Label()
	case ExpensePending:
		e.ApprovedBy = ""
	}

	return e, nil
}

// AffectedBudgets returns the IDs of the budgets that must be recalculated after an
// expense changed from before to after. The old budget comes first so that its stale
// contribution is backed out before the new one is added.
//
// Use the zero Expense for before on creation and for after on deletion.
func AffectedBudgets(before, after Expense) []uuid.UUID {
	if !before.Approved() && !after.Approved() {
		return nil
	}

	changed := before.Status != after.Status ||
		!sameBudget(before.BudgetID, after.BudgetID) ||
		!before.Amount.Equal(after.Amount)
	if !changed {
		return nil
	}

	var ids []uuid.UUID
	if before.BudgetID != nil {
		ids = append(ids, *before.BudgetID)
	}

	if after.BudgetID != nil && !sameBudget(before.BudgetID, after.BudgetID) {
		ids = append(ids, *after.BudgetID)
	}

	return ids
}

func sameBudget(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
