package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetNotFound   = errors.New("there is no budget matching your query")
	ErrExpenseNotFound  = errors.New("there is no expense matching your query")
	ErrCategoryNotFound = errors.New("there is no category matching your query")
)

// Book is an in-memory set of entities that applies the same rules as the server.
//
// It is not safe for concurrent use.
type Book struct {
	Budgets      []Budget      `json:"budgets"`
	Expenses     []Expense     `json:"expenses"`
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
}

// BudgetPatch contains the client editable fields of a budget. Nil fields are not changed.
type BudgetPatch struct {
	Name      *string
	Category  *string
	Allocated *decimal.Decimal
	Period    *Period
}

// ExpensePatch contains the editable fields of an expense. Nil fields are not changed.
type ExpensePatch struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	BudgetID    **uuid.UUID // set to a pointer to nil to unlink the expense
	Date        *time.Time
	Vendor      *string
	Department  *string
	Status      *ExpenseStatus
	Tags        *[]string
}

func (b *Book) budgetIndex(id uuid.UUID) int {
	for i := range b.Budgets {
		if b.Budgets[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Book) expenseIndex(id uuid.UUID) int {
	for i := range b.Expenses {
		if b.Expenses[i].ID == id {
			return i
		}
	}
	return -1
}

// Budget returns the budget with the given ID.
func (b *Book) Budget(id uuid.UUID) (Budget, error) {
	i := b.budgetIndex(id)
	if i < 0 {
		return Budget{}, ErrBudgetNotFound
	}
	return b.Budgets[i], nil
}

// Expense returns the expense with the given ID.
func (b *Book) Expense(id uuid.UUID) (Expense, error) {
	i := b.expenseIndex(id)
	if i < 0 {
		return Expense{}, ErrExpenseNotFound
	}
	return b.Expenses[i], nil
}

// recalculate recomputes spent, remaining and status of one budget.
// A budget that does not exist is skipped.
func (b *Book) recalculate(id uuid.UUID) {
	i := b.budgetIndex(id)
	if i < 0 {
		log.Warn().Str("budget", id.String()).Msg("skipping recalculation for missing budget")
		return
	}

	b.Budgets[i] = b.Budgets[i].WithSpent(SpentFor(id, b.Expenses))
}

func (b *Book) recalculateAll(ids []uuid.UUID) {
	for _, id := range ids {
		b.recalculate(id)
	}
}

// AddBudget adds a budget. Spent is computed from the expenses already in the book.
func (b *Book) AddBudget(budget Budget) Budget {
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	if budget.Period == "" {
		budget.Period = PeriodMonthly
	}

	now := time.Now().UTC()
	budget.CreatedAt, budget.UpdatedAt = now, now
	budget = budget.WithSpent(SpentFor(budget.ID, b.Expenses))

	b.Budgets = append(b.Budgets, budget)
	return budget
}

// UpdateBudget applies the patch. Derived fields are recomputed.
func (b *Book) UpdateBudget(id uuid.UUID, patch BudgetPatch) (Budget, error) {
	i := b.budgetIndex(id)
	if i < 0 {
		return Budget{}, ErrBudgetNotFound
	}

	budget := b.Budgets[i]
	if patch.Name != nil {
		budget.Name = *patch.Name
	}
	if patch.Category != nil {
		budget.Category = *patch.Category
	}
	if patch.Allocated != nil {
		budget.Allocated = *patch.Allocated
	}
	if patch.Period != nil {
		budget.Period = *patch.Period
	}
	budget.UpdatedAt = time.Now().UTC()

	b.Budgets[i] = budget.WithSpent(SpentFor(id, b.Expenses))
	return b.Budgets[i], nil
}

// DeleteBudget removes a budget. Expenses linked to it keep their dangling reference.
func (b *Book) DeleteBudget(id uuid.UUID) error {
	i := b.budgetIndex(id)
	if i < 0 {
		return ErrBudgetNotFound
	}

	b.Budgets = append(b.Budgets[:i], b.Budgets[i+1:]...)
	return nil
}

// AddExpense adds an expense. New expenses default to pending.
func (b *Book) AddExpense(e Expense) (Expense, error) {
	if !e.Amount.IsPositive() {
		return Expense{}, ErrAmountNotPositive
	}
	if e.Status == "" {
		e.Status = ExpensePending
	}
	if !e.Status.Valid() {
		return Expense{}, ErrInvalidExpenseStatus
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now

	b.Expenses = append(b.Expenses, e)
	b.recalculateAll(AffectedBudgets(Expense{}, e))
	return e, nil
}

// Approve approves the expense and recalculates its budget.
func (b *Book) Approve(id uuid.UUID, actor Actor) (Expense, error) {
	return b.transition(id, ExpenseApproved, actor)
}

// Reject rejects the expense and recalculates its budget.
func (b *Book) Reject(id uuid.UUID, actor Actor) (Expense, error) {
	return b.transition(id, ExpenseRejected, actor)
}

func (b *Book) transition(id uuid.UUID, to ExpenseStatus, actor Actor) (Expense, error) {
	i := b.expenseIndex(id)
	if i < 0 {
		return Expense{}, ErrExpenseNotFound
	}

	before := b.Expenses[i]
	after, err := Transition(before, to, actor)
	if err != nil {
		return Expense{}, err
	}
	after.UpdatedAt = time.Now().UTC()

	b.Expenses[i] = after

	// Every transition re-runs aggregation, even approved -> approved
	if after.BudgetID != nil {
		b.recalculate(*after.BudgetID)
	}
	return after, nil
}

// UpdateExpense applies the patch and recalculates the old and the new budget if needed.
func (b *Book) UpdateExpense(id uuid.UUID, patch ExpensePatch) (Expense, error) {
	i := b.expenseIndex(id)
	if i < 0 {
		return Expense{}, ErrExpenseNotFound
	}

	before := b.Expenses[i]
	after := before

	if patch.Description != nil {
		after.Description = *patch.Description
	}
	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return Expense{}, ErrAmountNotPositive
		}
		after.Amount = *patch.Amount
	}
	if patch.Category != nil {
		after.Category = *patch.Category
	}
	if patch.BudgetID != nil {
		after.BudgetID = *patch.BudgetID
	}
	if patch.Date != nil {
		after.Date = *patch.Date
	}
	if patch.Vendor != nil {
		after.Vendor = *patch.Vendor
	}
	if patch.Department != nil {
		after.Department = *patch.Department
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return Expense{}, ErrInvalidExpenseStatus
		}
		after.Status = *patch.Status
	}
	if patch.Tags != nil {
		after.Tags = *patch.Tags
	}
	after.UpdatedAt = time.Now().UTC()

	b.Expenses[i] = after
	b.recalculateAll(AffectedBudgets(before, after))
	return after, nil
}

// DeleteExpense removes the expense and backs out its contribution.
func (b *Book) DeleteExpense(id uuid.UUID) error {
	i := b.expenseIndex(id)
	if i < 0 {
		return ErrExpenseNotFound
	}

	before := b.Expenses[i]
	b.Expenses = append(b.Expenses[:i], b.Expenses[i+1:]...)
	b.recalculateAll(AffectedBudgets(before, Expense{}))
	return nil
}

// PutBudget inserts the budget or replaces the one with the same ID as is.
func (b *Book) PutBudget(budget Budget) {
	i := b.budgetIndex(budget.ID)
	if i < 0 {
		b.Budgets = append(b.Budgets, budget)
		return
	}
	b.Budgets[i] = budget
}

// PutExpense inserts the expense or replaces the one with the same ID, then
// recalculates the budgets the change affects.
func (b *Book) PutExpense(e Expense) {
	i := b.expenseIndex(e.ID)
	if i < 0 {
		b.Expenses = append(b.Expenses, e)
		b.recalculateAll(AffectedBudgets(Expense{}, e))
		return
	}

	before := b.Expenses[i]
	b.Expenses[i] = e
	b.recalculateAll(AffectedBudgets(before, e))
}

// Metrics computes the dashboard metrics for the book.
func (b *Book) Metrics(now time.Time) DashboardMetrics {
	return Metrics(b.Budgets, b.Expenses, b.Categories, now)
}
