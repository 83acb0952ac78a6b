package models

import (
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a cost claim. Approved expenses count towards the budget they are linked to.
//
// BudgetID is not a foreign key. Deleting a budget leaves its expenses
// with a dangling reference.
type Expense struct {
	DefaultModel
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category    string          `gorm:"index"`
	BudgetID    *uuid.UUID      `gorm:"index"`
	Date        time.Time
	Vendor      string
	Department  string
	Status      ledger.ExpenseStatus `gorm:"index"`
	ApprovedBy  string
	Tags        types.StringSet
}

// AfterFind updates the timestamps and the date to use UTC.
func (e *Expense) AfterFind(tx *gorm.DB) (err error) {
	err = e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	e.Date = e.Date.In(time.UTC)
	return
}

// BeforeSave
//   - trims whitespace from string fields
//   - sets the date to now in UTC if it is not set
//   - defaults the status to pending
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.normalize()

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	}

	if e.Status == "" {
		e.Status = ledger.ExpensePending
	}

	if e.Tags == nil {
		e.Tags = types.StringSet{}
	}

	return nil
}

// normalize cleans up user input. It is applied to patches as well since
// hooks only run on the updated model.
func (e *Expense) normalize() {
	e.Description = strings.TrimSpace(e.Description)
	e.Category = strings.TrimSpace(e.Category)
	e.Vendor = strings.TrimSpace(e.Vendor)
	e.Department = strings.TrimSpace(e.Department)

	// A pointer to the nil UUID unlinks the expense
	if e.BudgetID != nil && *e.BudgetID == uuid.Nil {
		e.BudgetID = nil
	}

	e.Date = e.Date.In(time.UTC)

	if e.Tags != nil {
		e.Tags = types.NewStringSet(e.Tags...)
	}
}

func (e *Expense) AfterSave(_ *gorm.DB) error {
	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	if !e.Status.Valid() {
		return ErrInvalidExpenseStatus
	}

	return nil
}

// Ledger returns the expense in its ledger representation.
func (e Expense) Ledger() ledger.Expense {
	return ledger.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		BudgetID:    e.BudgetID,
		Date:        e.Date,
		Vendor:      e.Vendor,
		Department:  e.Department,
		Status:      e.Status,
		ApprovedBy:  e.ApprovedBy,
		Tags:        []string(e.Tags),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// CreateExpense creates the expense and recalculates its budget
// when it is created as approved.
func CreateExpense(db *gorm.DB, e *Expense) error {
	err := db.Create(e).Error
	if err != nil {
		return err
	}

	recalculate(db, ledger.AffectedBudgets(ledger.Expense{}, e.Ledger()))
	return nil
}

// UpdateExpense writes the selected fields of patch to the expense.
//
// If the status changes, approvedBy is set for the actor. The budgets the
// expense was and is linked to are recalculated when the change affects them.
func UpdateExpense(db *gorm.DB, e *Expense, fields []any, patch Expense, actor ledger.Actor) error {
	before := e.Ledger()
	patch.normalize()

	if patch.Status != "" && patch.Status != e.Status {
		transitioned, err := ledger.Transition(before, patch.Status, actor)
		if err != nil {
			return ErrInvalidExpenseStatus
		}

		patch.ApprovedBy = transitioned.ApprovedBy
		fields = append(fields, "ApprovedBy")
	}

	err := db.Model(e).Select("", fields...).Updates(patch).Error
	if err != nil {
		return err
	}

	// Reload to get the stored representation
	err = reload(db, e, e.ID)
	if err != nil {
		return err
	}

	recalculate(db, ledger.AffectedBudgets(before, e.Ledger()))
	return nil
}

// ApproveExpense approves the expense and recalculates its budget.
func ApproveExpense(db *gorm.DB, e *Expense, actor ledger.Actor) error {
	return transition(db, e, ledger.ExpenseApproved, actor)
}

// RejectExpense rejects the expense and recalculates its budget.
func RejectExpense(db *gorm.DB, e *Expense, actor ledger.Actor) error {
	return transition(db, e, ledger.ExpenseRejected, actor)
}

// transition moves the expense to the target status.
//
// Every transition re-runs aggregation for the budget, including
// repeated approvals.
func transition(db *gorm.DB, e *Expense, to ledger.ExpenseStatus, actor ledger.Actor) error {
	after, err := ledger.Transition(e.Ledger(), to, actor)
	if err != nil {
		return ErrInvalidExpenseStatus
	}

	err = db.Model(e).Select("Status", "ApprovedBy").Updates(Expense{
		Status:     after.Status,
		ApprovedBy: after.ApprovedBy,
	}).Error
	if err != nil {
		return err
	}

	if e.BudgetID != nil {
		recalculate(db, []uuid.UUID{*e.BudgetID})
	}
	return nil
}

// DeleteExpense deletes the expense and backs out its contribution to its budget.
func DeleteExpense(db *gorm.DB, e *Expense) error {
	before := e.Ledger()

	err := db.Delete(e).Error
	if err != nil {
		return err
	}

	recalculate(db, ledger.AffectedBudgets(before, ledger.Expense{}))
	return nil
}
