package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// swagger:enum Period
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

func (p Period) Valid() bool {
	return p == PeriodMonthly || p == PeriodQuarterly || p == PeriodYearly
}

// swagger:enum ExpenseStatus
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

func (s ExpenseStatus) Valid() bool {
	return s == ExpensePending || s == ExpenseApproved || s == ExpenseRejected
}

// swagger:enum TransactionType
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// swagger:enum TransactionStatus
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	return s == TransactionCompleted || s == TransactionPending || s == TransactionFailed
}

// Budget is an allocation envelope for a category over a period.
type Budget struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Period    Period          `json:"period"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// WithSpent returns the budget with spent set and remaining and status derived from it.
func (b Budget) WithSpent(spent decimal.Decimal) Budget {
	e := Evaluate(b.Allocated, spent)
	b.Spent = spent
	b.Remaining = e.Remaining
	b.Status = e.Status
	return b
}

// Expense is a cost claim. Once approved, it debits the budget it is linked to.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	BudgetID    *uuid.UUID      `json:"budgetId"`
	Date        time.Time       `json:"date"`
	Vendor      string          `json:"vendor"`
	Department  string          `json:"department"`
	Status      ExpenseStatus   `json:"status"`
	ApprovedBy  string          `json:"approvedBy"`
	Tags        []string        `json:"tags"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Approved reports if the expense counts towards its budget.
func (e Expense) Approved() bool {
	return e.Status == ExpenseApproved
}

// LinkedTo reports if the expense is explicitly linked to the budget.
func (e Expense) LinkedTo(id uuid.UUID) bool {
	return e.BudgetID != nil && *e.BudgetID == id
}

// Category groups budgets and expenses by name.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	ParentID    *uuid.UUID `json:"parentId"`
	IsActive    bool       `json:"isActive"`
}

// Transaction is a cash-flow record, independent of budgets and expenses.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	Type        TransactionType   `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Date        time.Time         `json:"date"`
	Account     string            `json:"account"`
	Reference   string            `json:"reference"`
	Status      TransactionStatus `json:"status"`
}

// Actor is the user performing an approval or rejection.
type Actor struct {
	Name  string
	Email string
}

// Label returns the name recorded in approvedBy.
func (a Actor) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}
