package controllers

import (
	"time"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCreate is the body for creating an expense.
type ExpenseCreate struct {
	Description string               `json:"description" binding:"required,max=500" example:"Flight to Berlin"`            // Description of the expense
	Amount      decimal.Decimal      `json:"amount" example:"249.90"`                                                      // Amount. Must be positive
	Category    string               `json:"category" binding:"required,max=255" example:"Travel"`                         // Name of the category
	BudgetID    *uuid.UUID           `json:"budgetId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`                      // ID of the budget the expense debits once approved
	Date        time.Time            `json:"date" example:"2024-05-02T00:00:00Z"`                                          // Date of the expense. Defaults to now
	Vendor      string               `json:"vendor" binding:"max=255" example:"Lufthansa"`                                 // Vendor
	Department  string               `json:"department" binding:"max=255" example:"Sales"`                                 // Department the expense is booked for
	Status      ledger.ExpenseStatus `json:"status" binding:"omitempty,oneof=pending approved rejected" example:"pending"` // Status. Defaults to pending
	Tags        types.StringSet      `json:"tags" example:"travel,q2"`                                                     // Tags
}

// ExpenseEditable contains the fields of an expense that clients can change.
//
// Setting budgetId to null unlinks the expense from its budget.
type ExpenseEditable struct {
	Description string               `json:"description" binding:"omitempty,max=500" example:"Flight to Berlin"`
	Amount      decimal.Decimal      `json:"amount" example:"249.90"`
	Category    string               `json:"category" binding:"omitempty,max=255" example:"Travel"`
	BudgetID    *uuid.UUID           `json:"budgetId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	Date        time.Time            `json:"date" example:"2024-05-02T00:00:00Z"`
	Vendor      string               `json:"vendor" binding:"max=255" example:"Lufthansa"`
	Department  string               `json:"department" binding:"max=255" example:"Sales"`
	Status      ledger.ExpenseStatus `json:"status" binding:"omitempty,oneof=pending approved rejected" example:"approved"`
	Tags        types.StringSet      `json:"tags" example:"travel,q2"`
}

func (e ExpenseEditable) model() models.Expense {
	return models.Expense{
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		BudgetID:    e.BudgetID,
		Date:        e.Date,
		Vendor:      e.Vendor,
		Department:  e.Department,
		Status:      e.Status,
		Tags:        e.Tags,
	}
}

func (e ExpenseCreate) model() models.Expense {
	return ExpenseEditable(e).model()
}

type ExpenseQueryFilter struct {
	Category   string               `form:"category"`                   // Exact match for the category
	Status     ledger.ExpenseStatus `form:"status"`                     // Exact match for the status
	Department string               `form:"department"`                 // Exact match for the department
	BudgetID   string               `form:"budget" filterField:"false"` // ID of the budget. Send an empty value for expenses without a budget
	Vendor     string               `form:"vendor" filterField:"false"` // Glob pattern for the vendor, e.g. "air*". Without a wildcard, matches any vendor containing the text
	Tag        string               `form:"tag" filterField:"false"`    // Only expenses with this tag
	Search     string               `form:"search" filterField:"false"` // Search for this text in description and vendor
	DateRange
	httputil.PageQuery
}

func (f ExpenseQueryFilter) model() models.Expense {
	return models.Expense{
		Category:   f.Category,
		Status:     f.Status,
		Department: f.Department,
	}
}

type (
	ExpenseListResponse = ListResponse[ledger.Expense]
	ExpenseResponse     = Response[ledger.Expense]
)
