package controllers

import (
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetCreate is the body for creating a budget.
type BudgetCreate struct {
	Name      string          `json:"name" binding:"required,max=255" example:"Marketing Q3"`                      // Name of the budget
	Category  string          `json:"category" binding:"required,max=255" example:"Marketing"`                     // Name of the category the budget is for
	Allocated decimal.Decimal `json:"allocated" example:"5000"`                                                    // Allocated amount. Must not be negative
	Period    ledger.Period   `json:"period" binding:"omitempty,oneof=monthly quarterly yearly" example:"monthly"` // Budget period. Defaults to monthly
}

func (b BudgetCreate) model() models.Budget {
	return BudgetEditable(b).model()
}

// BudgetEditable contains the fields of a budget that clients can change.
//
// Spent, remaining and status are derived from the approved expenses and
// are not part of it.
type BudgetEditable struct {
	Name      string          `json:"name" binding:"omitempty,max=255" example:"Marketing Q3"`
	Category  string          `json:"category" binding:"omitempty,max=255" example:"Marketing"`
	Allocated decimal.Decimal `json:"allocated" example:"5000"`
	Period    ledger.Period   `json:"period" binding:"omitempty,oneof=monthly quarterly yearly" example:"quarterly"`
}

func (b BudgetEditable) model() models.Budget {
	return models.Budget{
		Name:      b.Name,
		Category:  b.Category,
		Allocated: b.Allocated,
		Period:    b.Period,
	}
}

type BudgetQueryFilter struct {
	Category string        `form:"category"`                   // Exact match for the category
	Period   ledger.Period `form:"period"`                     // Exact match for the period
	Status   ledger.Status `form:"status"`                     // Exact match for the status
	Search   string        `form:"search" filterField:"false"` // Search for this text in name and category
	httputil.PageQuery
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		Category: f.Category,
		Period:   f.Period,
		Status:   f.Status,
	}
}

type (
	BudgetListResponse = ListResponse[ledger.Budget]
	BudgetResponse     = Response[ledger.Budget]
)
