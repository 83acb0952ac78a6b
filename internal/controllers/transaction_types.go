package controllers

import (
	"time"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionCreate is the body for creating a transaction.
type TransactionCreate struct {
	Type        ledger.TransactionType   `json:"type" binding:"required,oneof=income expense" example:"income"`                 // Income or expense
	Amount      decimal.Decimal          `json:"amount" example:"1200"`                                                         // Amount. Must be positive
	Description string                   `json:"description" binding:"required,max=500" example:"Invoice 2024-031"`             // Description
	Category    string                   `json:"category" binding:"max=255" example:"Consulting"`                               // Name of the category
	Date        time.Time                `json:"date" example:"2024-05-02T00:00:00Z"`                                           // Date of the transaction. Defaults to now
	Account     string                   `json:"account" binding:"max=255" example:"Operating account"`                         // Account the transaction was booked on
	Reference   string                   `json:"reference" binding:"max=255" example:"INV-2024-031"`                            // External reference
	Status      ledger.TransactionStatus `json:"status" binding:"omitempty,oneof=completed pending failed" example:"completed"` // Status. Defaults to completed
}

func (t TransactionCreate) model() models.Transaction {
	return TransactionEditable(t).model()
}

// TransactionEditable contains the fields of a transaction that clients can change.
type TransactionEditable struct {
	Type        ledger.TransactionType   `json:"type" binding:"omitempty,oneof=income expense" example:"income"`
	Amount      decimal.Decimal          `json:"amount" example:"1200"`
	Description string                   `json:"description" binding:"omitempty,max=500" example:"Invoice 2024-031"`
	Category    string                   `json:"category" binding:"max=255" example:"Consulting"`
	Date        time.Time                `json:"date" example:"2024-05-02T00:00:00Z"`
	Account     string                   `json:"account" binding:"max=255" example:"Operating account"`
	Reference   string                   `json:"reference" binding:"max=255" example:"INV-2024-031"`
	Status      ledger.TransactionStatus `json:"status" binding:"omitempty,oneof=completed pending failed" example:"completed"`
}

func (t TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date,
		Account:     t.Account,
		Reference:   t.Reference,
		Status:      t.Status,
	}
}

type TransactionQueryFilter struct {
	Type     ledger.TransactionType   `form:"type"`                       // Exact match for the type
	Status   ledger.TransactionStatus `form:"status"`                     // Exact match for the status
	Category string                   `form:"category"`                   // Exact match for the category
	Account  string                   `form:"account"`                    // Exact match for the account
	Search   string                   `form:"search" filterField:"false"` // Search for this text in description and reference
	DateRange
	httputil.PageQuery
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		Type:     f.Type,
		Status:   f.Status,
		Category: f.Category,
		Account:  f.Account,
	}
}

type (
	TransactionListResponse = ListResponse[ledger.Transaction]
	TransactionResponse     = Response[ledger.Transaction]
)
