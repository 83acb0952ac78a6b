package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/budgetwise/backend/internal/controllers"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	user := test.AsRole(suite.T(), models.RoleUser)

	transaction := suite.createTestTransaction(user, controllers.TransactionCreate{
		Type:      ledger.TransactionExpense,
		Amount:    decimal.NewFromInt(49),
		Account:   "Credit card",
		Reference: "CC-0042",
	})

	suite.Assert().Equal(ledger.TransactionExpense, transaction.Type)
	suite.Assert().Equal(ledger.TransactionCompleted, transaction.Status, "Status must default to completed")
	suite.Assert().Equal("CC-0042", transaction.Reference)
	suite.assertDecimal("49", transaction.Amount)
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	user := test.AsRole(suite.T(), models.RoleUser)

	tests := []struct {
		name string
		body any
	}{
		{"Missing type", `{ "description": "Invoice", "amount": "10" }`},
		{"Invalid type", `{ "type": "transfer", "description": "Invoice", "amount": "10" }`},
		{"Missing description", `{ "type": "income", "amount": "10" }`},
		{"Zero amount", `{ "type": "income", "description": "Invoice", "amount": "0" }`},
		{"Invalid status", `{ "type": "income", "description": "Invoice", "amount": "10", "status": "done" }`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/transactions", tt.body, user)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	user := test.AsRole(suite.T(), models.RoleUser)

	_ = suite.createTestTransaction(user, controllers.TransactionCreate{
		Type:        ledger.TransactionIncome,
		Description: "Invoice ACME",
		Category:    "Consulting",
		Account:     "Operating",
		Reference:   "INV-1",
		Date:        time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	})
	_ = suite.createTestTransaction(user, controllers.TransactionCreate{
		Type:        ledger.TransactionExpense,
		Description: "Office rent",
		Category:    "Rent",
		Account:     "Operating",
		Date:        time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
	})
	_ = suite.createTestTransaction(user, controllers.TransactionCreate{
		Type:        ledger.TransactionExpense,
		Description: "Card fee",
		Account:     "Credit card",
		Status:      ledger.TransactionFailed,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"No filter", "", 3},
		{"Type", "type=expense", 2},
		{"Status", "status=failed", 1},
		{"Category", "category=Rent", 1},
		{"Account", "account=Operating", 2},
		{"Search reference", "search=INV", 1},
		{"Until date", "untilDate=2024-05-31", 2},
		{"From date", "fromDate=2024-05-03", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/transactions?%s", tt.query), "", user)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response controllers.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			suite.Assert().Len(response.Data, tt.len, "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdateAndDelete() {
	user := test.AsRole(suite.T(), models.RoleUser)
	transaction := suite.createTestTransaction(user, controllers.TransactionCreate{})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/transactions/%s", transaction.ID), `{"status": "pending", "amount": "1250.50"}`, user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(ledger.TransactionPending, response.Data.Status)
	suite.Assert().Equal(transaction.Description, response.Data.Description)
	suite.assertDecimal("1250.50", response.Data.Amount)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/transactions/%s", transaction.ID), `{"type": "gift"}`, user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/transactions/%s", transaction.ID), "", user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/transactions/%s", transaction.ID), "", user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/transactions/%s", uuid.New()), `{"status": "failed"}`, user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
