package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/budgetwise/backend/internal/controllers"
	"github.com/budgetwise/backend/internal/httperror"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	budget := suite.createTestBudget(admin, controllers.BudgetCreate{
		Name:      "Marketing Q2",
		Category:  "Marketing",
		Allocated: decimal.NewFromInt(5000),
	})

	suite.Assert().NotEqual(uuid.Nil, budget.ID)
	suite.Assert().Equal("Marketing Q2", budget.Name)
	suite.Assert().Equal(ledger.PeriodMonthly, budget.Period, "Period must default to monthly")
	suite.Assert().Equal(ledger.StatusOnTrack, budget.Status)
	suite.assertDecimal("0", budget.Spent)
	suite.assertDecimal("5000", budget.Remaining)
}

func (suite *TestSuiteStandard) TestBudgetsCreateIgnoresDerivedFields() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/budgets", `{"name": "Office", "category": "Office", "allocated": "100", "spent": "90", "remaining": "10", "status": "over-budget"}`, admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.assertDecimal("0", response.Data.Spent)
	suite.assertDecimal("100", response.Data.Remaining)
	suite.Assert().Equal(ledger.StatusOnTrack, response.Data.Status)
}

func (suite *TestSuiteStandard) TestBudgetsCreateFails() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "name": 2 }`, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
		{"Missing name", `{ "category": "Travel" }`, http.StatusBadRequest},
		{"Invalid period", `{ "name": "Travel", "category": "Travel", "period": "weekly" }`, http.StatusBadRequest},
		{"Negative allocation", `{ "name": "Travel", "category": "Travel", "allocated": "-10" }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/budgets", tt.body, admin)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsValidationErrorsPerField() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/budgets", `{ "category": "Travel" }`, admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response httperror.Error
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().False(response.Success)
	suite.Assert().Contains(response.Errors, "name")
}

func (suite *TestSuiteStandard) TestBudgetsWriteNeedsRole() {
	user := test.AsRole(suite.T(), models.RoleUser)
	manager := test.AsRole(suite.T(), models.RoleManager)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/budgets", controllers.BudgetCreate{Name: "Office", Category: "Office"}, user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	budget := suite.createTestBudget(manager, controllers.BudgetCreate{})

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/budgets/%s", budget.ID), `{"name": "Renamed"}`, user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/budgets/%s", budget.ID), "", user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)

	// Reading is allowed for everyone
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/budgets/%s", budget.ID), "", user)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestBudgetsNoToken() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/budgets", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/budgets", "", map[string]string{"Authorization": "Bearer not-a-token"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestBudgetsGetSingle() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	budget := suite.createTestBudget(admin, controllers.BudgetCreate{Allocated: decimal.NewFromInt(100)})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Standard budget", budget.ID.String(), http.StatusOK},
		{"No budget with this ID", uuid.New().String(), http.StatusNotFound},
		{"Invalid ID", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/budgets/%s", tt.id), "", admin)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsGetFilter() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	_ = suite.createTestBudget(admin, controllers.BudgetCreate{Name: "Flights", Category: "Travel", Period: ledger.PeriodQuarterly})
	_ = suite.createTestBudget(admin, controllers.BudgetCreate{Name: "Hotels", Category: "Travel"})
	_ = suite.createTestBudget(admin, controllers.BudgetCreate{Name: "Laptops", Category: "Equipment", Period: ledger.PeriodYearly})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"No filter", "", 3},
		{"Category", "category=Travel", 2},
		{"Period", "period=yearly", 1},
		{"Status", "status=on-track", 3},
		{"Search in name", "search=otel", 1},
		{"Search in category", "search=equip", 1},
		{"Category and period", "category=Travel&period=quarterly", 1},
		{"No match", "category=Food", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/budgets?%s", tt.query), "", admin)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response controllers.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			suite.Assert().Len(response.Data, tt.len, "Request ID: %s", r.Result().Header.Get("x-request-id"))
			suite.Assert().Equal(int64(tt.len), response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsPagination() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_ = suite.createTestBudget(admin, controllers.BudgetCreate{Name: name})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/budgets?page=2&limit=2", "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("C", response.Data[0].Name)
	suite.Assert().Equal(2, response.Pagination.Page)
	suite.Assert().Equal(3, response.Pagination.Pages)
	suite.Assert().Equal(int64(5), response.Pagination.Total)
	suite.Assert().Equal(2, response.Pagination.Limit)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/budgets?page=-1", "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	budget := suite.createTestBudget(admin, controllers.BudgetCreate{Allocated: decimal.NewFromInt(1000)})
	_ = suite.createTestExpense(admin, controllers.ExpenseCreate{
		Amount:   decimal.NewFromInt(800),
		BudgetID: &budget.ID,
		Status:   ledger.ExpenseApproved,
	})

	// Lowering the allocation re-derives the status
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/budgets/%s", budget.ID), `{"allocated": "850", "spent": "0", "status": "on-track"}`, admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(budget.Name, response.Data.Name, "Name must not change when it is not in the body")
	suite.assertDecimal("850", response.Data.Allocated)
	suite.assertDecimal("800", response.Data.Spent, "spent is not client-writable")
	suite.assertDecimal("50", response.Data.Remaining)
	suite.Assert().Equal(ledger.StatusOverBudget, response.Data.Status)
}

func (suite *TestSuiteStandard) TestBudgetsUpdateFails() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	budget := suite.createTestBudget(admin, controllers.BudgetCreate{})

	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Invalid type", budget.ID.String(), `{"name": 2}`, http.StatusBadRequest},
		{"Broken JSON", budget.ID.String(), `{"name": 2`, http.StatusBadRequest},
		{"Invalid period", budget.ID.String(), `{"period": "daily"}`, http.StatusBadRequest},
		{"Negative allocation", budget.ID.String(), `{"allocated": "-1"}`, http.StatusBadRequest},
		{"Non-existing budget", uuid.New().String(), `{"name": "Test"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/budgets/%s", tt.id), tt.body, admin)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	budget := suite.createTestBudget(admin, controllers.BudgetCreate{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/budgets/%s", budget.ID), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.MessageResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Success)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/budgets/%s", budget.ID), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/budgets/%s", budget.ID), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsOptions() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	budget := suite.createTestBudget(admin, controllers.BudgetCreate{})

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/budgets", "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/budgets/%s", budget.ID), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/budgets/%s", uuid.New()), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
