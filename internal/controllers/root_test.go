package controllers_test

import (
	"net/http"

	"github.com/budgetwise/backend/internal/controllers"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/test"
)

func (suite *TestSuiteStandard) TestRoot() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.RootResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(controllers.RootLinks{
		Docs:         "http://example.com/docs/index.html",
		Healthz:      "http://example.com/healthz",
		Version:      "http://example.com/version",
		Metrics:      "http://example.com/metrics",
		Auth:         "http://example.com/auth",
		Budgets:      "http://example.com/budgets",
		Expenses:     "http://example.com/expenses",
		Categories:   "http://example.com/categories",
		Transactions: "http://example.com/transactions",
		Users:        "http://example.com/users",
		Dashboard:    "http://example.com/dashboard",
	}, response.Links)
}

func (suite *TestSuiteStandard) TestVersion() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/version", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.VersionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("0.0.0", response.Data.Version)
}

func (suite *TestSuiteStandard) TestOptionsGeneral() {
	for _, path := range []string{"http://example.com/", "http://example.com/version", "http://example.com/healthz"} {
		r := test.Request(suite.T(), http.MethodOptions, path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"), "Path: %s", path)
	}
}

func (suite *TestSuiteStandard) TestHealthzSuccess() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestHealthzFail() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	suite.Assert().Contains(r.Body.String(), models.ErrGeneral.Error())
}

func (suite *TestSuiteStandard) TestDatabaseClosedAuthenticated() {
	headers := test.AsRole(suite.T(), models.RoleAdmin)
	suite.CloseDB()

	for _, path := range []string{"budgets", "expenses", "categories", "transactions", "users"} {
		r := test.Request(suite.T(), http.MethodGet, "http://example.com/"+path, "", headers)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	}
}
