package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/budgetwise/backend/internal/controllers"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) createTestUser(headers map[string]string, c controllers.UserCreate) controllers.User {
	if c.Name == "" {
		c.Name = "Ada Lovelace"
	}

	if c.Email == "" {
		c.Email = uuid.NewString() + "@example.com"
	}

	if c.Password == "" {
		c.Password = test.Password
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/users", c, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response controllers.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response.Data
}

func (suite *TestSuiteStandard) login(email, password string) (controllers.Session, int) {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/auth/login", controllers.Credentials{Email: email, Password: password})

	var response controllers.SessionResponse
	if r.Code == http.StatusOK {
		test.DecodeResponse(suite.T(), &r, &response)
	}

	return response.Data, r.Code
}

func (suite *TestSuiteStandard) TestUsersAdminOnly() {
	for _, role := range []models.Role{models.RoleManager, models.RoleUser} {
		suite.T().Run(string(role), func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/users", "", test.AsRole(t, role))
			test.AssertHTTPStatus(t, &r, http.StatusForbidden)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersCreate() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	user := suite.createTestUser(admin, controllers.UserCreate{
		Name:        "  Grace Hopper ",
		Email:       "Grace@Example.com",
		Role:        models.RoleManager,
		Department:  "Finance",
		Permissions: []string{"approve_expenses", "approve_expenses"},
	})

	suite.Assert().Equal("Grace Hopper", user.Name)
	suite.Assert().Equal("grace@example.com", user.Email)
	suite.Assert().Equal(models.RoleManager, user.Role)
	suite.Assert().Len(user.Permissions, 1)
	suite.Assert().True(user.IsActive)
	suite.Assert().Nil(user.LastLogin)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/users/"+user.ID.String(), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().NotContains(r.Body.String(), "passwordHash")
	suite.Assert().NotContains(r.Body.String(), "tokenVersion")

	_, code := suite.login("grace@example.com", test.Password)
	suite.Assert().Equal(http.StatusOK, code)
}

func (suite *TestSuiteStandard) TestUsersCreateFails() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	_ = suite.createTestUser(admin, controllers.UserCreate{Email: "taken@example.com"})

	tests := []struct {
		name string
		body any
	}{
		{"Duplicate email", controllers.UserCreate{Name: "Someone", Email: "TAKEN@example.com", Password: test.Password}},
		{"Invalid email", controllers.UserCreate{Name: "Someone", Email: "not-an-email", Password: test.Password}},
		{"Short password", controllers.UserCreate{Name: "Someone", Email: "short@example.com", Password: "short"}},
		{"Invalid role", controllers.UserCreate{Name: "Someone", Email: "role@example.com", Password: test.Password, Role: "owner"}},
		{"Broken body", `{ "name": 2 }`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/users", tt.body, admin)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersGetFilter() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	_ = suite.createTestUser(admin, controllers.UserCreate{Name: "Ada Lovelace", Email: "ada@example.com", Role: models.RoleManager, Department: "Engineering"})
	_ = suite.createTestUser(admin, controllers.UserCreate{Name: "Grace Hopper", Email: "grace@example.com", Department: "Finance"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"No filter", "", 3},
		{"Role", "role=manager", 1},
		{"Department", "department=Finance", 1},
		{"Active", "isActive=true", 3},
		{"Inactive", "isActive=false", 0},
		{"Search name", "search=hopper", 1},
		{"Search email", "search=example.com", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/users?%s", tt.query), "", admin)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response controllers.UserListResponse
			test.DecodeResponse(t, &r, &response)
			suite.Assert().Len(response.Data, tt.len, "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestUsersGetSingle() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Unknown", uuid.NewString(), http.StatusNotFound},
		{"Invalid ID", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/users/"+tt.id, "", admin)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersUpdate() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	user := suite.createTestUser(admin, controllers.UserCreate{Department: "Engineering"})

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/users/"+user.ID.String(), map[string]any{
		"role":        "manager",
		"permissions": []string{"approve_expenses"},
	}, admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.RoleManager, response.Data.Role)
	suite.Assert().Equal("Engineering", response.Data.Department, "Fields not in the body must not change")
	suite.Assert().True(response.Data.Permissions.Has(models.PermissionApproveExpenses))

	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/users/"+user.ID.String(), `{"role": "owner"}`, admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUsersSetPasswordRevokesTokens() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	user := suite.createTestUser(admin, controllers.UserCreate{Email: "reset@example.com"})

	session, code := suite.login("reset@example.com", test.Password)
	suite.Require().Equal(http.StatusOK, code)
	old := map[string]string{"Authorization": "Bearer " + session.Token}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/auth/profile", "", old)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/users/%s/password", user.ID), controllers.PasswordSet{Password: "a new secret phrase"}, admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/auth/profile", "", old)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	_, code = suite.login("reset@example.com", test.Password)
	suite.Assert().Equal(http.StatusUnauthorized, code)

	_, code = suite.login("reset@example.com", "a new secret phrase")
	suite.Assert().Equal(http.StatusOK, code)
}

func (suite *TestSuiteStandard) TestUsersDeactivateReactivate() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	user := suite.createTestUser(admin, controllers.UserCreate{Email: "leaver@example.com"})

	session, code := suite.login("leaver@example.com", test.Password)
	suite.Require().Equal(http.StatusOK, code)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/users/%s/deactivate", user.ID), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().False(response.Data.IsActive)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/auth/profile", "", map[string]string{"Authorization": "Bearer " + session.Token})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	_, code = suite.login("leaver@example.com", test.Password)
	suite.Assert().Equal(http.StatusUnauthorized, code)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/users/%s/reactivate", user.ID), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.IsActive)

	_, code = suite.login("leaver@example.com", test.Password)
	suite.Assert().Equal(http.StatusOK, code)
}

func (suite *TestSuiteStandard) TestUsersDeactivateSelf() {
	admin := test.CreateUser(suite.T(), models.User{Role: models.RoleAdmin})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/users/%s/deactivate", admin.ID), "", test.Authorization(suite.T(), admin))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUsersOptions() {
	admin := test.AsRole(suite.T(), models.RoleAdmin)
	user := suite.createTestUser(admin, controllers.UserCreate{})

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/users", "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/users/"+user.ID.String(), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/users/"+uuid.NewString(), "", admin)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
