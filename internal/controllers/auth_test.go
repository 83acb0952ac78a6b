package controllers_test

import (
	"net/http"
	"testing"

	"github.com/budgetwise/backend/internal/controllers"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/test"
)

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func (suite *TestSuiteStandard) TestAuthRegister() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/auth/register", controllers.Registration{
		Name:       "Ada Lovelace",
		Email:      "Ada@Example.com",
		Password:   test.Password,
		Department: "Engineering",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response controllers.SessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().NotEmpty(response.Data.Token)
	suite.Assert().True(response.Data.ExpiresAt.After(response.Data.User.CreatedAt))
	suite.Assert().Equal(models.RoleUser, response.Data.User.Role)
	suite.Assert().Equal("ada@example.com", response.Data.User.Email)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/auth/profile", "", bearer(response.Data.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestAuthRegisterIgnoresRole() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/auth/register", map[string]any{
		"name":     "Mallory",
		"email":    "mallory@example.com",
		"password": test.Password,
		"role":     "admin",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response controllers.SessionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.RoleUser, response.Data.User.Role)
}

func (suite *TestSuiteStandard) TestAuthRegisterFails() {
	_ = test.CreateUser(suite.T(), models.User{Email: "taken@example.com"})

	tests := []struct {
		name string
		body controllers.Registration
	}{
		{"Duplicate email", controllers.Registration{Name: "Someone", Email: "Taken@example.com", Password: test.Password}},
		{"Missing name", controllers.Registration{Email: "new@example.com", Password: test.Password}},
		{"Short password", controllers.Registration{Name: "Someone", Email: "new@example.com", Password: "1234567"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/auth/register", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestAuthLogin() {
	user := test.CreateUser(suite.T(), models.User{Email: "login@example.com"})
	inactive := test.CreateUser(suite.T(), models.User{Email: "inactive@example.com"})
	suite.Require().Nil(models.SetActive(models.DB, &inactive, false))

	session, code := suite.login("LOGIN@example.com", test.Password)
	suite.Require().Equal(http.StatusOK, code)
	suite.Assert().Equal(user.ID, session.User.ID)
	suite.Assert().NotNil(session.User.LastLogin)

	tests := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{"Wrong password", "login@example.com", "not the password", http.StatusUnauthorized},
		{"Unknown email", "nobody@example.com", test.Password, http.StatusUnauthorized},
		{"Inactive", "inactive@example.com", test.Password, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/auth/login", controllers.Credentials{Email: tt.email, Password: tt.password})
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAuthInvalidTokens() {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"Missing prefix", map[string]string{"Authorization": "Token abc"}},
		{"Empty token", bearer("")},
		{"Garbage", bearer("abc.def.ghi")},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/auth/profile", "", tt.headers)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}
}

func (suite *TestSuiteStandard) TestAuthProfile() {
	user := test.CreateUser(suite.T(), models.User{Name: "Ada Lovelace", Department: "Engineering"})
	headers := test.Authorization(suite.T(), user)

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/auth/profile", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.ProfileResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(user.ID, response.Data.ID)
	suite.Assert().Equal("Engineering", response.Data.Department)

	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/auth/profile", `{"department": "Research", "role": "admin"}`, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Research", response.Data.Department)
	suite.Assert().Equal("Ada Lovelace", response.Data.Name)
	suite.Assert().Equal(models.RoleUser, response.Data.Role, "Users cannot change their own role")
}

func (suite *TestSuiteStandard) TestAuthChangePassword() {
	user := test.CreateUser(suite.T(), models.User{Email: "change@example.com"})
	headers := test.Authorization(suite.T(), user)

	r := test.Request(suite.T(), http.MethodPatch, "http://example.com/auth/change-password", controllers.PasswordChange{
		CurrentPassword: "wrong password",
		NewPassword:     "a new secret phrase",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, "http://example.com/auth/change-password", controllers.PasswordChange{
		CurrentPassword: test.Password,
		NewPassword:     "a new secret phrase",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.SessionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/auth/profile", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/auth/profile", "", bearer(response.Data.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	_, code := suite.login("change@example.com", "a new secret phrase")
	suite.Assert().Equal(http.StatusOK, code)
}
