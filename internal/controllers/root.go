package controllers

import (
	"net/http"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Version of the API
//
// This is set at build time with -ldflags.
var apiVersion = "0.0.0"

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs         string `json:"docs" example:"https://example.com/api/docs/index.html"`  // Swagger API documentation
	Healthz      string `json:"healthz" example:"https://example.com/api/healthz"`       // Healthz endpoint
	Version      string `json:"version" example:"https://example.com/api/version"`       // Endpoint returning the version of the backend
	Metrics      string `json:"metrics" example:"https://example.com/api/metrics"`       // Endpoint returning Prometheus metrics
	Auth         string `json:"auth" example:"https://example.com/api/auth"`             // Registration, login and profile
	Budgets      string `json:"budgets" example:"https://example.com/api/budgets"`       // Budgets collection
	Expenses     string `json:"expenses" example:"https://example.com/api/expenses"`     // Expenses collection
	Categories   string `json:"categories" example:"https://example.com/api/categories"` // Categories collection
	Transactions string `json:"transactions" example:"https://example.com/api/transactions"`
	Users        string `json:"users" example:"https://example.com/api/users"`         // Users collection, administrators only
	Dashboard    string `json:"dashboard" example:"https://example.com/api/dashboard"` // Dashboard metrics
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// RegisterRootRoutes registers the routes for the API root with
// the RouterGroup that is passed.
func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:         url + "/docs/index.html",
			Healthz:      url + "/healthz",
			Version:      url + "/version",
			Metrics:      url + "/metrics",
			Auth:         url + "/auth",
			Budgets:      url + "/budgets",
			Expenses:     url + "/expenses",
			Categories:   url + "/categories",
			Transactions: url + "/transactions",
			Users:        url + "/users",
			Dashboard:    url + "/dashboard",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// RegisterVersionRoutes registers the version endpoint and sets the version it reports.
func RegisterVersionRoutes(r *gin.RouterGroup, version string) {
	// set the API version so that responses are correct
	apiVersion = version

	r.GET("", GetVersion)
	r.OPTIONS("", OptionsVersion)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: apiVersion,
		},
	})
}

// RegisterHealthzRoutes registers the health check with the RouterGroup that is passed.
func RegisterHealthzRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsHealthz)
	r.GET("", GetHealthz)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func OptionsHealthz(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httperror.Error
// @Router			/healthz [get]
func GetHealthz(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		respondError(c, models.ErrGeneral)
		return
	}

	c.Status(http.StatusNoContent)
}
