package router

import (
	"fmt"
	"net/http"

	docs "github.com/budgetwise/backend/api"
	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/config"
	"github.com/budgetwise/backend/internal/controllers"
	"github.com/budgetwise/backend/internal/httperror"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time with -ldflags.
var version = "0.0.0"

// Version returns the version of the backend.
func Version() string {
	return version
}

var enablePprof bool

// Config creates the engine with all middlewares.
//
// The returned function unregisters the Prometheus metrics and must be
// called when the engine is not used anymore.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	teardown := func() {
		unregisterPrometheusMetrics()
	}

	url, err := cfg.BaseURL()
	if err != nil {
		return nil, teardown, err
	}

	err = auth.Configure(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return nil, teardown, fmt.Errorf("jwt: %w", err)
	}

	httputil.UseJSONFieldNames()
	gin.SetMode(cfg.GinMode)
	enablePprof = cfg.EnablePprof

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httperror.New(errMethodNotAllowed))
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	err = registerPrometheusMetrics()
	if err != nil {
		return nil, teardown, err
	}
	r.Use(MetricsMiddleware())

	// CORS settings
	allowOrigins := cfg.AllowOrigins()
	if len(allowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Budgetwise"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "Budgets, expenses with an approval workflow, categories, cash flow and dashboard metrics."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
//
// Everything except the general endpoints and registration/login needs a
// valid bearer token.
func AttachRoutes(group *gin.RouterGroup) {
	controllers.RegisterRootRoutes(group.Group(""))
	controllers.RegisterVersionRoutes(group.Group("/version"), version)
	controllers.RegisterHealthzRoutes(group.Group("/healthz"))
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	if enablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	controllers.RegisterAuthRoutes(group.Group("/auth"))

	protected := group.Group("", auth.Middleware())
	controllers.RegisterBudgetRoutes(protected.Group("/budgets"))
	controllers.RegisterExpenseRoutes(protected.Group("/expenses"))
	controllers.RegisterCategoryRoutes(protected.Group("/categories"))
	controllers.RegisterTransactionRoutes(protected.Group("/transactions"))
	controllers.RegisterUserRoutes(protected.Group("/users"))
	controllers.RegisterDashboardRoutes(protected.Group("/dashboard"))
}
