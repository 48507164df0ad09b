package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/foodforms/questionnaire/docs"
	"github.com/foodforms/questionnaire/internal/api/handler"
	"github.com/foodforms/questionnaire/internal/api/middleware"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth          ports.AuthService
	Forms         ports.FormService
	Flashes       ports.FlashStore
	Revocations   ports.SessionRevocations
	SessionSecret string
	SecureCookies bool
	Renderer      echo.Renderer
	Readiness     map[string]handler.Checker
	// Registry receives the HTTP request metrics and backs /metrics; nil
	// means the default registry, where the domain counters live.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = deps.Renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "questionnaire",
		Registerer: registerer,
	}))
	e.Use(middleware.Session(middleware.SessionConfig{
		Skipper:     isInfrastructurePath,
		Secret:      deps.SessionSecret,
		Revocations: deps.Revocations,
		Flashes:     deps.Flashes,
		Secure:      deps.SecureCookies,
		Log:         deps.Log,
	}))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.SecureCookies)
	formHandler := handler.NewFormHandler(deps.Forms)

	toLogin := middleware.RequireAuthenticated(middleware.WithRedirect("/"))
	pleaseLogin := middleware.RequireAuthenticated(middleware.WithMessage("Please login in!"))
	adminOnly := middleware.RequireAdministrator()

	// --- Pages ---
	e.GET("/", authHandler.LoginPage)
	e.POST("/", authHandler.Login)
	e.POST("/logout/", authHandler.Logout, middleware.RequireAuthenticated())
	e.GET("/dashboard/", formHandler.Dashboard, toLogin)
	e.GET("/users/", formHandler.Users, toLogin, adminOnly)
	e.POST("/assign-forms/:userId", formHandler.Assign, pleaseLogin, adminOnly)
	e.POST("/complete-forms/:formId", formHandler.Complete, pleaseLogin)
	e.GET("/history/", formHandler.History, toLogin)

	// --- Health probes, metrics and docs (no session) ---
	healthHandler := handler.NewHealthHandler(deps.Readiness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func isInfrastructurePath(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/health" || p == "/health/ready" || p == "/metrics" || strings.HasPrefix(p, "/swagger/")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
