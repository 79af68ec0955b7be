package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sunitahospital/hospital-system/docs"
	"github.com/sunitahospital/hospital-system/internal/api/handler"
	"github.com/sunitahospital/hospital-system/internal/api/middleware"
	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

var (
	roleUser  = domain.AuthorityPrefix + domain.DefaultRoleName
	roleAdmin = domain.AuthorityPrefix + domain.AdminRoleName
)

// Dependencies are the services the router exposes over HTTP.
type Dependencies struct {
	Log             zerolog.Logger
	AuthService     ports.AuthService
	UserService     ports.UserService
	PatientService  ports.PatientService
	TokenParser     ports.TokenParser
	PrincipalLoader ports.PrincipalLoader
	HealthChecks    map[string]handler.HealthCheck

	// Registry receives the HTTP metrics and backs /metrics. Defaults to the
	// global Prometheus registry, which also holds the service metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "hospital",
		Registerer: registerer(deps.Registry),
	}))

	// --- Operations (no auth required) ---
	health := handler.NewHealthHandler(deps.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer(deps.Registry),
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	patientHandler := handler.NewPatientHandler(deps.PatientService)
	auth := middleware.Auth(deps.TokenParser, deps.PrincipalLoader)

	// --- Public routes ---
	e.POST("/authenticate", authHandler.CreateToken)
	e.POST("/users", userHandler.Register)

	// --- Users ---
	e.GET("/users", userHandler.List, auth, middleware.RequireAuthority(roleAdmin))
	e.GET("/users/:userName", userHandler.Get, auth, middleware.RequireAuthority(roleUser, roleAdmin))

	// --- Patients ---
	e.POST("/patients", patientHandler.Book, auth, middleware.RequireAuthority(roleUser, roleAdmin))
	e.GET("/patients/:id", patientHandler.Get, auth, middleware.RequireAuthority(roleUser, roleAdmin))
	e.GET("/patients", patientHandler.List, auth, middleware.RequireAuthority(roleAdmin))
	e.GET("/patients/metrics", patientHandler.PaymentMetrics, auth, middleware.RequireAuthority(roleAdmin))
	e.PATCH("/patients/:id/status", patientHandler.UpdateStatus, auth, middleware.RequireAuthority(roleAdmin))
	e.PATCH("/patients/:id/description", patientHandler.UpdateDescription, auth, middleware.RequireAuthority(roleAdmin))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return prometheus.DefaultRegisterer
	}
	return reg
}

func gatherer(reg *prometheus.Registry) prometheus.Gatherer {
	if reg == nil {
		return prometheus.DefaultGatherer
	}
	return reg
}
