package http

import (
	"context"
	stdhttp "net/http"

	"examplar-api/internal/auth"
	"examplar-api/internal/config"
	"examplar-api/internal/http/handler"
	"examplar-api/internal/http/middleware"
	"examplar-api/internal/rbac/presets"
	"examplar-api/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"
)

type ServerDependencies struct {
	Config         *config.Config
	Logger         log.FieldLogger
	UserRepo       handler.UserService
	ProductRepo    handler.ProductService
	AuthMiddleware *auth.Middleware
	// Metrics is optional; nil disables request metrics and /metrics.
	Metrics *metrics.Metrics
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first so every log line and error body carries it
	e.Use(middleware.RequestID())
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.Recover())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.BodyLimit(deps.Config.Server.BodyLimit))
	if deps.Config.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(deps.Config.RateLimit.RPS, deps.Config.RateLimit.Burst)
		e.Use(limiter.Middleware())
	}
	e.Use(deps.AuthMiddleware.Gate())

	productHandler := handler.NewProductHandler(deps.ProductRepo)
	userHandler := handler.NewUserHandler(deps.UserRepo, deps.Logger)

	e.GET(presets.PathHealth, healthCheck)
	if deps.Metrics != nil {
		e.GET(presets.PathMetrics, echo.WrapHandler(deps.Metrics.Handler()))
	}

	e.GET(presets.PathProducts, productHandler.ListProducts)
	e.GET(presets.PathProductByID, productHandler.GetProduct)
	e.POST(presets.PathProducts, productHandler.CreateProduct)

	e.GET(presets.PathUsers, userHandler.ListUsers)
	e.GET(presets.PathUserByID, userHandler.GetUser)
	e.POST(presets.PathUsers, userHandler.CreateUser)

	return &Server{
		echo: e,
		deps: deps,
	}
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() stdhttp.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
