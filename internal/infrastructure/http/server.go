package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	handler "github.com/ArtLegends/medtravel-main-sub002/internal/adapter/handler/http"
	"github.com/ArtLegends/medtravel-main-sub002/internal/config"
	"github.com/ArtLegends/medtravel-main-sub002/internal/middleware/auth"
	"github.com/ArtLegends/medtravel-main-sub002/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// HealthChecker reports whether the durable store is reachable
type HealthChecker func(ctx context.Context) error

// Server wraps the echo router and its http.Server
type Server struct {
	router  *echo.Echo
	server  *http.Server
	logger  *zap.Logger
	address string
}

// NewServer creates the HTTP server with recovery, request logging and the zap error handler
func NewServer(cfg config.HTTPConfig, zapLogger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(zapLogger))
	logger.WithEchoLogger(e, zapLogger)

	e.Validator = handler.NewRequestValidator()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	address := cfg.Addr()

	return &Server{
		router: e,
		server: &http.Server{
			Addr:         address,
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			IdleTimeout:  2 * timeout,
		},
		logger:  zapLogger,
		address: address,
	}
}

// Router returns the echo instance
func (s *Server) Router() *echo.Echo {
	return s.router
}

// RegisterRoutes mounts /health and the referral routes. The API group is
// guarded by the Supabase JWT; role checks go through roles.
func (s *Server) RegisterRoutes(h handler.Handlers, jwtSecret string, roles auth.RoleChecker, health HealthChecker) {
	s.router.GET("/health", func(c echo.Context) error {
		if health != nil {
			if err := health(c.Request().Context()); err != nil {
				s.logger.Warn("Health check failed", zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authn := auth.JWTMiddleware(auth.JWTConfig{Secret: jwtSecret, Logger: s.logger})
	handler.RegisterRoutes(s.router, h, authn, roles, s.logger)
}

// Start blocks serving HTTP until Stop is called
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("address", s.address))

	s.server.Handler = s.router
	if err := s.router.StartServer(s.server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests within ctx
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")

	if err := s.router.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
