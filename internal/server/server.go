// Package server exposes the simulators over HTTP for the presentation layer.
// Computation stays in internal/calculation; this layer only binds requests,
// consults the result cache, and shapes responses.
package server

import (
	"net/http"
	"time"

	"github.com/fireplan/fireplan/internal/cache"
	"github.com/fireplan/fireplan/internal/calculation"
	"github.com/fireplan/fireplan/internal/store"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// resultTTL bounds how long cached results live. Plans hash deterministically,
// so staleness only matters when the binary's assumptions change.
const resultTTL = time.Hour

// Server wires the engine, result cache and settings store behind an Echo
// router.
type Server struct {
	engine   *calculation.Engine
	cache    cache.Cache
	settings *store.SettingsStore // optional
	log      zerolog.Logger
}

// New builds a server. settings may be nil when no store is configured.
func New(engine *calculation.Engine, c cache.Cache, settings *store.SettingsStore, log zerolog.Logger) *Server {
	return &Server{engine: engine, cache: c, settings: settings, log: log}
}

// Router builds the Echo instance with middleware and routes registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(s.requestLogger())
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	api.POST("/projection", s.handleProjection)
	api.POST("/payoff", s.handlePayoff)
	api.GET("/settings/box-order", s.handleGetBoxOrder)
	api.PUT("/settings/box-order", s.handlePutBoxOrder)
	return e
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			s.log.Info().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Err(err).
				Msg("request")
			return err
		}
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
