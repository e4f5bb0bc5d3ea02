// Package router builds the echo instance and registers the API routes.
package router

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinetour/internal/handler"
	"github.com/iliyamo/cinetour/internal/logging"
)

// NewServer returns an echo instance with the envelope error handler,
// panic recovery, request logging and a per-request context deadline.
// A zero timeout disables the deadline.
func NewServer(logger *slog.Logger, timeout time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(logger))
	if timeout > 0 {
		e.Use(echomw.ContextTimeout(timeout))
	}
	return e
}

// RegisterRoutes registers the probes.  ready may be nil, in which case
// only /healthz is exposed.
func RegisterRoutes(e *echo.Echo, ready echo.HandlerFunc) {
	e.GET("/healthz", handler.Health)
	if ready != nil {
		e.GET("/readyz", ready)
	}
}

// RegisterPublic registers the listings that need no session.  cache wraps
// the cinema and programme listings only: user data changes with every
// profile update and is served fresh.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/cinemas", p.GetCinemas, cache)
	e.GET("/programmes", p.GetProgrammes, cache)
	e.GET("/programmes/:programmeId", p.GetProgramme, cache)
	e.GET("/users", p.GetUsers)
}
