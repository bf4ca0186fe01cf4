package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultBodyLimit accommodates base64 photos and signatures.
const DefaultBodyLimit = "20M"

// RouterConfig tunes the HTTP surface around the API routes.
type RouterConfig struct {
	// RateRPS and RateBurst configure the per-actor limiter. A zero RateRPS
	// disables it.
	RateRPS   float64
	RateBurst int

	// AttachmentDir, when set, is served under AttachmentPrefix.
	AttachmentDir    string
	AttachmentPrefix string

	SwaggerEnabled bool
}

// NewRouter builds the echo instance: middleware, health, metrics, the API
// document and the /api/v1 routes of s.
func NewRouter(s *Server, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(ActorMiddleware())
	e.Use(AccessLog())
	e.Use(Metrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET(OpenAPIPath, ServeOpenAPI)
	if cfg.SwaggerEnabled {
		e.GET("/swagger/*", SwaggerUI())
	}
	if cfg.AttachmentDir != "" {
		prefix := cfg.AttachmentPrefix
		if prefix == "" {
			prefix = "/attachments"
		}
		e.Static(prefix, cfg.AttachmentDir)
	}

	api := e.Group("/api/v1", middleware.BodyLimit(DefaultBodyLimit))
	if cfg.RateRPS > 0 {
		api.Use(NewRateLimiter(cfg.RateRPS, cfg.RateBurst).Middleware())
	}
	s.RegisterRoutes(api)

	return e
}
