package middleware

import (
	"log/slog"
	"net/http"

	"shotboard/internal/shared/config"

	"github.com/rs/cors"
)

var corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

type CORSMiddleware struct {
	*cors.Cors
}

// NewCORS allows the dashboard frontend origin to drive sessions.
func NewCORS(cfg config.FrontendConfig) *CORSMiddleware {
	logger := slog.With("component", "cors", "operation", "setup")
	logger.Debug("Setting up CORS middleware")

	allowedOrigins := []string{cfg.URL}

	corsConfig := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: corsMethods,
		AllowedHeaders: []string{"Content-Type"},
		Debug:          cfg.CORSDebug,
	})

	logger.Info("CORS middleware configured",
		"allowed_origins", allowedOrigins,
		"allowed_methods", corsMethods,
		"debug_mode", cfg.CORSDebug,
	)

	return &CORSMiddleware{corsConfig}
}

func (c *CORSMiddleware) Middleware(h http.Handler) http.Handler {
	return c.Cors.Handler(h)
}
