package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// corsMaxAge is how long browsers may cache a preflight response.
const corsMaxAge = 12 * time.Hour

// createCORSMiddleware returns nil unless CORS is enabled with at least one usable origin.
// Delegation clients normally call the API server-to-server, so CORS stays off by default.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled without any allowed origin, skipping middleware")
		return nil
	}
	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins: origins,
		// Matches the verbs registered under /v1.
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}

// parseOrigins splits a comma-separated origin list, dropping blank entries.
func parseOrigins(originsStr string) []string {
	if originsStr == "" {
		return nil
	}
	return lo.Compact(lo.Map(strings.Split(originsStr, ","), func(origin string, _ int) string {
		return strings.TrimSpace(origin)
	}))
}
