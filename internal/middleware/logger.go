package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger returns a middleware that logs HTTP requests. Proxied payloads are
// never captured and credentials are reduced to their scheme: this layer
// fronts an authenticated API and must not leak tokens into logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		logger := log.With().
			Str("request_id", c.GetString(ContextRequestID)).
			Str("client_ip", clientIP).
			Str("method", method).
			Str("path", path).
			Int("status", statusCode).
			Dur("latency", latency).
			Str("user_agent", c.Request.UserAgent()).
			Str("auth", authScheme(c.GetHeader("Authorization"))).
			Logger()

		switch {
		case statusCode >= 500:
			logger.Error().Msg("Server error")
		case statusCode >= 400:
			logger.Warn().Msg("Client error")
		default:
			logger.Info().Msg("Request processed")
		}
	}
}

// authScheme reports only the scheme of the Authorization header, never the
// credential itself.
func authScheme(header string) string {
	if header == "" {
		return "none"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 {
		return strings.ToLower(parts[0])
	}
	return "opaque"
}
