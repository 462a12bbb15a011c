package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/rishabhsai/RishBOT/internal/config"
)

// CORS lets the browser extension and local dev pages call the relay.
// A nil config disables the policy.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{headerRequestID, headerTraceID},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return c.Handler
}
