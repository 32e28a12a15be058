// Package middleware is the http middleware the api mounts: chi and cors
// wrappers plus the zerolog access log, panic recovery and bearer auth
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	pstrings "botdesk/internal/platform/strings"
)

// Middleware is the standard net/http decorator
type Middleware = func(http.Handler) http.Handler

// RequestID reuses an incoming X-Request-Id or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

func NoCache() Middleware { return chimw.NoCache }

func StripSlashes() Middleware { return chimw.StripSlashes }

func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress gzips responses at level for the content types chi compresses by default
func Compress(level int) Middleware { return chimw.Compress(level) }

// CORSOptions is the subset of cors.Options the api sets
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS answers preflights; empty lists fall back to what the admin ui sends
func CORS(o CORSOptions) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"}),
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         o.MaxAge,
	})
}
