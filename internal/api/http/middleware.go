package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/security"
)

type contextKey string

const operatorIDKey contextKey = "operator-id"

// OperatorIDFromContext returns the operator attached by AuthMiddleware.
func OperatorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorIDKey).(string)
	return id, ok && id != ""
}

// AuthMiddleware checks the bearer token on protected routes. In bypass
// mode every request runs as the demo operator.
func AuthMiddleware(cfg config.AuthConfig, tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.GetSecurityLevel(routeKey(r)) == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}

			if cfg.Mode != config.AuthModeJWT {
				ctx := context.WithValue(r.Context(), operatorIDKey, cfg.DemoOperatorID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				logger.Debug("Rejected token", "path", r.URL.Path, "error", err)
				writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), operatorIDKey, claims.OperatorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// routeKey renders the matched route as "METHOD /template" for the
// security table.
func routeKey(r *http.Request) string {
	path := r.URL.Path
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			path = tpl
		}
	}
	return r.Method + " " + path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
