package middleware

import (
	"log/slog"
	"net/http"

	"github.com/penshort/userconsole/internal/credentials"
	"github.com/penshort/userconsole/internal/metrics"
)

// GateConfig holds dependencies for the auth gate.
type GateConfig struct {
	Logger      *slog.Logger
	Credentials *credentials.Provider
	Metrics     metrics.Recorder
	// LoginPath is where visitors without a token are sent.
	LoginPath string
}

// RequireToken redirects requests without a stored token to the login page.
// The check runs before the wrapped handler, so no protected page issues an
// API call on behalf of an unauthenticated visitor.
func RequireToken(cfg GateConfig) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !cfg.Credentials.For(ctx).HasToken(ctx) {
				if cfg.Logger != nil {
					cfg.Logger.Debug("auth gate redirect",
						slog.String("request_id", GetRequestID(ctx)),
						slog.String("path", r.URL.Path),
					)
				}
				cfg.Metrics.IncGateRedirect()
				http.Redirect(w, r, cfg.LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
