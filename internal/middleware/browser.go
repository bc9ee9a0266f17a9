package middleware

import (
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/penshort/userconsole/internal/credentials"
)

// Browser scope cookies.
const (
	DurableCookie = "console_id"
	SessionCookie = "console_sid"
)

// BrowserConfig holds configuration for browser scope cookies.
type BrowserConfig struct {
	// DurableTTL is the Max-Age of the durable scope cookie.
	DurableTTL time.Duration
	// Secure marks both cookies Secure.
	Secure bool
}

// BrowserScopes identifies the calling browser.
//
// The durable cookie outlives the browser session and backs the durable
// storage scope. The session cookie carries no Max-Age and goes away when
// the browser closes, taking the session scope with it. Missing or malformed
// cookies are replaced with fresh ULIDs.
func BrowserScopes(cfg BrowserConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			durableID, ok := scopeCookie(r, DurableCookie)
			if !ok {
				http.SetCookie(w, &http.Cookie{
					Name:     DurableCookie,
					Value:    durableID,
					Path:     "/",
					MaxAge:   int(cfg.DurableTTL / time.Second),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sessionID, ok := scopeCookie(r, SessionCookie)
			if !ok {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := credentials.ContextWithScopes(r.Context(), credentials.Scopes{
				DurableID: durableID,
				SessionID: sessionID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// scopeCookie returns the cookie's ULID, or a new one and false.
func scopeCookie(r *http.Request, name string) (string, bool) {
	if c, err := r.Cookie(name); err == nil {
		if id, err := ulid.ParseStrict(c.Value); err == nil {
			return id.String(), true
		}
	}
	return ulid.Make().String(), false
}
