package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/penshort/userconsole/internal/credentials"
	"github.com/penshort/userconsole/internal/metrics"
	"github.com/penshort/userconsole/internal/storage"
	"github.com/penshort/userconsole/internal/testutil"
)

func TestRequireToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		token        string
		wantStatus   int
		wantNext     bool
		wantRedirect uint64
	}{
		{name: "no token", wantStatus: http.StatusSeeOther, wantRedirect: 1},
		{name: "token present", token: "abc", wantStatus: http.StatusOK, wantNext: true},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := credentials.NewProvider(storage.NewMemory(), time.Hour, time.Hour)
			recorder := metrics.NewInMemory()

			scopes := credentials.Scopes{DurableID: ulid.Make().String(), SessionID: ulid.Make().String()}
			ctx := credentials.ContextWithScopes(context.Background(), scopes)
			if tt.token != "" {
				if err := provider.For(ctx).SetToken(ctx, tt.token, true); err != nil {
					t.Fatalf("SetToken: %v", err)
				}
			}

			called := false
			handler := RequireToken(GateConfig{
				Logger:      testutil.DiscardLogger(),
				Credentials: provider,
				Metrics:     recorder,
			})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantNext {
				t.Errorf("next called = %v, want %v", called, tt.wantNext)
			}
			if tt.wantStatus == http.StatusSeeOther {
				if loc := rec.Header().Get("Location"); loc != "/login" {
					t.Errorf("Location = %q, want /login", loc)
				}
			}
			if got := recorder.Snapshot().GateRedirects; got != tt.wantRedirect {
				t.Errorf("gate redirects = %d, want %d", got, tt.wantRedirect)
			}
		})
	}
}

func TestRequireToken_NoScopes(t *testing.T) {
	t.Parallel()

	provider := credentials.NewProvider(storage.NewMemory(), time.Hour, time.Hour)
	handler := RequireToken(GateConfig{Credentials: provider})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next must not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/create-user", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
