package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/penshort/userconsole/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewInMemory()
	recorder.IncLogin(metrics.LoginSuccess)
	recorder.IncLogin(metrics.LoginFailed)
	recorder.IncLogin(metrics.LoginFailed)
	recorder.IncUserCreated()
	recorder.IncUserDeleteFailed()
	recorder.ObserveAPICall("list_users", http.StatusOK, 250*time.Millisecond)
	recorder.ObserveAPICall("list_users", http.StatusInternalServerError, 250*time.Millisecond)

	h := NewMetricsHandler(recorder)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, line := range []string{
		`console_logins_total{status="success"} 1`,
		`console_logins_total{status="failed"} 2`,
		`console_users_created_total 1`,
		`console_users_deleted_total{status="failed"} 1`,
		`console_api_calls_total 2`,
		`console_api_call_errors_total 1`,
		`console_api_call_duration_seconds_sum 0.500000`,
	} {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("metrics output missing %q:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	t.Parallel()

	h := NewMetricsHandler(nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
