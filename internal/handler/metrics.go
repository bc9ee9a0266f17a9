package handler

import (
	"fmt"
	"net/http"

	"github.com/penshort/userconsole/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "console_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "console_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)
	writeMetric(w, "console_logouts_total %d\n", snap.Logouts)
	writeMetric(w, "console_gate_redirects_total %d\n", snap.GateRedirects)

	writeMetric(w, "console_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "console_users_updated_total %d\n", snap.UsersUpdated)
	writeMetric(w, "console_users_deleted_total{status=\"success\"} %d\n", snap.UsersDeleted)
	writeMetric(w, "console_users_deleted_total{status=\"failed\"} %d\n", snap.UserDeletesFailed)

	writeMetric(w, "console_api_calls_total %d\n", snap.APICallCount)
	writeMetric(w, "console_api_call_errors_total %d\n", snap.APICallErrors)
	writeMetric(w, "console_api_call_duration_seconds_count %d\n", snap.APICallCount)
	writeMetric(w, "console_api_call_duration_seconds_sum %.6f\n", float64(snap.APICallDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
