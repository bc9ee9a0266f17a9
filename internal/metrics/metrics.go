// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Login outcome labels.
const (
	LoginSuccess = "success"
	LoginFailed  = "failed"
)

// Recorder captures metric events for the console.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Session metrics
	IncLogin(status string) // status: "success" or "failed"
	IncLogout()
	IncGateRedirect()

	// User management metrics
	IncUserCreated()
	IncUserUpdated()
	IncUserDeleted()
	IncUserDeleteFailed()

	// Upstream API metrics; status is 0 for transport failures
	ObserveAPICall(op string, status int, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
