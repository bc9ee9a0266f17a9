package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(status string) {}

// IncLogout is a no-op.
func (n *NoopRecorder) IncLogout() {}

// IncGateRedirect is a no-op.
func (n *NoopRecorder) IncGateRedirect() {}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncUserUpdated is a no-op.
func (n *NoopRecorder) IncUserUpdated() {}

// IncUserDeleted is a no-op.
func (n *NoopRecorder) IncUserDeleted() {}

// IncUserDeleteFailed is a no-op.
func (n *NoopRecorder) IncUserDeleteFailed() {}

// ObserveAPICall is a no-op.
func (n *NoopRecorder) ObserveAPICall(op string, status int, duration time.Duration) {}
