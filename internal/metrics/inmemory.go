package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	LoginsSucceeded        uint64
	LoginsFailed           uint64
	Logouts                uint64
	GateRedirects          uint64
	UsersCreated           uint64
	UsersUpdated           uint64
	UsersDeleted           uint64
	UserDeletesFailed      uint64
	APICallCount           uint64
	APICallErrors          uint64
	APICallDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	loginsSucceeded        uint64
	loginsFailed           uint64
	logouts                uint64
	gateRedirects          uint64
	usersCreated           uint64
	usersUpdated           uint64
	usersDeleted           uint64
	userDeletesFailed      uint64
	apiCallCount           uint64
	apiCallErrors          uint64
	apiCallDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		LoginsSucceeded:        atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:           atomic.LoadUint64(&m.loginsFailed),
		Logouts:                atomic.LoadUint64(&m.logouts),
		GateRedirects:          atomic.LoadUint64(&m.gateRedirects),
		UsersCreated:           atomic.LoadUint64(&m.usersCreated),
		UsersUpdated:           atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted:           atomic.LoadUint64(&m.usersDeleted),
		UserDeletesFailed:      atomic.LoadUint64(&m.userDeletesFailed),
		APICallCount:           atomic.LoadUint64(&m.apiCallCount),
		APICallErrors:          atomic.LoadUint64(&m.apiCallErrors),
		APICallDurationTotalNs: atomic.LoadInt64(&m.apiCallDurationTotalNs),
	}
}

// IncLogin increments the login counter for status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == LoginSuccess {
		atomic.AddUint64(&m.loginsSucceeded, 1)
		return
	}
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncLogout increments logout counter.
func (m *InMemoryRecorder) IncLogout() {
	atomic.AddUint64(&m.logouts, 1)
}

// IncGateRedirect increments auth gate redirect counter.
func (m *InMemoryRecorder) IncGateRedirect() {
	atomic.AddUint64(&m.gateRedirects, 1)
}

// IncUserCreated increments user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserUpdated increments user updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments user deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}

// IncUserDeleteFailed increments failed delete counter.
func (m *InMemoryRecorder) IncUserDeleteFailed() {
	atomic.AddUint64(&m.userDeletesFailed, 1)
}

// ObserveAPICall records one upstream call. Any status outside 2xx is an error.
func (m *InMemoryRecorder) ObserveAPICall(op string, status int, duration time.Duration) {
	atomic.AddUint64(&m.apiCallCount, 1)
	atomic.AddInt64(&m.apiCallDurationTotalNs, duration.Nanoseconds())
	if status < 200 || status > 299 {
		atomic.AddUint64(&m.apiCallErrors, 1)
	}
}
