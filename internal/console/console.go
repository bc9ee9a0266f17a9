package console

import (
	"context"
	"log/slog"
	"time"

	"github.com/penshort/userconsole/internal/metrics"
	"github.com/penshort/userconsole/internal/model"
)

// Routes the screens redirect between.
const (
	RouteListing = "/"
	RouteLogin   = "/login"
	RouteCreate  = "/create-user"
)

// EditRoute returns the edit screen route for id.
func EditRoute(id model.UserID) string {
	return "/edit-user/" + id.String()
}

// DefaultCreateRedirectDelay is how long the create confirmation stays up.
const DefaultCreateRedirectDelay = 1500 * time.Millisecond

// Phase is where a form screen is in its idle → success|error cycle.
// Pages render after the API call resolves, so there is no in-flight phase.
type Phase int

// Screen phases.
const (
	PhaseIdle Phase = iota
	PhaseSuccess
	PhaseError
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*model.LoginResponse, error)
}

// Users is the part of the user API the screens call.
type Users interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	CreateUser(ctx context.Context, input model.NewUser) (*model.User, error)
	UpdateUser(ctx context.Context, id model.UserID, input model.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id model.UserID) error
}

// TokenStore persists and clears the session token.
type TokenStore interface {
	SetToken(ctx context.Context, token string, remember bool) error
	ClearToken(ctx context.Context) error
}

// Console runs the screen flows. It holds no per-browser state.
type Console struct {
	logger              *slog.Logger
	metrics             metrics.Recorder
	createRedirectDelay time.Duration
}

// New creates a Console. A non-positive delay selects DefaultCreateRedirectDelay.
func New(logger *slog.Logger, recorder metrics.Recorder, createRedirectDelay time.Duration) *Console {
	if createRedirectDelay <= 0 {
		createRedirectDelay = DefaultCreateRedirectDelay
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Console{
		logger:              logger,
		metrics:             recorder,
		createRedirectDelay: createRedirectDelay,
	}
}
