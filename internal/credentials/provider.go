package credentials

import (
	"context"
	"errors"
	"time"

	"github.com/penshort/userconsole/internal/storage"
)

// ErrNoScope is returned when writing through a Store whose request
// carried no browser scope cookies.
var ErrNoScope = errors.New("no browser scope on request")

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const scopesContextKey contextKey = "browser_scopes"

// Scopes identifies a browser's durable and session-scoped storage.
type Scopes struct {
	DurableID string
	SessionID string
}

// ContextWithScopes adds Scopes to the context.
func ContextWithScopes(ctx context.Context, scopes Scopes) context.Context {
	return context.WithValue(ctx, scopesContextKey, scopes)
}

// ScopesFromContext retrieves Scopes from the context.
func ScopesFromContext(ctx context.Context) (Scopes, bool) {
	scopes, ok := ctx.Value(scopesContextKey).(Scopes)
	return scopes, ok
}

// Provider builds per-request Stores on a shared backend.
type Provider struct {
	backend    storage.Backend
	durableTTL time.Duration
	sessionTTL time.Duration
}

// NewProvider creates a Provider. The TTLs bound how long each scope
// survives without writes.
func NewProvider(backend storage.Backend, durableTTL, sessionTTL time.Duration) *Provider {
	return &Provider{
		backend:    backend,
		durableTTL: durableTTL,
		sessionTTL: sessionTTL,
	}
}

// For returns the Store of the browser identified by ctx.
func (p *Provider) For(ctx context.Context) *Store {
	scopes, ok := ScopesFromContext(ctx)
	if !ok || scopes.DurableID == "" || scopes.SessionID == "" {
		return New(unscoped{}, unscoped{})
	}

	return New(
		storage.Scope(p.backend, storage.Namespace(storage.KindDurable, scopes.DurableID), p.durableTTL),
		storage.Scope(p.backend, storage.Namespace(storage.KindSession, scopes.SessionID), p.sessionTTL),
	)
}

// unscoped reads as empty and refuses writes.
type unscoped struct{}

func (unscoped) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (unscoped) Set(ctx context.Context, key, value string) error {
	return ErrNoScope
}

func (unscoped) Remove(ctx context.Context, key string) error {
	return nil
}
