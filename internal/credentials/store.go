// Package credentials keeps the session token in the browser's storage
// scopes and builds the Authorization header from it.
package credentials

import (
	"context"
	"fmt"

	"github.com/penshort/userconsole/internal/storage"
)

// Storage keys.
const (
	TokenKey    = "token"
	RememberKey = "rememberMe"
)

// Store is the credential store for one browser.
//
// The durable copy of the token is the only one read back: it is written on
// every login, with the session copy kept alongside when "remember me" is off.
type Store struct {
	durable storage.Storage
	session storage.Storage
}

// New creates a Store over the durable and session-scoped storages.
func New(durable, session storage.Storage) *Store {
	return &Store{durable: durable, session: session}
}

// HasToken reports whether a durable token is present.
// Storage failures count as no token.
func (s *Store) HasToken(ctx context.Context) bool {
	return s.token(ctx) != ""
}

// AuthHeader returns the bearer header for the current token, or an empty map.
func (s *Store) AuthHeader(ctx context.Context) map[string]string {
	token := s.token(ctx)
	if token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// SetToken persists token. remember additionally flags the durable scope;
// otherwise the session scope also receives a copy.
func (s *Store) SetToken(ctx context.Context, token string, remember bool) error {
	if err := s.durable.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("store durable token: %w", err)
	}

	if remember {
		if err := s.durable.Set(ctx, RememberKey, "true"); err != nil {
			return fmt.Errorf("store remember flag: %w", err)
		}
		return nil
	}

	if err := s.session.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

// ClearToken removes the durable token.
func (s *Store) ClearToken(ctx context.Context) error {
	if err := s.durable.Remove(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear durable token: %w", err)
	}
	return nil
}

// Remembered reports whether the last login asked to be remembered.
func (s *Store) Remembered(ctx context.Context) bool {
	v, ok, err := s.durable.Get(ctx, RememberKey)
	return err == nil && ok && v == "true"
}

func (s *Store) token(ctx context.Context) string {
	v, ok, err := s.durable.Get(ctx, TokenKey)
	if err != nil || !ok {
		return ""
	}
	return v
}
