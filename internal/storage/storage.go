// Package storage provides the key-value scopes that hold browser state
// (the durable and session-scoped stores) on the console side.
package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Scope kinds.
const (
	KindDurable = "durable"
	KindSession = "session"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage is a single browser-scoped key-value store.
// It mirrors the getItem/setItem/removeItem contract of web storage.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Backend is a flat namespace with per-entry expiry shared by all scopes.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open creates the backend named by kind.
func Open(ctx context.Context, kind, redisURL, databaseURL string) (Backend, error) {
	switch kind {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendRedis:
		return NewRedis(ctx, redisURL)
	case BackendPostgres:
		return NewPostgres(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

// Namespace derives the key namespace for a scope from its cookie value.
// Only the BLAKE2b digest of the cookie reaches the backend.
func Namespace(kind, id string) string {
	sum := blake2b.Sum256([]byte(id))
	return kind + ":" + hex.EncodeToString(sum[:16])
}

type scope struct {
	backend   Backend
	namespace string
	ttl       time.Duration
}

// Scope adapts a backend to a Storage confined to namespace.
// Every write refreshes the entry's ttl; zero means no expiry.
func Scope(backend Backend, namespace string, ttl time.Duration) Storage {
	return &scope{backend: backend, namespace: namespace, ttl: ttl}
}

func (s *scope) key(k string) string {
	return s.namespace + ":" + k
}

func (s *scope) Get(ctx context.Context, key string) (string, bool, error) {
	return s.backend.Get(ctx, s.key(key))
}

func (s *scope) Set(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, s.key(key), value, s.ttl)
}

func (s *scope) Remove(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.key(key))
}
