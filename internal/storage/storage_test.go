package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNamespace_Deterministic(t *testing.T) {
	t.Parallel()

	a := Namespace(KindDurable, "01HZX3V1Q6W0AB")
	b := Namespace(KindDurable, "01HZX3V1Q6W0AB")

	if a != b {
		t.Errorf("Namespace should be deterministic: %q != %q", a, b)
	}
	if !strings.HasPrefix(a, "durable:") {
		t.Errorf("Namespace(%q) = %q, want durable: prefix", KindDurable, a)
	}
}

func TestNamespace_HidesCookieValue(t *testing.T) {
	t.Parallel()

	id := "01HZX3V1Q6W0ABCDEF"
	ns := Namespace(KindSession, id)

	if strings.Contains(ns, id) {
		t.Errorf("Namespace leaks the raw cookie value: %q", ns)
	}
	// kind prefix + 32 hex chars
	if len(ns) != len("session:")+32 {
		t.Errorf("Namespace length = %d, want %d", len(ns), len("session:")+32)
	}
}

func TestNamespace_Different(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		kind1 string
		id1   string
		kind2 string
		id2   string
	}{
		{"different ids", KindDurable, "a", KindDurable, "b"},
		{"different kinds", KindDurable, "a", KindSession, "a"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if Namespace(tt.kind1, tt.id1) == Namespace(tt.kind2, tt.id2) {
				t.Error("expected distinct namespaces")
			}
		})
	}
}

func TestScope_Isolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemory()

	alice := Scope(backend, Namespace(KindDurable, "alice"), 0)
	bob := Scope(backend, Namespace(KindDurable, "bob"), 0)

	if err := alice.Set(ctx, "token", "alice-token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok, _ := bob.Get(ctx, "token"); ok {
		t.Error("scopes with different namespaces must not share keys")
	}

	got, ok, _ := alice.Get(ctx, "token")
	if !ok || got != "alice-token" {
		t.Errorf("alice.Get() = %q, %v", got, ok)
	}

	if err := alice.Remove(ctx, "token"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if backend.Len() != 0 {
		t.Errorf("backend should be empty after Remove, Len() = %d", backend.Len())
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	b, err := Open(ctx, BackendMemory, "", "")
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	if _, ok := b.(*Memory); !ok {
		t.Errorf("Open(memory) returned %T", b)
	}

	if _, err := Open(ctx, "etcd", "", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(etcd) error = %v, want ErrUnknownBackend", err)
	}

	if _, err := Open(ctx, BackendRedis, "not a url", ""); err == nil {
		t.Error("Open(redis) with a bad URL should fail")
	}
}
