package adminauth

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/readhero/internal/store"
)

func TestLoginBeforeSetup(t *testing.T) {
	g := NewGuard(store.NewMemoryState(), nil)
	if err := g.Login(context.Background(), "anything"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Login = %v, want ErrNotConfigured", err)
	}
}

func TestSetupAndLogin(t *testing.T) {
	g := NewGuard(store.NewMemoryState(), nil)
	ctx := context.Background()

	if err := g.Setup(ctx, "reading-rocks"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	ok, err := g.Configured(ctx)
	if err != nil || !ok {
		t.Fatalf("Configured = %v, %v, want true", ok, err)
	}

	if err := g.Login(ctx, "reading-rocks"); err != nil {
		t.Errorf("correct password refused: %v", err)
	}
	if err := g.Login(ctx, "wrong"); !errors.Is(err, ErrMismatch) {
		t.Errorf("wrong password: got %v, want ErrMismatch", err)
	}
}

func TestSetupReplacesCredential(t *testing.T) {
	g := NewGuard(store.NewMemoryState(), nil)
	ctx := context.Background()

	if err := g.Setup(ctx, "first"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := g.Setup(ctx, "second"); err != nil {
		t.Fatalf("second Setup: %v", err)
	}
	if err := g.Login(ctx, "first"); !errors.Is(err, ErrMismatch) {
		t.Errorf("old password still accepted: %v", err)
	}
	if err := g.Login(ctx, "second"); err != nil {
		t.Errorf("new password refused: %v", err)
	}
}

func TestEmptyPasswordRejected(t *testing.T) {
	g := NewGuard(store.NewMemoryState(), nil)
	if err := g.Setup(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestSaltedDigest(t *testing.T) {
	// Same password, different salt, different digest.
	a := SHA256Digest("aaaaaaaaaaaaaaaa", "pw")
	b := SHA256Digest("bbbbbbbbbbbbbbbb", "pw")
	if a == b {
		t.Error("digest ignores the salt")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex characters", len(a))
	}
}

func TestInjectedDigest(t *testing.T) {
	var seenSalt string
	g := NewGuard(store.NewMemoryState(), func(salt, password string) string {
		seenSalt = salt
		return "fixed:" + password
	})
	ctx := context.Background()

	if err := g.Setup(ctx, "pw"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if len(seenSalt) != 32 {
		t.Errorf("salt length = %d, want 32 hex characters", len(seenSalt))
	}
	if err := g.Login(ctx, "pw"); err != nil {
		t.Errorf("Login with injected digest: %v", err)
	}
}
