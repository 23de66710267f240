// Package adminauth gates the instructor surface behind a salted password.
// This is a deterrent for a classroom tool, not a hardened credential store:
// anyone with the database file can read or replace the stored digest.
package adminauth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/abhisek/readhero/internal/store"
)

// ErrMismatch is returned on a wrong password. It carries no detail about
// which part failed.
var ErrMismatch = errors.New("adminauth: password mismatch")

// ErrNotConfigured is returned by Login before Setup has run.
var ErrNotConfigured = errors.New("adminauth: no instructor password configured")

// Digest turns salt+password into a stored credential string. Injectable so
// tests can pin the output.
type Digest func(salt, password string) string

// SHA256Digest is the production digest: lowercase hex of
// SHA-256(salt || password).
func SHA256Digest(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

const saltBytes = 16

// Guard owns the stored instructor credential.
type Guard struct {
	states store.StateRepo
	digest Digest
}

// NewGuard uses SHA256Digest unless a custom digest is supplied.
func NewGuard(states store.StateRepo, digest Digest) *Guard {
	if digest == nil {
		digest = SHA256Digest
	}
	return &Guard{states: states, digest: digest}
}

// Configured reports whether a credential exists.
func (g *Guard) Configured(ctx context.Context) (bool, error) {
	var hash string
	ok, err := store.LoadState(ctx, g.states, store.KeyAdminHash, &hash)
	if err != nil {
		return false, err
	}
	return ok && hash != "", nil
}

// Setup stores a fresh salt and the digest of the new password, replacing
// any prior credential.
func (g *Guard) Setup(ctx context.Context, password string) error {
	if password == "" {
		return errors.New("adminauth: empty password")
	}

	salt, err := generateSalt()
	if err != nil {
		return err
	}
	if err := g.states.Set(ctx, store.KeyAdminSalt, salt); err != nil {
		return err
	}
	return g.states.Set(ctx, store.KeyAdminHash, g.digest(salt, password))
}

// Login checks a password attempt against the stored credential.
func (g *Guard) Login(ctx context.Context, password string) error {
	var hash, salt string
	okHash, err := store.LoadState(ctx, g.states, store.KeyAdminHash, &hash)
	if err != nil {
		return err
	}
	okSalt, err := store.LoadState(ctx, g.states, store.KeyAdminSalt, &salt)
	if err != nil {
		return err
	}
	if !okHash || !okSalt || hash == "" {
		return ErrNotConfigured
	}
	if g.digest(salt, password) != hash {
		return ErrMismatch
	}
	return nil
}

func generateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("adminauth: read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
