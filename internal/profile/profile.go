// Package profile stores the student's display identity.
package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/readhero/internal/store"
)

// Profile identifies the student on certificates and in the instructor
// roster.
type Profile struct {
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
}

// Complete reports whether the profile is filled in enough to attribute
// work to a student.
func (p Profile) Complete() bool {
	return p.Name != ""
}

// Load returns the stored profile, or a zero profile when none is set or
// the stored value is unreadable.
func Load(ctx context.Context, states store.StateRepo) (Profile, error) {
	var p Profile
	if _, err := store.LoadState(ctx, states, store.KeyProfile, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save trims and persists the profile. An empty name is refused so the
// roster never accumulates anonymous rows.
func Save(ctx context.Context, states store.StateRepo, p Profile) (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.ClassName = strings.TrimSpace(p.ClassName)
	if p.Name == "" {
		return Profile{}, errors.New("profile: name required")
	}
	if err := states.Set(ctx, store.KeyProfile, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
