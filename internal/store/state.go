package store

import (
	"context"
	"encoding/json"
	"reflect"
)

// Logical state keys. Each key maps to one persisted entity owned by a
// single domain package.
const (
	KeyProfile     = "profile"
	KeyProgress    = "progress"
	KeySkills      = "skills-map"
	KeyCompleted   = "completed-passages"
	KeyDaily       = "daily-state"
	KeyBadges      = "badges"
	KeyCertificate = "certificate"
	KeyAdminHash   = "admin-credential-hash"
	KeyAdminSalt   = "admin-credential-salt"
	KeyRoster      = "student-snapshot-roster"
)

// StudentKeys returns the keys holding per-student state. Resetting a
// student clears these and leaves instructor credentials and the roster.
func StudentKeys() []string {
	return []string{
		KeyProfile,
		KeyProgress,
		KeySkills,
		KeyCompleted,
		KeyDaily,
		KeyBadges,
		KeyCertificate,
	}
}

// AllKeys returns every logical state key.
func AllKeys() []string {
	return append(StudentKeys(), KeyAdminHash, KeyAdminSalt, KeyRoster)
}

// StateRepo is the narrow persistence interface the engine works against.
// Values are JSON-serializable records; a missing key is not an error.
type StateRepo interface {
	// Get returns the raw JSON stored under key, or ok=false if absent.
	Get(ctx context.Context, key string) (raw json.RawMessage, ok bool, err error)

	// Set stores v under key, JSON-encoded, replacing any previous value.
	Set(ctx context.Context, key string, v any) error

	// Remove deletes the value under key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}

// LoadState reads the entity under key into dest. Absent or corrupt stored
// JSON leaves dest untouched and returns false, so callers fall back to the
// entity's default value rather than failing. Only storage-level errors
// propagate.
func LoadState(ctx context.Context, repo StateRepo, key string, dest any) (bool, error) {
	raw, ok, err := repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	// Decode into a scratch value first: json.Unmarshal keeps the fields it
	// decoded before hitting a type error, and a half-populated dest is not
	// a fresh start.
	scratch := reflect.New(reflect.TypeOf(dest).Elem())
	if err := json.Unmarshal(raw, scratch.Interface()); err != nil {
		// Corrupt state self-heals as a fresh start for this entity.
		return false, nil
	}
	reflect.ValueOf(dest).Elem().Set(scratch.Elem())
	return true, nil
}
