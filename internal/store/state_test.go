package store

import (
	"context"
	"testing"
)

type fakeEntity struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

func TestLoadState_Absent(t *testing.T) {
	repo := NewMemoryState()
	var e fakeEntity
	ok, err := LoadState(context.Background(), repo, "missing", &e)
	if err != nil {
		t.Fatalf("LoadState error: %v", err)
	}
	if ok {
		t.Error("LoadState reported ok for absent key")
	}
}

func TestLoadState_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryState()
	if err := repo.Set(ctx, "e", fakeEntity{Count: 3, Name: "x"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var e fakeEntity
	ok, err := LoadState(ctx, repo, "e", &e)
	if err != nil {
		t.Fatalf("LoadState error: %v", err)
	}
	if !ok {
		t.Fatal("LoadState reported absent for stored key")
	}
	if e.Count != 3 || e.Name != "x" {
		t.Errorf("loaded %+v, want {3 x}", e)
	}
}

func TestLoadState_CorruptSelfHeals(t *testing.T) {
	repo := NewMemoryState()
	repo.SetRaw("e", []byte(`{"count": "not a number"`))

	var e fakeEntity
	ok, err := LoadState(context.Background(), repo, "e", &e)
	if err != nil {
		t.Fatalf("LoadState error: %v", err)
	}
	if ok {
		t.Error("LoadState reported ok for corrupt value; want fresh-start fallback")
	}
}

func TestLoadState_CorruptLeavesDestUntouched(t *testing.T) {
	repo := NewMemoryState()
	// Valid JSON whose second field mismatches the struct: the decoder has
	// already accepted count by the time it fails on name.
	repo.SetRaw("e", []byte(`{"count": 9999, "name": 12}`))

	var e fakeEntity
	ok, err := LoadState(context.Background(), repo, "e", &e)
	if err != nil {
		t.Fatalf("LoadState error: %v", err)
	}
	if ok {
		t.Error("LoadState reported ok for corrupt value")
	}
	if e.Count != 0 || e.Name != "" {
		t.Errorf("corrupt value leaked into dest: %+v, want zero value", e)
	}
}

func TestRemove_AbsentKeyIsNoop(t *testing.T) {
	repo := NewMemoryState()
	if err := repo.Remove(context.Background(), "missing"); err != nil {
		t.Errorf("Remove(absent) = %v, want nil", err)
	}
}

func TestStudentKeys_ExcludeInstructorState(t *testing.T) {
	for _, k := range StudentKeys() {
		if k == KeyAdminHash || k == KeyAdminSalt || k == KeyRoster {
			t.Errorf("StudentKeys contains instructor key %q", k)
		}
	}
	if len(AllKeys()) != len(StudentKeys())+3 {
		t.Errorf("AllKeys() = %d keys, want %d", len(AllKeys()), len(StudentKeys())+3)
	}
}
