package profile

import (
	"context"
	"testing"

	"github.com/abhisek/readhero/internal/store"
)

func TestLoadEmpty(t *testing.T) {
	p, err := Load(context.Background(), store.NewMemoryState())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Complete() {
		t.Error("zero profile should not be complete")
	}
}

func TestSaveAndLoad(t *testing.T) {
	states := store.NewMemoryState()
	ctx := context.Background()

	saved, err := Save(ctx, states, Profile{Name: "  Maya ", ClassName: " 5A "})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Name != "Maya" || saved.ClassName != "5A" {
		t.Errorf("whitespace not trimmed: %+v", saved)
	}

	p, err := Load(ctx, states)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != saved {
		t.Errorf("Load = %+v, want %+v", p, saved)
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	_, err := Save(context.Background(), store.NewMemoryState(), Profile{ClassName: "5A"})
	if err == nil {
		t.Fatal("expected error for empty name")
	}
}
