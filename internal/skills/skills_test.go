package skills

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		id   int
		want bool
	}{
		{0, false},
		{1, true},
		{8, true},
		{15, true},
		{16, false},
		{-3, false},
	}
	for _, tt := range tests {
		if got := IsValid(tt.id); got != tt.want {
			t.Errorf("IsValid(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("All() returned %d skills, want %d", len(all), Count)
	}
	for i, s := range all {
		if s.ID != i+1 {
			t.Errorf("All()[%d].ID = %d, want %d", i, s.ID, i+1)
		}
		if s.Name == "" {
			t.Errorf("skill %d has empty name", s.ID)
		}
	}
}

func TestName_UnknownFallsBack(t *testing.T) {
	if got := Name(99); got != "Skill 99" {
		t.Errorf("Name(99) = %q", got)
	}
}
