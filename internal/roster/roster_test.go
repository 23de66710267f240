package roster

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/readhero/internal/store"
)

func snapshot(name, class string, xp int) StudentSnapshot {
	return StudentSnapshot{
		Name:           name,
		ClassName:      class,
		XP:             xp,
		Level:          xp/200 + 1,
		TextsCompleted: 4,
		TotalCorrect:   30,
		TotalAnswered:  40,
		Mastery:        map[int]int{1: 80, 2: 67},
		LastActive:     time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestUpsertReplacesSameStudent(t *testing.T) {
	states := store.NewMemoryState()
	ctx := context.Background()
	r, err := Load(ctx, states)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := r.Upsert(ctx, snapshot("Maya", "5A", 100)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	// Case differences in identity still match the same row.
	if err := r.Upsert(ctx, snapshot("maya", "5a", 250)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := r.Upsert(ctx, snapshot("Omar", "5A", 50)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	reloaded, err := Load(ctx, states)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	rows := reloaded.Rows()
	if rows[0].Name != "maya" || rows[0].XP != 250 {
		t.Errorf("first row = %+v, want updated maya", rows[0])
	}
}

func TestRowsOrdering(t *testing.T) {
	ctx := context.Background()
	r, _ := Load(ctx, store.NewMemoryState())

	for _, s := range []StudentSnapshot{
		snapshot("Zack", "5B", 0),
		snapshot("Amal", "5B", 0),
		snapshot("Noa", "5A", 0),
	} {
		if err := r.Upsert(ctx, s); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	rows := r.Rows()
	got := []string{rows[0].Name, rows[1].Name, rows[2].Name}
	want := []string{"Noa", "Amal", "Zack"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestWriteCSVSanitizesFormulas(t *testing.T) {
	ctx := context.Background()
	r, _ := Load(ctx, store.NewMemoryState())
	if err := r.Upsert(ctx, snapshot(`=HYPERLINK("http://evil")`, "5A", 10)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(records))
	}
	if name := records[1][0]; !strings.HasPrefix(name, "'=") {
		t.Errorf("formula cell not neutralized: %q", name)
	}
	if len(records[0]) != len(records[1]) {
		t.Errorf("header width %d != row width %d", len(records[0]), len(records[1]))
	}
}

func TestSanitizeCell(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Maya", "Maya"},
		{"", ""},
		{"=1+1", "'=1+1"},
		{"+972", "'+972"},
		{"-cmd", "'-cmd"},
		{"@sum", "'@sum"},
	}
	for _, tc := range cases {
		if got := sanitizeCell(tc.in); got != tc.want {
			t.Errorf("sanitizeCell(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	ctx := context.Background()
	r, _ := Load(ctx, store.NewMemoryState())
	if err := r.Upsert(ctx, snapshot("Maya", "5A", 120)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	var buf bytes.Buffer
	if err := r.WriteXLSX(&buf); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("output does not look like an xlsx file")
	}
}

func TestFormatForPath(t *testing.T) {
	if got := FormatForPath("out.XLSX"); got != "xlsx" {
		t.Errorf("FormatForPath(out.XLSX) = %q", got)
	}
	if got := FormatForPath("roster.csv"); got != "csv" {
		t.Errorf("FormatForPath(roster.csv) = %q", got)
	}
}

func TestClear(t *testing.T) {
	states := store.NewMemoryState()
	ctx := context.Background()
	r, _ := Load(ctx, states)
	if err := r.Upsert(ctx, snapshot("Maya", "5A", 10)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := r.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	reloaded, _ := Load(ctx, states)
	if reloaded.Len() != 0 {
		t.Errorf("roster not empty after Clear: %d rows", reloaded.Len())
	}
}
