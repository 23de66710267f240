package certificate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/readhero/internal/config"
	"github.com/abhisek/readhero/internal/store"
)

func testAuthority(t *testing.T, states store.StateRepo) *Authority {
	t.Helper()
	a, err := NewAuthority(context.Background(), states, config.Default().Certificate)
	if err != nil {
		t.Fatalf("NewAuthority: %v", err)
	}
	a.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return a
}

func eligibleSnapshot() Snapshot {
	mastery := make(map[int]int)
	for id := 1; id <= 15; id++ {
		mastery[id] = 85
	}
	return Snapshot{
		RecordedMastery: mastery,
		TextsCompleted:  12,
		AvgPercent:      88,
		XP:              900,
	}
}

func TestGrade(t *testing.T) {
	cases := []struct {
		avg  int
		want string
	}{
		{95, "Excellent"},
		{90, "Excellent"},
		{85, "Very Good"},
		{73, "Good"},
		{60, "Pass"},
		{42, "Needs Improvement"},
	}
	for _, tc := range cases {
		if got := Grade(tc.avg); got != tc.want {
			t.Errorf("Grade(%d) = %q, want %q", tc.avg, got, tc.want)
		}
	}
}

func TestCheckItemizesConditions(t *testing.T) {
	a := testAuthority(t, store.NewMemoryState())

	snap := eligibleSnapshot()
	snap.RecordedMastery[4] = 60
	snap.RecordedMastery[9] = 75
	snap.TextsCompleted = 7
	snap.AvgPercent = 70

	elig := a.Check(snap)
	if elig.Eligible {
		t.Fatal("expected not eligible")
	}
	if elig.AllMastered {
		t.Error("AllMastered should be false")
	}
	if want := []int{4, 9}; len(elig.WeakSkills) != 2 || elig.WeakSkills[0] != want[0] || elig.WeakSkills[1] != want[1] {
		t.Errorf("WeakSkills = %v, want %v", elig.WeakSkills, want)
	}
	if elig.EnoughTexts {
		t.Error("EnoughTexts should be false at 7/10")
	}
	if elig.GoodAverage {
		t.Error("GoodAverage should be false at 70%")
	}
}

func TestUnattemptedSkillsDoNotBlock(t *testing.T) {
	a := testAuthority(t, store.NewMemoryState())

	// Only three skills have any history; all of them are mastered.
	snap := Snapshot{
		RecordedMastery: map[int]int{1: 90, 2: 100, 3: 85},
		TextsCompleted:  11,
		AvgPercent:      84,
	}
	if elig := a.Check(snap); !elig.Eligible {
		t.Fatalf("expected eligible, got %+v", elig)
	}
}

func TestIssueNotEligible(t *testing.T) {
	a := testAuthority(t, store.NewMemoryState())

	snap := eligibleSnapshot()
	snap.TextsCompleted = 3

	_, err := a.Issue(context.Background(), "Dana", "4B", snap)
	var notEligible *NotEligibleError
	if !errors.As(err, &notEligible) {
		t.Fatalf("expected NotEligibleError, got %v", err)
	}
	if notEligible.Eligibility.EnoughTexts {
		t.Error("error should report the texts condition as unmet")
	}
	if a.Certificate() != nil {
		t.Error("no certificate should be stored after a refused issue")
	}
}

func TestIssueIsSingleShot(t *testing.T) {
	states := store.NewMemoryState()
	a := testAuthority(t, states)
	ctx := context.Background()

	first, err := a.Issue(ctx, "Dana", "4B", eligibleSnapshot())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !strings.HasPrefix(first.VerificationCode, "RH-") || len(first.VerificationCode) != len("RH-")+8 {
		t.Fatalf("unexpected code format %q", first.VerificationCode)
	}
	if first.Grade != "Very Good" {
		t.Errorf("Grade = %q, want Very Good", first.Grade)
	}

	// A later call, even with improved stats, returns the same record.
	better := eligibleSnapshot()
	better.AvgPercent = 99
	second, err := a.Issue(ctx, "Dana", "4B", better)
	if err != nil {
		t.Fatalf("second Issue: %v", err)
	}
	if second.VerificationCode != first.VerificationCode {
		t.Errorf("verification code changed on re-issue: %q vs %q", second.VerificationCode, first.VerificationCode)
	}
	if second.AvgPercent != first.AvgPercent {
		t.Errorf("stored average changed on re-issue: %d vs %d", second.AvgPercent, first.AvgPercent)
	}

	// And the record survives a restart.
	reloaded := testAuthority(t, states)
	if reloaded.Certificate() == nil {
		t.Fatal("certificate lost after reload")
	}
	if got := reloaded.Certificate().VerificationCode; got != first.VerificationCode {
		t.Errorf("reloaded code = %q, want %q", got, first.VerificationCode)
	}
}

func TestVerify(t *testing.T) {
	a := testAuthority(t, store.NewMemoryState())
	ctx := context.Background()

	if a.Verify("RH-AAAAAAAA") {
		t.Error("Verify should fail before issuance")
	}

	cert, err := a.Issue(ctx, "Dana", "4B", eligibleSnapshot())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !a.Verify(cert.VerificationCode) {
		t.Error("exact code should verify")
	}
	if !a.Verify("  " + strings.ToLower(cert.VerificationCode) + " ") {
		t.Error("case and surrounding whitespace should be forgiven")
	}
	if a.Verify("RH-ZZZZZZZZ") && cert.VerificationCode != "RH-ZZZZZZZZ" {
		t.Error("wrong code should not verify")
	}
}

func TestCodeUsesAlphabet(t *testing.T) {
	a := testAuthority(t, store.NewMemoryState())
	a.random = bytes.NewReader([]byte{0, 31, 32, 255, 7, 100, 200, 50})

	code, err := a.generateCode()
	if err != nil {
		t.Fatalf("generateCode: %v", err)
	}
	body := strings.TrimPrefix(code, "RH-")
	for _, r := range body {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Errorf("character %q outside alphabet in %q", r, code)
		}
	}
}

func TestStatusLifecycle(t *testing.T) {
	a := testAuthority(t, store.NewMemoryState())
	ctx := context.Background()

	poor := eligibleSnapshot()
	poor.AvgPercent = 50
	if got := a.Status(poor); got != StatusNotEligible {
		t.Errorf("Status = %q, want %q", got, StatusNotEligible)
	}

	snap := eligibleSnapshot()
	if got := a.Status(snap); got != StatusEligible {
		t.Errorf("Status = %q, want %q", got, StatusEligible)
	}

	if _, err := a.Issue(ctx, "Dana", "4B", snap); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got := a.Status(snap); got != StatusIssued {
		t.Errorf("Status = %q, want %q", got, StatusIssued)
	}
}
