// Package certificate decides completion-certificate eligibility and issues
// the one-time verifiable completion record.
package certificate

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/readhero/internal/config"
	"github.com/abhisek/readhero/internal/store"
)

// Status is the authority's position in its lifecycle.
type Status string

const (
	StatusNotEligible Status = "not-eligible"
	StatusEligible    Status = "eligible"
	StatusIssued      Status = "issued"
)

// codeAlphabet omits ambiguous characters (I, O, 0, 1) so codes survive
// being read aloud or copied by hand.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 8

// Certificate is the issued completion record. Immutable once created;
// re-rendering must reuse it, since regeneration would change the
// verification code and invalidate prior proofs.
type Certificate struct {
	Name             string    `json:"name"`
	ClassName        string    `json:"class_name"`
	IssuedAt         time.Time `json:"issued_at"`
	AvgPercent       int       `json:"avg_percent"`
	Grade            string    `json:"grade"`
	VerificationCode string    `json:"verification_code"`
	XP               int       `json:"xp"`
	TextsCompleted   int       `json:"texts_completed"`
}

// Snapshot is the student state the eligibility check runs against.
// RecordedMastery holds mastery only for skills with any answer history;
// skills never attempted impose no penalty.
type Snapshot struct {
	RecordedMastery map[int]int
	TextsCompleted  int
	AvgPercent      int
	XP              int
}

// Eligibility itemizes the certificate conditions so callers can render a
// checklist.
type Eligibility struct {
	Eligible    bool
	AllMastered bool
	EnoughTexts bool
	GoodAverage bool

	WeakSkills       []int
	TextsCompleted   int
	MinTexts         int
	AvgPercent       int
	MinAvgPercent    int
	MasteryThreshold int
}

// NotEligibleError carries the unmet conditions when issuance is requested
// too early. Informational, not a crash.
type NotEligibleError struct {
	Eligibility Eligibility
}

func (e *NotEligibleError) Error() string {
	var unmet []string
	if !e.Eligibility.AllMastered {
		unmet = append(unmet, fmt.Sprintf("skills below %d%% mastery: %v",
			e.Eligibility.MasteryThreshold, e.Eligibility.WeakSkills))
	}
	if !e.Eligibility.EnoughTexts {
		unmet = append(unmet, fmt.Sprintf("passages completed %d/%d",
			e.Eligibility.TextsCompleted, e.Eligibility.MinTexts))
	}
	if !e.Eligibility.GoodAverage {
		unmet = append(unmet, fmt.Sprintf("average %d%% below %d%%",
			e.Eligibility.AvgPercent, e.Eligibility.MinAvgPercent))
	}
	return "certificate: not eligible: " + strings.Join(unmet, "; ")
}

// Grade maps an average percentage to its letter grade label.
func Grade(avgPercent int) string {
	switch {
	case avgPercent >= 90:
		return "Excellent"
	case avgPercent >= 80:
		return "Very Good"
	case avgPercent >= 70:
		return "Good"
	case avgPercent >= 60:
		return "Pass"
	default:
		return "Needs Improvement"
	}
}

// Authority owns the stored certificate and the eligibility policy.
type Authority struct {
	states store.StateRepo
	cfg    config.CertificateConfig
	cert   *Certificate
	now    func() time.Time
	random io.Reader
}

// NewAuthority loads any previously issued certificate. Corrupt stored
// state degrades to "not issued".
func NewAuthority(ctx context.Context, states store.StateRepo, cfg config.CertificateConfig) (*Authority, error) {
	a := &Authority{
		states: states,
		cfg:    cfg,
		now:    time.Now,
		random: rand.Reader,
	}

	var cert Certificate
	ok, err := store.LoadState(ctx, states, store.KeyCertificate, &cert)
	if err != nil {
		return nil, err
	}
	if ok && cert.VerificationCode != "" {
		a.cert = &cert
	}
	return a, nil
}

// Check evaluates eligibility against the snapshot without issuing.
func (a *Authority) Check(snap Snapshot) Eligibility {
	e := Eligibility{
		AllMastered:      true,
		TextsCompleted:   snap.TextsCompleted,
		MinTexts:         a.cfg.MinTexts,
		AvgPercent:       snap.AvgPercent,
		MinAvgPercent:    a.cfg.MinAvgPercent,
		MasteryThreshold: a.cfg.MasteryThreshold,
	}

	for id, m := range snap.RecordedMastery {
		if m < a.cfg.MasteryThreshold {
			e.AllMastered = false
			e.WeakSkills = append(e.WeakSkills, id)
		}
	}
	sort.Ints(e.WeakSkills)

	e.EnoughTexts = snap.TextsCompleted >= a.cfg.MinTexts
	e.GoodAverage = snap.AvgPercent >= a.cfg.MinAvgPercent
	e.Eligible = e.AllMastered && e.EnoughTexts && e.GoodAverage
	return e
}

// Status reports the authority's current lifecycle position for the
// snapshot.
func (a *Authority) Status(snap Snapshot) Status {
	if a.cert != nil {
		return StatusIssued
	}
	if a.Check(snap).Eligible {
		return StatusEligible
	}
	return StatusNotEligible
}

// Issue creates the certificate if eligible, or returns the already-issued
// one unchanged: issuance is single-shot for a student lifetime, and the
// stored verification code never changes.
func (a *Authority) Issue(ctx context.Context, name, className string, snap Snapshot) (*Certificate, error) {
	if a.cert != nil {
		return a.cert, nil
	}

	elig := a.Check(snap)
	if !elig.Eligible {
		return nil, &NotEligibleError{Eligibility: elig}
	}

	code, err := a.generateCode()
	if err != nil {
		return nil, err
	}

	cert := &Certificate{
		Name:             name,
		ClassName:        className,
		IssuedAt:         a.now(),
		AvgPercent:       snap.AvgPercent,
		Grade:            Grade(snap.AvgPercent),
		VerificationCode: code,
		XP:               snap.XP,
		TextsCompleted:   snap.TextsCompleted,
	}
	if err := a.states.Set(ctx, store.KeyCertificate, cert); err != nil {
		return nil, err
	}
	a.cert = cert
	return cert, nil
}

// Certificate returns the issued certificate, or nil.
func (a *Authority) Certificate() *Certificate {
	return a.cert
}

// Verify reports whether a submitted code matches the stored certificate.
// Comparison is case-insensitive on the code body; there is no revocation
// and no expiry.
func (a *Authority) Verify(code string) bool {
	if a.cert == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(code), a.cert.VerificationCode)
}

// generateCode builds "RH-" plus codeLength characters from codeAlphabet
// using the authority's random source.
func (a *Authority) generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := io.ReadFull(a.random, buf); err != nil {
		return "", fmt.Errorf("certificate: read random: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("RH-")
	for _, b := range buf {
		sb.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return sb.String(), nil
}
