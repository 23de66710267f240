package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.XPPerCorrect != 10 {
		t.Errorf("XPPerCorrect = %d, want 10", cfg.XPPerCorrect)
	}
	if cfg.XPPerTextComplete != 50 {
		t.Errorf("XPPerTextComplete = %d, want 50", cfg.XPPerTextComplete)
	}
	if cfg.XPPerLevel != 200 {
		t.Errorf("XPPerLevel = %d, want 200", cfg.XPPerLevel)
	}
	if cfg.Certificate.MinTexts != 10 || cfg.Certificate.MinAvgPercent != 80 || cfg.Certificate.MasteryThreshold != 80 {
		t.Errorf("certificate defaults = %+v", cfg.Certificate)
	}
}

func TestParse_PartialOverlay(t *testing.T) {
	cfg, err := Parse([]byte(`{"xp_per_correct": 25, "certificate": {"min_texts": 5}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.XPPerCorrect != 25 {
		t.Errorf("XPPerCorrect = %d, want 25", cfg.XPPerCorrect)
	}
	if cfg.XPPerLevel != 200 {
		t.Errorf("XPPerLevel = %d, want default 200", cfg.XPPerLevel)
	}
	if cfg.Certificate.MinTexts != 5 {
		t.Errorf("MinTexts = %d, want 5", cfg.Certificate.MinTexts)
	}
	if cfg.Certificate.MinAvgPercent != 80 {
		t.Errorf("MinAvgPercent = %d, want default 80", cfg.Certificate.MinAvgPercent)
	}
}

func TestParse_RejectsBadValues(t *testing.T) {
	cases := []string{
		`{"xp_per_level": 0}`,
		`{"xp_per_correct": -1}`,
		`{"certificate": {"min_avg_percent": 150}}`,
		`{"exam_total_minutes": -5}`,
		`not json`,
	}
	for _, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Errorf("Parse(%q) accepted invalid config", raw)
		}
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}
