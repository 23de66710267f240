// Package config holds the tunable reward and certificate policy supplied at
// startup. All fields are optional in the file; absent values take the
// documented defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// CertificateConfig holds certificate eligibility thresholds.
type CertificateConfig struct {
	MinTexts         int `json:"min_texts"`
	MinAvgPercent    int `json:"min_avg_percent"`
	MasteryThreshold int `json:"mastery_threshold"`
}

// Config holds the engine's reward magnitudes and policy thresholds.
type Config struct {
	XPPerCorrect      int               `json:"xp_per_correct"`
	XPPerTextComplete int               `json:"xp_per_text_complete"`
	XPPerLevel        int               `json:"xp_per_level"`
	ExamTotalMinutes  int               `json:"exam_total_minutes"`
	Certificate       CertificateConfig `json:"certificate"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		XPPerCorrect:      10,
		XPPerTextComplete: 50,
		XPPerLevel:        200,
		ExamTotalMinutes:  30,
		Certificate: CertificateConfig{
			MinTexts:         10,
			MinAvgPercent:    80,
			MasteryThreshold: 80,
		},
	}
}

// fileConfig mirrors Config with pointer fields so absent keys can be told
// apart from explicit zeros.
type fileConfig struct {
	XPPerCorrect      *int `json:"xp_per_correct"`
	XPPerTextComplete *int `json:"xp_per_text_complete"`
	XPPerLevel        *int `json:"xp_per_level"`
	ExamTotalMinutes  *int `json:"exam_total_minutes"`
	Certificate       *struct {
		MinTexts         *int `json:"min_texts"`
		MinAvgPercent    *int `json:"min_avg_percent"`
		MasteryThreshold *int `json:"mastery_threshold"`
	} `json:"certificate"`
}

// Load reads a JSON config file and overlays it on the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse overlays raw JSON config on the defaults.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	var f fileConfig
	if err := json.Unmarshal(raw, &f); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	overlay(&cfg.XPPerCorrect, f.XPPerCorrect)
	overlay(&cfg.XPPerTextComplete, f.XPPerTextComplete)
	overlay(&cfg.XPPerLevel, f.XPPerLevel)
	overlay(&cfg.ExamTotalMinutes, f.ExamTotalMinutes)
	if f.Certificate != nil {
		overlay(&cfg.Certificate.MinTexts, f.Certificate.MinTexts)
		overlay(&cfg.Certificate.MinAvgPercent, f.Certificate.MinAvgPercent)
		overlay(&cfg.Certificate.MasteryThreshold, f.Certificate.MasteryThreshold)
	}

	if err := cfg.check(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// check rejects values the engine cannot run with.
func (c Config) check() error {
	if c.XPPerCorrect < 0 || c.XPPerTextComplete < 0 {
		return fmt.Errorf("config: xp rewards must be non-negative")
	}
	if c.XPPerLevel <= 0 {
		return fmt.Errorf("config: xp_per_level must be positive")
	}
	if c.ExamTotalMinutes <= 0 {
		return fmt.Errorf("config: exam_total_minutes must be positive")
	}
	if c.Certificate.MinTexts < 0 {
		return fmt.Errorf("config: certificate.min_texts must be non-negative")
	}
	if p := c.Certificate.MinAvgPercent; p < 0 || p > 100 {
		return fmt.Errorf("config: certificate.min_avg_percent must be 0-100")
	}
	if p := c.Certificate.MasteryThreshold; p < 0 || p > 100 {
		return fmt.Errorf("config: certificate.mastery_threshold must be 0-100")
	}
	return nil
}

func overlay(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
