package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/readhero/internal/app"
	"github.com/abhisek/readhero/internal/badges"
	"github.com/abhisek/readhero/internal/catalog"
	"github.com/abhisek/readhero/internal/certificate"
	"github.com/abhisek/readhero/internal/config"
	"github.com/abhisek/readhero/internal/daily"
	"github.com/abhisek/readhero/internal/mastery"
	"github.com/abhisek/readhero/internal/progression"
	"github.com/abhisek/readhero/internal/roster"
	"github.com/abhisek/readhero/internal/selector"
	"github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/store"
)

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadConfig reads the config file from --config, then the READHERO_CONFIG
// env var, otherwise defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("READHERO_CONFIG")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildEngine loads every domain service over the open store.
func buildEngine(ctx context.Context, st *store.Store, cfg config.Config) (*session.Engine, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	states := st.StateRepo()
	tracker, err := mastery.NewTracker(ctx, states)
	if err != nil {
		return nil, fmt.Errorf("load mastery: %w", err)
	}
	ledger, err := progression.NewLedger(ctx, states, cfg)
	if err != nil {
		return nil, fmt.Errorf("load progression: %w", err)
	}
	badgeEval, err := badges.NewEvaluator(ctx, states)
	if err != nil {
		return nil, fmt.Errorf("load badges: %w", err)
	}
	cert, err := certificate.NewAuthority(ctx, states, cfg.Certificate)
	if err != nil {
		return nil, fmt.Errorf("load certificate: %w", err)
	}
	rost, err := roster.Load(ctx, states)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	seed := uint64(time.Now().UnixNano())
	sel := selector.New(cat, rand.New(rand.NewPCG(seed, 0)))

	return session.NewEngine(cat, sel, states, st.EventRepo(), cfg,
		tracker, ledger, daily.New(states, cat), badgeEval, cert, rost), nil
}

// runApp opens the store, builds the engine, and launches the TUI.
func runApp(cmd *cobra.Command, target *app.StartTarget) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := buildEngine(ctx, st, cfg)
	if err != nil {
		return err
	}
	return app.Run(engine, target)
}
