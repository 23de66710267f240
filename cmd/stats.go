package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/readhero/internal/badges"
	"github.com/abhisek/readhero/internal/certificate"
	"github.com/abhisek/readhero/internal/profile"
	"github.com/abhisek/readhero/internal/skills"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading progress without opening the game",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		p, err := profile.Load(ctx, engine.States)
		if err != nil {
			return err
		}
		name := p.Name
		if name == "" {
			name = "(no profile yet)"
		}

		prog := engine.Ledger.Progress()
		daily, err := engine.Daily.State(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%s  ·  class %s\n", name, p.ClassName)
		fmt.Printf("Level %d  ·  %d xp  ·  streak %d days\n", engine.Ledger.Level(), prog.XP, daily.Streak)
		fmt.Printf("Texts completed: %d  ·  average score: %d%%  ·  answered %d/%d correct\n\n",
			prog.TextsCompleted, engine.Ledger.AveragePercent(), prog.TotalCorrect, prog.TotalAnswered)

		fmt.Println("Mastery by skill")
		for _, sk := range skills.All() {
			rec := engine.Tracker.Get(sk.ID)
			if rec == nil || rec.TotalAnswered == 0 {
				fmt.Printf("  %-28s not started\n", sk.Name)
				continue
			}
			bar := strings.Repeat("█", rec.Mastery/10) + strings.Repeat("░", 10-rec.Mastery/10)
			fmt.Printf("  %-28s %s %3d%%  (%d answered)\n", sk.Name, bar, rec.Mastery, rec.TotalAnswered)
		}

		earned := engine.Badges.Earned()
		fmt.Printf("\nBadges: %d of %d\n", len(earned), len(badges.Definitions()))
		for _, id := range earned {
			if def := badges.Lookup(id); def != nil {
				fmt.Printf("  %s %s\n", def.Icon, def.Name)
			}
		}

		if cert := engine.Cert.Certificate(); cert != nil {
			fmt.Printf("\nCertificate: %s, issued %s, code %s\n",
				cert.Grade, cert.IssuedAt.Format("2 Jan 2006"), cert.VerificationCode)
		} else if engine.Cert.Status(engine.CertSnapshot()) == certificate.StatusEligible {
			fmt.Println("\nCertificate: ready to claim in the game")
		}

		return nil
	},
}
