package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/readhero/internal/certificate"
	"github.com/abhisek/readhero/internal/profile"
	"github.com/abhisek/readhero/internal/skills"
)

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Show certificate status, or claim it with --claim",
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

		if cert := engine.Cert.Certificate(); cert != nil {
			fmt.Println("Certificate issued")
			fmt.Printf("  Student: %s (%s)\n", cert.Name, cert.ClassName)
			fmt.Printf("  Issued:  %s\n", cert.IssuedAt.Format("2 January 2006"))
			fmt.Printf("  Grade:   %s (%d%% average over %d texts)\n", cert.Grade, cert.AvgPercent, cert.TextsCompleted)
			fmt.Printf("  Code:    %s\n", cert.VerificationCode)
			return nil
		}

		snap := engine.CertSnapshot()
		elig := engine.Cert.Check(snap)

		claim, _ := cmd.Flags().GetBool("claim")
		if claim {
			if !elig.Eligible {
				return &certificate.NotEligibleError{Eligibility: elig}
			}
			p, err := profile.Load(ctx, engine.States)
			if err != nil {
				return err
			}
			if !p.Complete() {
				return errors.New("set up a profile first: run readhero and enter your name and class")
			}
			cert, err := engine.Cert.Issue(ctx, p.Name, p.ClassName, snap)
			if err != nil {
				return err
			}
			fmt.Printf("Certificate issued to %s: grade %s, code %s\n", cert.Name, cert.Grade, cert.VerificationCode)
			return nil
		}

		if elig.Eligible {
			fmt.Println("Eligible! Claim with: readhero cert --claim")
			return nil
		}

		fmt.Println("Not eligible yet")
		if elig.AllMastered {
			fmt.Printf("  [x] every practiced skill at %d%%+ mastery\n", elig.MasteryThreshold)
		} else {
			fmt.Printf("  [ ] every practiced skill at %d%%+ mastery, still below:\n", elig.MasteryThreshold)
			for _, id := range elig.WeakSkills {
				fmt.Printf("        %s (%d%%)\n", skills.Name(id), snap.RecordedMastery[id])
			}
		}
		mark := "[ ]"
		if elig.EnoughTexts {
			mark = "[x]"
		}
		fmt.Printf("  %s %d of %d texts completed\n", mark, elig.TextsCompleted, elig.MinTexts)
		mark = "[ ]"
		if elig.GoodAverage {
			mark = "[x]"
		}
		fmt.Printf("  %s average score %d%% (need %d%%)\n", mark, elig.AvgPercent, elig.MinAvgPercent)
		return nil
	},
}

func init() {
	certCmd.Flags().Bool("claim", false, "Issue the certificate if eligible")
}
