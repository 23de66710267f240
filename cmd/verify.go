package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/readhero/internal/certificate"
)

var verifyCmd = &cobra.Command{
	Use:   "verify CODE",
	Short: "Check a certificate verification code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		authority, err := certificate.NewAuthority(cmd.Context(), st.StateRepo(), cfg.Certificate)
		if err != nil {
			return err
		}

		if !authority.Verify(args[0]) {
			fmt.Println("No certificate matches that code.")
			return nil
		}

		cert := authority.Certificate()
		fmt.Println("Valid certificate")
		fmt.Printf("  Student: %s (%s)\n", cert.Name, cert.ClassName)
		fmt.Printf("  Issued:  %s\n", cert.IssuedAt.Format("2 January 2006"))
		fmt.Printf("  Grade:   %s (%d%% average over %d texts)\n", cert.Grade, cert.AvgPercent, cert.TextsCompleted)
		return nil
	},
}
