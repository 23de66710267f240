package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/readhero/internal/adminauth"
	"github.com/abhisek/readhero/internal/roster"
	"github.com/abhisek/readhero/internal/store"
)

var teacherCmd = &cobra.Command{
	Use:   "teacher",
	Short: "Instructor tools: roster and exports",
}

var teacherSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set the instructor password",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			return errors.New("--password is required")
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		guard := adminauth.NewGuard(st.StateRepo(), nil)
		if err := guard.Setup(cmd.Context(), password); err != nil {
			return err
		}
		fmt.Println("Instructor password set.")
		return nil
	},
}

var teacherRosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Print the student roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := teacherLogin(cmd, st); err != nil {
			return err
		}
		rost, err := roster.Load(cmd.Context(), st.StateRepo())
		if err != nil {
			return err
		}
		if rost.Len() == 0 {
			fmt.Println("No students yet.")
			return nil
		}

		fmt.Printf("%-20s %-8s %6s %6s %7s %8s\n", "Name", "Class", "XP", "Level", "Texts", "Accuracy")
		for _, row := range rost.Rows() {
			accuracy := "-"
			if row.TotalAnswered > 0 {
				accuracy = fmt.Sprintf("%d%%", 100*row.TotalCorrect/row.TotalAnswered)
			}
			fmt.Printf("%-20s %-8s %6d %6d %7d %8s\n",
				row.Name, row.ClassName, row.XP, row.Level, row.TextsCompleted, accuracy)
		}
		return nil
	},
}

var teacherExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roster to CSV or XLSX",
	Long:  "Export the student roster to a file. The format follows the file extension: .xlsx is a spreadsheet, anything else is CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return errors.New("--out is required")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := teacherLogin(cmd, st); err != nil {
			return err
		}
		rost, err := roster.Load(cmd.Context(), st.StateRepo())
		if err != nil {
			return err
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if roster.FormatForPath(out) == "xlsx" {
			err = rost.WriteXLSX(f)
		} else {
			err = rost.WriteCSV(f)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d students to %s\n", rost.Len(), out)
		return nil
	},
}

// teacherLogin checks the --password flag (or READHERO_ADMIN_PASSWORD)
// against the stored instructor credential.
func teacherLogin(cmd *cobra.Command, st *store.Store) error {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = strings.TrimSpace(os.Getenv("READHERO_ADMIN_PASSWORD"))
	}
	if password == "" {
		return errors.New("--password is required (or set READHERO_ADMIN_PASSWORD)")
	}

	guard := adminauth.NewGuard(st.StateRepo(), nil)
	err := guard.Login(cmd.Context(), password)
	if errors.Is(err, adminauth.ErrNotConfigured) {
		return errors.New("no instructor password yet; run: readhero teacher setup --password ...")
	}
	return err
}

func init() {
	teacherSetupCmd.Flags().String("password", "", "New instructor password")
	teacherRosterCmd.Flags().String("password", "", "Instructor password")
	teacherExportCmd.Flags().String("password", "", "Instructor password")
	teacherExportCmd.Flags().String("out", "", "Output file (.csv or .xlsx)")

	teacherCmd.AddCommand(teacherSetupCmd)
	teacherCmd.AddCommand(teacherRosterCmd)
	teacherCmd.AddCommand(teacherExportCmd)
}
