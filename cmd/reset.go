package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/readhero/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the current student's progress",
	Long:  "Erase the current student's profile, xp, mastery, streak, badges and certificate. Instructor credentials and the class roster are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("this deletes all progress; re-run with --yes to confirm")
		}
		all, _ := cmd.Flags().GetBool("all")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		keys := store.StudentKeys()
		if all {
			keys = store.AllKeys()
		}
		states := st.StateRepo()
		for _, key := range keys {
			if err := states.Remove(cmd.Context(), key); err != nil {
				return fmt.Errorf("remove %s: %w", key, err)
			}
		}
		if all {
			fmt.Println("All data erased, including instructor credentials and the roster.")
		} else {
			fmt.Println("Student progress erased.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
	resetCmd.Flags().Bool("all", false, "Also erase instructor credentials and the class roster")
}
