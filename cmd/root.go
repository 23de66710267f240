package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/readhero/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "readhero",
	Short: "Reading comprehension trainer for kids",
	Long:  "ReadHero — a terminal reading game that builds comprehension skill by skill, with daily challenges, badges and a completion certificate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	// Optional .env next to the binary for READHERO_DB and friends.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides READHERO_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a JSON config file with xp and certificate settings (overrides READHERO_CONFIG env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(teacherCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(certCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then READHERO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
