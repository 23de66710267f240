package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/readhero/internal/app"
	"github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/skills"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Jump straight into a session",
	Long:  "Start the game directly in a session, skipping the menu. Without flags this opens a practice passage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dailyMode, _ := cmd.Flags().GetBool("daily")
		examMode, _ := cmd.Flags().GetBool("exam")
		skillID, _ := cmd.Flags().GetInt("skill")
		passageID, _ := cmd.Flags().GetString("passage")

		target := &app.StartTarget{Mode: session.ModePractice, PassageID: passageID}
		switch {
		case dailyMode:
			target.Mode = session.ModeDaily
		case examMode:
			target.Mode = session.ModeExam
		case skillID != 0:
			if !skills.IsValid(skillID) {
				return fmt.Errorf("unknown skill %d (valid: 1-%d)", skillID, skills.Count)
			}
			target.Mode = session.ModeDrill
			target.SkillID = skillID
		}

		return runApp(cmd, target)
	},
}

func init() {
	playCmd.Flags().Bool("daily", false, "Play today's daily challenge")
	playCmd.Flags().Bool("exam", false, "Play a timed exam")
	playCmd.Flags().Int("skill", 0, "Drill a single skill by id (1-15)")
	playCmd.Flags().String("passage", "", "Pick a specific passage by id")
}
