package main

import (
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/quests"
	"github.com/2beens/footsies/internal/training/session"

	"github.com/spf13/cobra"
)

func questsCmd() *cobra.Command {
	var (
		username string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Print the quest board a user gets on a given day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now().UTC()
			if date != "" {
				var err error
				if day, err = time.Parse(session.DateLayout, date); err != nil {
					return fmt.Errorf("invalid date [%s]: %w", date, err)
				}
			}

			_, p, err := registryAndProfile(cmd.Context(), username)
			if err != nil {
				return err
			}

			board := quests.Generate(p.ID, p.Level, day)
			fmt.Printf("quests for %s (level %d) on %s\n", p.Username, p.Level, day.Format(session.DateLayout))
			printQuests("daily", board.Daily)
			printQuests("weekly", board.Weekly)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "username")
	cmd.Flags().StringVarP(&date, "date", "d", "", "day of the board (YYYY-MM-DD), today by default")
	_ = cmd.MarkFlagRequired("user")

	return storageCommand(cmd)
}

func printQuests(title string, list []quests.Quest) {
	fmt.Printf("\n%s:\n", title)
	for _, q := range list {
		fmt.Printf("  #%d %-16s %-10s +%d xp, +%d skill xp  %s\n",
			q.ID, q.Title, q.Skill.Title(), q.XP, q.SkillXP, q.Description)
	}
}
