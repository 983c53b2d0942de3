package main

import (
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/training/analysis"
	"github.com/2beens/footsies/internal/training/stats"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		username  string
		rangeName string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the training statistics and recommendations of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			r, err := stats.ParseRange(rangeName)
			if err != nil {
				return err
			}

			registry, p, err := registryAndProfile(ctx, username)
			if err != nil {
				return err
			}

			statsService := stats.NewService(stats.ServiceParams{
				Sessions: storage.Sessions,
				Registry: registry,
			})
			dashboard, err := statsService.Dashboard(ctx, p.ID)
			if err != nil {
				return err
			}
			daily, err := statsService.Metrics(ctx, p.ID, r)
			if err != nil {
				return err
			}
			report, err := analysis.NewService(storage.Profiles, statsService, registry).Report(ctx, p.ID)
			if err != nil {
				return err
			}

			fmt.Printf("%s, account level %d (%d/%d xp)\n", p.Username, p.Level, p.XP, p.XPThreshold)
			fmt.Println("───────────────────────────────────────")
			for _, skill := range registry.All() {
				line := fmt.Sprintf("  %-10s level %2d  %4d xp", skill.Title(), p.SkillLevels[skill], p.Skills[skill])
				if imp := dashboard.LastImprovement[skill]; imp != nil {
					line += fmt.Sprintf("  improved %d days ago", imp.DaysSince)
				}
				fmt.Println(line)
			}

			freq := dashboard.Frequency
			fmt.Printf("\nsessions: %d total, %d today, %d this week, %d this month (%.1f per week)\n",
				freq.Total, freq.Daily, freq.Weekly, freq.Monthly, freq.AvgSessionsPerWeek)
			if last := dashboard.LastSession; last != nil {
				fmt.Printf("last session: %s on %s at %s, %s\n", last.Title, last.Date, last.Time, time.Duration(last.Duration)*time.Second)
			}

			fmt.Printf("\nbalance: %s (strongest %s, weakest %s)\n",
				report.Imbalance.Message, report.Imbalance.Strongest.Name, report.Imbalance.Weakest.Name)
			for _, rec := range report.Recommendations {
				fmt.Printf("  [%s] %s %s\n", rec.Priority, rec.Message, rec.Actionable)
			}

			fmt.Printf("\ndaily metrics [%s]:\n", r)
			for _, day := range daily {
				fmt.Printf("  %s  %d sessions  %s  intensity %.1f\n",
					day.Date, day.Sessions, time.Duration(day.Duration)*time.Second, day.AvgIntensity)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "username")
	cmd.Flags().StringVarP(&rangeName, "range", "r", string(stats.Range30Days), "metrics range [7d | 30d | 90d | year | all]")
	_ = cmd.MarkFlagRequired("user")

	return storageCommand(cmd)
}
