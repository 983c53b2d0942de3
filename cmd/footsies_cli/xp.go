package main

import (
	"fmt"

	"github.com/2beens/footsies/internal/progression"

	"github.com/spf13/cobra"
)

func xpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xp",
		Short: "Progression tools",
	}
	cmd.AddCommand(xpSimulateCmd())
	return cmd
}

func xpSimulateCmd() *cobra.Command {
	var (
		track  = progression.NewTrack()
		params progression.PolicyParams
		gains  []int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Apply xp gains to a track and print the level-ups",
		Example: `  footsies xp simulate --gain 250
  footsies xp simulate --policy formula --level 3 --xp 40 --threshold 160 --gain 100 --gain 500`,
		RunE: func(_ *cobra.Command, _ []string) error {
			policy, err := progression.NewPolicy(params)
			if err != nil {
				return err
			}
			if err := track.Validate(); err != nil {
				return err
			}

			engine := progression.NewEngine(policy)
			fmt.Printf("start: level %d, %d/%d xp\n", track.Level, track.XP, track.Threshold)
			for _, gain := range gains {
				collector := &progression.Collector{}
				track, err = engine.Apply(progression.KindAccount, "", track, gain, collector)
				if err != nil {
					return err
				}
				fmt.Printf("+%d xp => level %d, %d/%d xp\n", gain, track.Level, track.XP, track.Threshold)
				for _, event := range collector.Events {
					fmt.Printf("  %s\n", event.Message())
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&track.Level, "level", track.Level, "starting level")
	cmd.Flags().IntVar(&track.XP, "xp", track.XP, "starting xp")
	cmd.Flags().IntVar(&track.Threshold, "threshold", track.Threshold, "starting threshold")
	cmd.Flags().IntSliceVar(&gains, "gain", []int{100}, "xp gain, repeat for consecutive gains")
	cmd.Flags().StringVar(&params.Name, "policy", progression.PolicyFlat, "growth policy [flat | formula]")
	cmd.Flags().IntVar(&params.FlatStep, "step", 0, "flat policy step")
	cmd.Flags().IntVar(&params.Base, "base", 0, "formula policy base")
	cmd.Flags().IntVar(&params.PerLevel, "per-level", 0, "formula policy increase per level")

	return cmd
}
