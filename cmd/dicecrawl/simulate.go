package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/samdwyer/dicecrawl/internal/sim"
)

func (c *cli) simulateCmd() *cobra.Command {
	var runs, workers int
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many runs headlessly and report outcomes",
		Long: `Simulate plays whole runs with a fixed policy: heal below half hp outside
combat, use the special attack whenever mana allows, otherwise attack.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd, runs, workers)
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 100, "number of runs")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 uses GOMAXPROCS)")
	return cmd
}

func (c *cli) runSimulate(cmd *cobra.Command, runs, workers int) error {
	logger := c.newLogger(cmd.ErrOrStderr())

	seed, err := c.resolveSeed()
	if err != nil {
		return err
	}

	opts := sim.Options{
		Runs:    runs,
		Class:   c.cfg.Class,
		Seed:    seed,
		Workers: workers,
		Logger:  logger,
	}
	if c.cryptoDice {
		opts.Dice = dice.DefaultRoller
	}

	report, err := sim.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Runs: %d  Seed: %d\n", report.Runs, seed)
	fmt.Fprintf(out, "Victories: %d  Defeats: %d\n", report.Victories, report.Defeats)
	fmt.Fprintf(out, "Mean gold: %.1f  Mean final cell: %.1f\n\n", report.MeanGold, report.MeanPosition+1)

	ids := make([]string, 0, len(report.ByClass))
	for id := range report.ByClass {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tRUNS\tWINS\tWIN %\tMEAN GOLD")
	for _, id := range ids {
		s := report.ByClass[id]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%.1f\n",
			id, s.Runs, s.Victories, 100*float64(s.Victories)/float64(s.Runs), s.MeanGold)
	}
	return tw.Flush()
}
