package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/loader"
)

func newRunCmd() *cobra.Command {
	var (
		strict   bool
		showLogs bool
	)

	cmd := &cobra.Command{
		Use:   "run PLAN",
		Short: "Apply a plan script (text or .json) to a new game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gameOptions(cmd)
			if err != nil {
				return err
			}
			plan, err := loader.LoadPlan(args[0])
			if err != nil {
				return err
			}
			g, err := game.New(opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			infoColor.Fprintf(w, "📄 Running %s: %d steps over %d turns\n\n", plan.Name, len(plan.Steps), plan.Turns())

			res, err := loader.Run(g, plan, strict)
			if err != nil {
				return err
			}

			for _, f := range res.Failures {
				alertColor.Fprintf(w, "✗ line %d (%s): %v\n", f.Step.Line, f.Step, f.Err)
			}
			if len(res.Reports) > 0 {
				printTurns(w, res.Reports)
				fmt.Fprintln(w)
			}
			if g.Won() {
				successColor.Fprintf(w, "✓ Monument built on turn %d\n\n", g.Turn())
			}
			fmt.Fprintf(w, "   Applied %d actions, %d rejected\n\n", res.Applied, len(res.Failures))

			snap := g.Snapshot()
			printState(w, snap)
			if showLogs {
				printEvents(w, snap.Events)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Stop at the first rejected action")
	cmd.Flags().BoolVar(&showLogs, "log", true, "Print the event log")
	return cmd
}
