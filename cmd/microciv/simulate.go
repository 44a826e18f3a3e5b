package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/microciv/internal/converter"
	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/history"
	"github.com/napolitain/microciv/internal/solver"
)

func newSimulateCmd() *cobra.Command {
	var (
		turns        int
		strategyName string
		dbPath       string
		snapshotPath string
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Let the greedy autoplayer race to the Monument",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gameOptions(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			var best *solver.Result
			if strategyName == "all" {
				if !quiet {
					infoColor.Fprintln(w, "🔄 Playing every strategy...")
				}
				var results []*solver.Result
				best, results, err = solver.PlayAllStrategies(opts, turns)
				if err != nil {
					return err
				}
				if !quiet {
					printComparison(w, results, best)
				}
			} else {
				strategy, err := solver.ParseStrategy(strategyName)
				if err != nil {
					return err
				}
				best, err = solver.Play(opts, strategy, turns)
				if err != nil {
					return err
				}
			}

			if !quiet {
				printTurns(w, best.Reports)
				fmt.Fprintln(w)
			}
			printOutcome(w, best)
			printState(w, best.Final)

			if dbPath != "" {
				id, err := recordResult(dbPath, opts, best)
				if err != nil {
					return err
				}
				infoColor.Fprintf(w, "💾 Recorded game %s in %s\n", id, dbPath)
			}
			if snapshotPath != "" {
				data, err := converter.MarshalSnapshot(best.Final)
				if err != nil {
					return err
				}
				if err := os.WriteFile(snapshotPath, data, 0o644); err != nil {
					return fmt.Errorf("failed to write snapshot: %w", err)
				}
				infoColor.Fprintf(w, "💾 Wrote final snapshot to %s\n", snapshotPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&turns, "turns", solver.DefaultMaxTurns, "Maximum number of turns")
	cmd.Flags().StringVar(&strategyName, "strategy", "all", "Strategy name (e.g. P3/L2+D) or all")
	cmd.Flags().StringVar(&dbPath, "db", "", "Record the game in a SQLite history file")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Write the final snapshot as binary protobuf")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Skip the per-turn table")
	return cmd
}

func printComparison(w io.Writer, results []*solver.Result, best *solver.Result) {
	fmt.Fprintln(w, "\n📊 Strategy Comparison:")
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"", "Strategy", "Won", "Turns", "Actions", "Population"}),
	)
	for _, r := range results {
		marker := ""
		if r == best {
			marker = "✓"
		}
		won := "no"
		if r.Won {
			won = "yes"
		}
		_ = table.Append([]string{
			marker,
			r.Strategy.String(),
			won,
			fmt.Sprintf("%d", r.Turns),
			fmt.Sprintf("%d", len(r.Actions)),
			fmt.Sprintf("%d", r.Final.Population.Current),
		})
	}
	_ = table.Render()
	fmt.Fprintln(w)
}

func printOutcome(w io.Writer, r *solver.Result) {
	raids, lost := 0, 0
	for _, rep := range r.Reports {
		if rep.Raid != nil {
			raids++
			if !rep.Raid.Repelled {
				lost++
			}
		}
	}
	if r.Won {
		successColor.Fprintf(w, "✓ Strategy %s built the Monument in %d turns (%d actions)\n", r.Strategy, r.Turns, len(r.Actions))
	} else {
		alertColor.Fprintf(w, "✗ Strategy %s did not win within %d turns\n", r.Strategy, r.Turns)
	}
	fmt.Fprintf(w, "   Raids: %d (%d lost)\n\n", raids, lost)
}

func recordResult(path string, opts game.Options, r *solver.Result) (string, error) {
	db, err := history.Open(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	id := uuid.New().String()
	if err := db.StartGame(id, opts.Seed, opts.Terrain, r.Strategy.String()); err != nil {
		return "", err
	}
	if err := db.RecordTurns(id, r.Reports); err != nil {
		return "", err
	}
	if err := db.FinishGame(id, r.Final); err != nil {
		return "", err
	}
	return id, nil
}
