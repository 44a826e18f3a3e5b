package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/microciv/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "history [GAME_ID]",
		Short: "List recorded games, or the turns of one game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := history.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				games, err := db.Games()
				if err != nil {
					return err
				}
				table := tablewriter.NewTable(w,
					tablewriter.WithHeader([]string{"Game", "Seed", "Terrain", "Label", "Recorded"}),
				)
				for _, g := range games {
					_ = table.Append([]string{g.ID, fmt.Sprintf("%d", g.Seed), g.Terrain, g.Label, humanize.Time(g.CreatedAt)})
				}
				return table.Render()
			}

			turns, err := db.Turns(args[0])
			if err != nil {
				return err
			}
			raids, err := db.Raids(args[0])
			if err != nil {
				return err
			}
			if len(turns) == 0 {
				return fmt.Errorf("no turns recorded for game %s", args[0])
			}

			table := tablewriter.NewTable(w,
				tablewriter.WithHeader([]string{"Turn", "Season", "Food", "Wood", "Stone", "Science", "Event", "Raid"}),
			)
			for _, t := range turns {
				raid := ""
				if t.Raided {
					raid = "yes"
				}
				_ = table.Append([]string{
					fmt.Sprintf("%d", t.Turn), t.Season,
					amount(t.Food), amount(t.Wood), amount(t.Stone), amount(t.Science),
					t.Event, raid,
				})
			}
			if err := table.Render(); err != nil {
				return err
			}

			repelled := 0
			for _, r := range raids {
				if r.Repelled {
					repelled++
				}
			}
			fmt.Fprintf(w, "\n   %d turns, %d raids (%d repelled)\n", len(turns), len(raids), repelled)

			if final, fs, err := db.FinalSnapshot(args[0]); err == nil {
				fmt.Fprintf(w, "   Final state digest %s\n\n", fs.Digest[:16])
				printState(w, final)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "microciv.db", "SQLite history file")
	return cmd
}
