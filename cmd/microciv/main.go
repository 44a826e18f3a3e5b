package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/microciv/internal/config"
	"github.com/napolitain/microciv/internal/game"
)

var (
	configFile string
	seed       int64
	terrain    string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "microciv",
		Short: "Turn-based civilization builder",
		Long: `A small turn-based civilization game: manage food, wood, stone and
science, grow your population, survive raids and build the Monument.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML game config")
	rootCmd.PersistentFlags().Int64VarP(&seed, "seed", "s", 1, "Random seed")
	rootCmd.PersistentFlags().StringVarP(&terrain, "terrain", "t", "plains", "Starting terrain")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine diagnostics to stderr")

	rootCmd.AddCommand(newCatalogCmd(), newSimulateCmd(), newRunCmd(), newHistoryCmd())
	return rootCmd
}

// gameOptions merges the config file with explicit flags
func gameOptions(cmd *cobra.Command) (game.Options, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return game.Options{}, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("terrain") {
		cfg.Terrain = terrain
	}
	if err := cfg.Validate(); err != nil {
		return game.Options{}, fmt.Errorf("invalid options: %w", err)
	}

	opts := cfg.Options()
	if verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return opts, nil
}
