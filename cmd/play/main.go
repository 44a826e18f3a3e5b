package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/napolitain/microciv/internal/config"
	"github.com/napolitain/microciv/internal/game"
)

func main() {
	var (
		configFile string
		seed       int64
		terrain    string
	)

	rootCmd := &cobra.Command{
		Use:   "play",
		Short: "Play MicroCiv in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return err
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
				return err
			}

			g, err := game.New(cfg.Options())
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newModel(g), tea.WithAltScreen()).Run()
			return err
		},
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML game config")
	rootCmd.Flags().Int64VarP(&seed, "seed", "s", 1, "Random seed")
	rootCmd.Flags().StringVarP(&terrain, "terrain", "t", "plains", "Starting terrain")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
