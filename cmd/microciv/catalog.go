package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

var catalogPrinters = map[string]func(io.Writer){
	"buildings": printBuildingCatalog,
	"techs":     printTechCatalog,
	"terrains":  printTerrainCatalog,
	"seasons":   printSeasonCatalog,
	"units":     printUnitCatalog,
	"events":    printEventCatalog,
}

var catalogOrder = []string{"buildings", "techs", "terrains", "seasons", "units", "events"}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "catalog [" + strings.Join(catalogOrder, "|") + "]",
		Short:     "Print the static game catalogs",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: catalogOrder,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range catalogOrder {
					titleColor.Fprintf(w, "\n%s\n", strings.ToUpper(name))
					catalogPrinters[name](w)
				}
				return nil
			}
			printer, ok := catalogPrinters[args[0]]
			if !ok {
				return fmt.Errorf("unknown catalog %q (choose one of %s)", args[0], strings.Join(catalogOrder, ", "))
			}
			printer(w)
			return nil
		},
	}
}

func printBuildingCatalog(w io.Writer) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Building", "Cost", "Effect", "Requirements"}),
	)
	for _, def := range models.AllBuildingDefinitions() {
		req := strings.TrimPrefix(game.RequirementText(def.Type), "Requires: ")
		_ = table.Append([]string{def.Name, formatResources(def.Cost), def.Effect, req})
	}
	_ = table.Render()
}

func printTechCatalog(w io.Writer) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Technology", "Science", "Prerequisites", "Effect"}),
	)
	for _, tech := range models.AllTechnologies() {
		pre := make([]string, 0, len(tech.Prerequisites))
		for _, id := range tech.Prerequisites {
			pre = append(pre, string(id))
		}
		_ = table.Append([]string{tech.Name, amount(tech.Cost), strings.Join(pre, ", "), tech.Description})
	}
	_ = table.Render()
}

func multipliers(r models.Resources) string {
	return fmt.Sprintf("%.1f/%.1f/%.1f/%.1f", r.Food, r.Wood, r.Stone, r.Science)
}

func printTerrainCatalog(w io.Writer) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Terrain", "Food/Wood/Stone/Science", "Defense", "Trade", "Description"}),
	)
	for _, t := range models.AllTerrains() {
		_ = table.Append([]string{
			t.Name,
			multipliers(t.Modifiers),
			fmt.Sprintf("×%.1f", t.DefenseMultiplier()),
			fmt.Sprintf("×%.1f", t.TradeMultiplier()),
			t.Description,
		})
	}
	_ = table.Render()
}

func printSeasonCatalog(w io.Writer) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Season", "Food/Wood/Stone/Science", "Event weights"}),
	)
	for _, s := range models.AllSeasons() {
		var hints []string
		for _, ev := range models.AllRandomEvents() {
			if wgt, ok := s.EventWeights[ev.Kind]; ok {
				hints = append(hints, fmt.Sprintf("%s ×%.1f", ev.Name, wgt))
			}
		}
		_ = table.Append([]string{s.Name, multipliers(s.Modifiers), strings.Join(hints, ", ")})
	}
	_ = table.Render()
}

func printUnitCatalog(w io.Writer) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Unit", "Cost", "Attack", "Defense"}),
	)
	for _, u := range models.AllUnitDefinitions() {
		_ = table.Append([]string{u.Name, formatResources(u.Cost), fmt.Sprintf("%d", u.Attack), fmt.Sprintf("%d", u.Defense)})
	}
	_ = table.Render()
}

func printEventCatalog(w io.Writer) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Event", "Weight", "Description"}),
	)
	for _, ev := range models.AllRandomEvents() {
		_ = table.Append([]string{ev.Name, amount(ev.Weight), ev.Description})
	}
	_ = table.Render()
}
