package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/microciv/internal/models"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgYellow)
	alertColor   = color.New(color.FgRed)
)

// amount formats a resource quantity with thousands separators and at most one decimal
func amount(v float64) string {
	if v == float64(int64(v)) {
		return humanize.Comma(int64(v))
	}
	return humanize.FormatFloat("#,###.#", v)
}

// formatResources renders non-zero resources as "food 10, wood 5"
func formatResources(r models.Resources) string {
	var parts []string
	r.EachNonZero(func(rt models.ResourceType, v float64) {
		parts = append(parts, fmt.Sprintf("%s %s", rt, amount(v)))
	})
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// formatBuildings renders owned buildings as "house×2, farm×1"
func formatBuildings(b models.BuildingCounts) string {
	var parts []string
	b.EachNonZero(func(bt models.BuildingType, n int) {
		parts = append(parts, fmt.Sprintf("%s×%d", bt, n))
	})
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func printState(w io.Writer, s models.Snapshot) {
	infoColor.Fprintf(w, "📊 State after the %s turn:\n", humanize.Ordinal(s.Turn))

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Resource", "Stock", "Per turn"}),
	)
	for _, rt := range models.AllResourceTypes() {
		_ = table.Append([]string{string(rt), amount(s.Resources.Get(rt)), amount(s.Production.Get(rt))})
	}
	_ = table.Render()

	fmt.Fprintf(w, "   Population: %d/%d (eats %s food)\n", s.Population.Current, s.Population.Capacity, amount(s.Population.FoodNeeded()))
	fmt.Fprintf(w, "   Buildings:  %s\n", formatBuildings(s.Buildings))
	fmt.Fprintf(w, "   Army:       %d warriors, %d archers (defense %d, threat %.1f)\n",
		s.Army.Warriors, s.Army.Archers, s.Defense, s.ThreatLevel)
	fmt.Fprintf(w, "   Terrain:    %s, season %s (%d turns in)\n", s.Terrain, s.Season, s.TurnsInSeason)
	if len(s.Researched) > 0 {
		names := make([]string, 0, len(s.Researched))
		for _, id := range s.Researched {
			names = append(names, string(id))
		}
		fmt.Fprintf(w, "   Researched: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(w)
}

func printEvents(w io.Writer, events []models.LogEntry) {
	if len(events) == 0 {
		return
	}
	infoColor.Fprintln(w, "📜 Recent events:")
	for _, e := range events {
		fmt.Fprintf(w, "   [%3d] %s\n", e.Turn, e.Message)
	}
	fmt.Fprintln(w)
}

// raidCell summarizes a turn's raid for the per-turn table
func raidCell(r *models.RaidRecord) string {
	if r == nil {
		return ""
	}
	if r.Repelled {
		return fmt.Sprintf("repelled %d/%d", r.Strength, r.Defense)
	}
	cell := fmt.Sprintf("lost %d/%d", r.Strength, r.Defense)
	if r.Building != "" {
		cell += " -" + string(r.Building)
	}
	return cell
}

func printTurns(w io.Writer, reports []models.TurnReport) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Turn", "Season", "Produced", "Event", "Raid", "Pop"}),
	)
	for _, r := range reports {
		pop := ""
		switch {
		case r.Growth > 0:
			pop = fmt.Sprintf("+%d", r.Growth)
		case r.Starved+r.Evicted > 0:
			pop = fmt.Sprintf("-%d", r.Starved+r.Evicted)
		}
		season := string(r.Season)
		if r.SeasonChanged {
			season += " *"
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", r.Turn),
			season,
			formatResources(r.Produced),
			string(r.Event),
			raidCell(r.Raid),
			pop,
		})
	}
	_ = table.Render()
}
