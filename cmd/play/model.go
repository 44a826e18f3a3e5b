package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

type mode int

const (
	modeMain mode = iota
	modeBuild
	modeResearch
	modeTrain
	modeTrade
	modeTerrain
)

var modeTitles = map[mode]string{
	modeBuild:    "Build",
	modeResearch: "Research",
	modeTrain:    "Train",
	modeTrade:    "Trade",
	modeTerrain:  "Move to terrain",
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	winStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// menuItem is one selectable entry of a sub-menu
type menuItem struct {
	label   string
	enabled bool
	apply   func(*game.Game) error
}

type model struct {
	game   *game.Game
	mode   mode
	cursor int
	status string
	report *models.TurnReport
}

func newModel(g *game.Game) model {
	return model{game: g}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == modeMain {
		return m.updateMain(key)
	}
	return m.updateMenu(key)
}

func (m model) updateMain(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "b":
		m.open(modeBuild)
	case "r":
		m.open(modeResearch)
	case "t":
		m.open(modeTrain)
	case "x":
		m.open(modeTrade)
	case "l":
		m.open(modeTerrain)
	case "e", "enter":
		report := m.game.EndTurn()
		m.report = &report
		m.status = ""
		if !report.Resolved {
			m.status = "The game is already won"
		}
	}
	return m, nil
}

func (m *model) open(md mode) {
	m.mode = md
	m.cursor = 0
	m.status = ""
}

func (m model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = modeMain
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "g":
		if m.mode == modeTrade {
			m.game.GenerateTradeOptions()
			m.cursor = 0
		}
	case "enter", " ":
		if m.cursor >= len(items) {
			return m, nil
		}
		if err := items[m.cursor].apply(m.game); err != nil {
			m.status = capitalize(err.Error())
			return m, nil
		}
		m.status = ""
		if m.mode != modeTrade {
			m.mode = modeMain
		} else if m.cursor >= len(m.game.TradeOptions()) && m.cursor > 0 {
			m.cursor--
		}
	}
	return m, nil
}

// items lists the entries of the current sub-menu
func (m model) items() []menuItem {
	g := m.game
	var items []menuItem

	switch m.mode {
	case modeBuild:
		for _, def := range models.AllBuildingDefinitions() {
			bt := def.Type
			cost, _ := g.BuildingCost(bt)
			label := fmt.Sprintf("%-10s %-20s %s", def.Name, formatResources(cost), def.Effect)
			if !g.MeetsRequirements(bt) {
				label += "  " + game.RequirementText(bt)
			}
			items = append(items, menuItem{
				label:   label,
				enabled: g.MeetsRequirements(bt) && g.CanAfford(bt),
				apply:   func(g *game.Game) error { return g.TryBuild(bt) },
			})
		}
	case modeResearch:
		science := g.Resources().Science
		for _, tech := range g.TechnologySystem().AvailableTechnologies() {
			id := tech.ID
			items = append(items, menuItem{
				label:   fmt.Sprintf("%-12s %4s science  %s", tech.Name, humanize.Ftoa(tech.Cost), tech.Description),
				enabled: science >= tech.Cost,
				apply:   func(g *game.Game) error { return g.TryStartResearch(id) },
			})
		}
	case modeTrain:
		for _, def := range models.AllUnitDefinitions() {
			ut := def.Type
			items = append(items, menuItem{
				label:   fmt.Sprintf("%-8s %-16s attack %d, defense %d", def.Name, formatResources(def.Cost), def.Attack, def.Defense),
				enabled: g.Buildings().Barracks > 0 && g.Resources().Covers(def.Cost),
				apply:   func(g *game.Game) error { return g.TryTrainUnit(ut) },
			})
		}
	case modeTrade:
		for i, offer := range g.TradeOptions() {
			idx := i
			items = append(items, menuItem{
				label: fmt.Sprintf("give %s %s for %s %s",
					humanize.Ftoa(offer.GiveAmount), offer.Give, humanize.Ftoa(offer.ReceiveAmount), offer.Receive),
				enabled: g.Resources().Get(offer.Give) >= offer.GiveAmount,
				apply:   func(g *game.Game) error { return g.TryTrade(idx) },
			})
		}
	case modeTerrain:
		current := g.TerrainSystem().Current().ID
		for _, t := range models.AllTerrains() {
			id := t.ID
			items = append(items, menuItem{
				label:   fmt.Sprintf("%-10s %s", t.Name, t.Description),
				enabled: id != current,
				apply:   func(g *game.Game) error { return g.TryChangeTerrain(id) },
			})
		}
	}
	return items
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MicroCiv") + "\n\n")
	b.WriteString(panelStyle.Render(m.statusPanel()) + "\n")

	if m.game.Won() {
		b.WriteString(winStyle.Render("Victory! The Monument stands.") + "\n")
	} else if warning, ok := m.game.SeasonsSystem().SeasonChangeWarning(); ok {
		b.WriteString(warnStyle.Render(warning) + "\n")
	}

	if m.mode == modeMain {
		b.WriteString(m.eventsPanel())
		b.WriteString(helpStyle.Render("b build · r research · t train · x trade · l terrain · e end turn · q quit") + "\n")
	} else {
		b.WriteString(m.menuPanel())
	}
	if m.status != "" {
		b.WriteString(warnStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m model) statusPanel() string {
	g := m.game
	res, prod := g.Resources(), g.Production()
	pop := g.Population()
	season := g.SeasonsSystem().CurrentSeasonInfo()
	mil := g.MilitarySystem()

	var lines []string
	lines = append(lines, fmt.Sprintf("Turn %d · %s (%d turns left) · %s",
		g.Turn(), season.Name, season.TurnsRemaining, g.TerrainSystem().Current().Name))
	var resParts []string
	for _, rt := range models.AllResourceTypes() {
		resParts = append(resParts, fmt.Sprintf("%s %s (+%s)", rt, humanize.Ftoa(float64(int(res.Get(rt)))), humanize.Ftoa(round1(prod.Get(rt)))))
	}
	lines = append(lines, strings.Join(resParts, "  "))
	lines = append(lines, fmt.Sprintf("Population %d/%d, eats %s food", pop.Current, pop.Capacity, humanize.Ftoa(pop.FoodNeeded())))
	lines = append(lines, "Buildings "+formatBuildings(g.Buildings()))
	units := mil.Units()
	lines = append(lines, fmt.Sprintf("Army %d warriors, %d archers · defense %d · raid chance %d%%",
		units.Warriors, units.Archers, mil.DefenseValue(), int(mil.RaidChance()*100)))
	if m.report != nil && m.report.Raid != nil {
		r := m.report.Raid
		outcome := "repelled"
		if !r.Repelled {
			outcome = "broke through"
		}
		lines = append(lines, warnStyle.Render(fmt.Sprintf("Raiders (%d) %s last turn", r.Strength, outcome)))
	}
	return strings.Join(lines, "\n")
}

func (m model) eventsPanel() string {
	entries := m.game.EventLog()
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	start := max(0, len(entries)-5)
	for _, e := range entries[start:] {
		fmt.Fprintf(&b, "[%d] %s\n", e.Turn, e.Message)
	}
	return b.String()
}

func (m model) menuPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(modeTitles[m.mode]) + "\n")
	items := m.items()
	if len(items) == 0 {
		b.WriteString(disabledStyle.Render("  nothing available") + "\n")
	}
	for i, it := range items {
		line := "  " + it.label
		switch {
		case i == m.cursor:
			line = selectedStyle.Render("> " + it.label)
		case !it.enabled:
			line = disabledStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	help := "↑/↓ select · enter confirm · esc back"
	if m.mode == modeTrade {
		help += " · g new offers"
	}
	b.WriteString(helpStyle.Render(help) + "\n")
	return b.String()
}

func formatResources(r models.Resources) string {
	var parts []string
	r.EachNonZero(func(rt models.ResourceType, v float64) {
		parts = append(parts, fmt.Sprintf("%s %s", rt, humanize.Ftoa(round1(v))))
	})
	return strings.Join(parts, ", ")
}

func formatBuildings(b models.BuildingCounts) string {
	var parts []string
	b.EachNonZero(func(bt models.BuildingType, n int) {
		parts = append(parts, fmt.Sprintf("%s×%d", bt, n))
	})
	return strings.Join(parts, ", ")
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
