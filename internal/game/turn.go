package game

import (
	"math"

	"github.com/napolitain/microciv/internal/models"
)

// EndTurn resolves one turn in a fixed order: seasons, technology, military,
// random events, production, population, clamping, turn counter, win check
// and the upcoming season warning. A won game is not advanced.
func (g *Game) EndTurn() models.TurnReport {
	report := models.TurnReport{Turn: g.turn}
	if g.won {
		g.logFailure(ErrGameWon)
		report.Won = true
		return report
	}

	g.phase = PhaseResolving
	report.Resolved = true

	report.SeasonChanged = g.seasons.processTurn(g)
	report.Season = g.seasons.current
	g.UpdateProduction()

	g.tech.ProcessTurn(g)

	report.Raid = g.military.processTurn(g)

	report.Event = g.events.checkForRandomEvent(g)

	report.Produced = g.production
	g.production.Each(func(rt models.ResourceType, v float64) {
		g.resources.Add(rt, v)
	})
	g.clampResources()

	g.resolvePopulation(&report)

	g.clampResources()
	report.Evicted += g.updateCapacity()

	g.turn++

	if g.buildings.Monument > 0 {
		g.declareVictory()
	}
	report.Won = g.won

	if msg, ok := g.seasons.SeasonChangeWarning(); ok {
		g.addEvent("%s", msg)
	}

	if !g.won {
		g.phase = PhaseAwaitingInput
	}

	g.logger.Info("turn resolved",
		"turn", report.Turn,
		"season", report.Season,
		"raid", report.Raid != nil,
		"event", report.Event,
		"population", g.population.Current,
	)
	return report
}

// resolvePopulation feeds the population, growing or starving it
func (g *Game) resolvePopulation(report *models.TurnReport) {
	perPerson := g.population.FoodConsumptionPerPerson
	needed := g.population.FoodNeeded()

	if g.resources.Food >= needed {
		g.resources.Food -= needed
		report.FoodConsumed = needed
		if g.resources.Food >= perPerson && g.population.Current < g.population.Capacity {
			g.population.Current++
			report.Growth = 1
			g.addEvent("Population increased!")
		}
		return
	}

	shortage := needed - g.resources.Food
	report.FoodConsumed = g.resources.Food
	starving := g.population.Current
	if perPerson > 0 {
		starving = int(math.Ceil(shortage / perPerson))
	}
	lost := min(starving, g.population.Current-1)
	if lost > 0 {
		g.population.Current -= lost
		report.Starved = lost
		g.addEvent("%d people starved due to food shortage!", lost)
	}
	g.resources.Food = 0
}
