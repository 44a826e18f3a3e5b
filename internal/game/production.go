package game

import (
	"github.com/napolitain/microciv/internal/models"
)

// UpdateProduction recomputes per-turn production from scratch.
// Base rates plus building output are summed first, then the terrain and
// season multipliers are applied to the whole total. Calling it twice in a
// row yields identical values.
func (g *Game) UpdateProduction() {
	raw := g.baseProduction

	for _, def := range models.AllBuildingDefinitions() {
		if !def.IsProducer() {
			continue
		}
		count := g.buildings.Get(def.Type)
		if count == 0 {
			continue
		}
		raw.Add(def.Produces, def.BaseAmount*float64(count)*g.ProductionMultiplier(def.Type))
	}

	g.rawProduction = raw
	g.production = raw.
		Mul(g.terrain.Modifiers()).
		Mul(g.seasons.Modifiers()).
		Clamped()
}

// housingCapacity derives capacity from houses and, with irrigation, farms
func (g *Game) housingCapacity() int {
	capacity := 0
	for _, def := range models.AllBuildingDefinitions() {
		capacity += def.Capacity * g.buildings.Get(def.Type)
	}
	if g.tech.IsResearched(models.TechIrrigation) {
		capacity += g.buildings.Farm
	}
	return capacity
}

// updateCapacity refreshes capacity and evicts anyone left without housing.
// Returns the number of people evicted.
func (g *Game) updateCapacity() int {
	g.population.Capacity = g.housingCapacity()
	excess := g.population.Current - g.population.Capacity
	if excess <= 0 {
		return 0
	}
	g.population.Current = g.population.Capacity
	g.addEvent("%d people left due to housing shortage!", excess)
	g.logger.Debug("population evicted", "count", excess, "capacity", g.population.Capacity)
	return excess
}

// clampResources restores the non-negative stock invariant
func (g *Game) clampResources() {
	g.resources = g.resources.Clamped()
}
