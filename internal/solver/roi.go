package solver

import (
	"sort"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

// ROIMetric represents the components of an ROI calculation
type ROIMetric struct {
	Gain          float64 // Weighted production gained per turn
	TotalCost     float64
	ScarcityBonus float64 // Multiplier adjustment (0.0 = no adjustment, 0.5 = +50% ROI)
}

// Calculate computes the final ROI value
func (m ROIMetric) Calculate() float64 {
	if m.TotalCost <= 0 {
		return m.Gain * 1000 // Very high ROI if free
	}
	return m.Gain / m.TotalCost * (1.0 + m.ScarcityBonus)
}

// candidate is a scored building choice
type candidate struct {
	Type models.BuildingType
	ROI  float64
}

// resourceWeights values each resource by how much the plan needs it now
func resourceWeights(g *game.Game) models.Resources {
	w := models.Resources{Food: 1, Wood: 1, Stone: 1.2, Science: 0.2}

	pop := g.Population()
	if g.Production().Food < pop.FoodNeeded()+1 {
		w.Food = 3
	}
	if !g.TechnologySystem().IsResearched(models.TechConstruction) {
		w.Science = 2
	}
	return w
}

// buildingMetric estimates what one more building of a type is worth
func (p *Player) buildingMetric(g *game.Game, bt models.BuildingType, weights models.Resources) ROIMetric {
	def := models.GetBuildingDefinition(bt)
	cost, _ := g.BuildingCost(bt)
	metric := ROIMetric{TotalCost: cost.Total()}

	switch {
	case def.IsProducer():
		terrain := g.TerrainSystem().Modifiers().Get(def.Produces)
		metric.Gain = def.BaseAmount * g.ProductionMultiplier(bt) * terrain * weights.Get(def.Produces)
	case bt == models.House:
		pop := g.Population()
		if pop.Current >= pop.Capacity-1 {
			metric.Gain = 2
		}
	case bt == models.Barracks || bt == models.Wall:
		if p.Strategy.Defense && g.MilitarySystem().RaidChance() >= DefenseRaidThreshold {
			metric.Gain = float64(def.Defense) / 5
		}
	}

	// Scarcity bonus for the resource that gates the monument
	if def.Produces == models.Stone && g.Resources().Stone < g.Resources().Wood {
		metric.ScarcityBonus = 0.5
	}
	return metric
}

// rankBuildings returns buildable types by descending ROI, skipping the
// monument and anything at the strategy's cap
func (p *Player) rankBuildings(g *game.Game) []candidate {
	weights := resourceWeights(g)
	buildings := g.Buildings()

	var out []candidate
	for _, bt := range models.AllBuildingTypes() {
		if bt == models.Monument || !g.MeetsRequirements(bt) {
			continue
		}
		if buildings.Get(bt) >= p.Strategy.cap(bt) {
			continue
		}
		roi := p.buildingMetric(g, bt, weights).Calculate()
		if roi <= 0 {
			continue
		}
		out = append(out, candidate{Type: bt, ROI: roi})
	}

	// Ties keep catalog order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ROI > out[j].ROI
	})
	return out
}

// techPriority ranks a technology by its value to the monument path and production
func techPriority(g *game.Game, tech models.TechnologySummary) float64 {
	b := g.Buildings()
	var gain float64
	switch tech.ID {
	case models.TechConstruction:
		gain = 20
	case models.TechWoodworking, models.TechMining:
		gain = 10
	case models.TechAgriculture:
		gain = 1 + float64(b.Farm)
	case models.TechIrrigation:
		gain = float64(b.Farm) / 2
	case models.TechFertilizers:
		gain = float64(b.Farm)
	case models.TechMetallurgy:
		gain = float64(b.Quarry)
	}
	return ROIMetric{Gain: gain, TotalCost: tech.Cost}.Calculate()
}
