package game

import (
	"fmt"
	"math"

	"github.com/napolitain/microciv/internal/models"
)

// Raid mechanics constants
const (
	threatBaseGrowth      = 0.5
	threatProsperityScale = 0.2
	threatDecayAfterRaid  = 10
	lootChance            = 0.3
	resourceLossFactor    = 0.5
	populationLossFactor  = 0.3
)

// MilitarySystem owns units, defense aggregation and raid resolution
type MilitarySystem struct {
	units                    models.Army
	defenseValue             int
	terrainDefenseMultiplier float64
	threatLevel              float64
	baseRaidChance           float64
	history                  []models.RaidRecord
}

func newMilitarySystem(baseRaidChance float64) *MilitarySystem {
	return &MilitarySystem{
		terrainDefenseMultiplier: 1.0,
		baseRaidChance:           baseRaidChance,
	}
}

// Units returns the trained unit counts
func (m *MilitarySystem) Units() models.Army { return m.units }

// DefenseValue returns the aggregate defense
func (m *MilitarySystem) DefenseValue() int { return m.defenseValue }

// ThreatLevel returns the accumulated threat
func (m *MilitarySystem) ThreatLevel() float64 { return m.threatLevel }

// RaidChance returns the probability of a raid on the next turn, before threat accrual
func (m *MilitarySystem) RaidChance() float64 {
	return math.Min(MaxRaidChance, m.baseRaidChance+m.threatLevel/100)
}

// RaidHistory returns every resolved raid, oldest first
func (m *MilitarySystem) RaidHistory() []models.RaidRecord {
	out := make([]models.RaidRecord, len(m.history))
	copy(out, m.history)
	return out
}

// updateDefenseValue derives defense from buildings, units and terrain
func (m *MilitarySystem) updateDefenseValue(buildings *models.BuildingCounts) {
	total := 0
	for _, def := range models.AllBuildingDefinitions() {
		total += def.Defense * buildings.Get(def.Type)
	}
	for _, def := range models.AllUnitDefinitions() {
		total += def.Defense * m.units.Get(def.Type)
	}
	m.defenseValue = int(math.Floor(float64(total) * m.terrainDefenseMultiplier))
}

// TryTrainUnit trains one unit at a barracks
func (g *Game) TryTrainUnit(ut models.UnitType) error {
	if g.won {
		return ErrGameWon
	}
	def := models.GetUnitDefinition(ut)
	if def == nil {
		return fmt.Errorf("train %q: %w", ut, ErrUnknownUnit)
	}
	if g.buildings.Barracks == 0 {
		return fmt.Errorf("train %s: %w", def.Name, ErrNoBarracks)
	}
	if !g.resources.Covers(def.Cost) {
		return fmt.Errorf("train %s: %w", def.Name, ErrCannotAfford)
	}

	g.resources = models.Resources{
		Food:    g.resources.Food - def.Cost.Food,
		Wood:    g.resources.Wood - def.Cost.Wood,
		Stone:   g.resources.Stone - def.Cost.Stone,
		Science: g.resources.Science - def.Cost.Science,
	}.Clamped()
	g.military.units.Add(ut, 1)
	g.military.updateDefenseValue(&g.buildings)

	g.addEvent("Trained a new %s", def.Name)
	return nil
}

// TrainUnit is the boolean form of TryTrainUnit
func (g *Game) TrainUnit(ut models.UnitType) bool {
	return g.logFailure(g.TryTrainUnit(ut)) == nil
}

// prosperity is a normalized composite of population, buildings and stocks
func (g *Game) prosperity() float64 {
	return (float64(g.population.Current) + float64(g.buildings.Total()) + g.resources.Total()/10) / 10
}

// processTurn accrues threat and rolls for a raid. Returns the raid, if any.
func (m *MilitarySystem) processTurn(g *Game) *models.RaidRecord {
	m.threatLevel += threatBaseGrowth + threatProsperityScale*g.prosperity()
	if g.rng.Float64() >= m.RaidChance() {
		return nil
	}
	return m.conductRaid(g)
}

// conductRaid resolves one raid. Every draw is final.
func (m *MilitarySystem) conductRaid(g *Game) *models.RaidRecord {
	variance := 0.8 + 0.4*g.rng.Float64()
	strength := int(math.Floor((10 + m.threatLevel*0.8 + float64(g.turn)*0.5) * variance))

	record := models.RaidRecord{
		Turn:     g.turn,
		Strength: strength,
		Defense:  m.defenseValue,
		Repelled: m.defenseValue >= strength,
	}

	if record.Repelled {
		g.addEvent("RAID ALERT: Raiders (strength %d) were repelled by your defenses (%d)!", strength, m.defenseValue)
		if g.rng.Float64() < lootChance {
			mats := models.MaterialResourceTypes()
			rt := mats[g.rng.Intn(len(mats))]
			amount := math.Floor(3 + float64(strength)/5)
			g.resources.Add(rt, amount)
			record.Loot.Set(rt, amount)
			g.addEvent("Your defenders captured %.0f %s from the raiders", amount, rt)
		}
	} else {
		severity := math.Min(1, float64(strength-m.defenseValue)/float64(strength))
		g.addEvent("RAID ALERT: Raiders (strength %d) overwhelmed your defenses (%d)!", strength, m.defenseValue)

		for _, rt := range models.MaterialResourceTypes() {
			loss := math.Floor(g.resources.Get(rt) * severity * resourceLossFactor)
			if loss > 0 {
				g.resources.Add(rt, -loss)
				record.Losses.Set(rt, loss)
			}
		}
		g.clampResources()

		if g.population.Current > 1 {
			lost := int(math.Floor(float64(g.population.Current) * severity * populationLossFactor))
			lost = min(lost, g.population.Current-1)
			if lost > 0 {
				g.population.Current -= lost
				record.People = lost
			}
		}

		if g.rng.Float64() < severity {
			if owned := g.ownedDemolishable(); len(owned) > 0 {
				bt := owned[g.rng.Intn(len(owned))]
				g.demolish(bt)
				record.Building = bt
				g.addEvent("Raiders destroyed a %s", buildingName(bt))
			}
		}

		if record.Losses.Total() > 0 || record.People > 0 {
			g.addEvent("Raid losses: %.0f food, %.0f wood, %.0f stone and %d people",
				record.Losses.Food, record.Losses.Wood, record.Losses.Stone, record.People)
		}
	}

	m.threatLevel = math.Max(0, m.threatLevel-threatDecayAfterRaid)
	m.history = append(m.history, record)

	g.logger.Info("raid resolved",
		"turn", g.turn,
		"strength", strength,
		"defense", record.Defense,
		"repelled", record.Repelled,
	)
	return &record
}
