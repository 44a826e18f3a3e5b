package solver

import (
	"math"
	"sort"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

// ArmyPlan is a set of units to train toward a defense target
type ArmyPlan struct {
	Units   models.Army
	Cost    models.Resources
	Defense int // Defense added by the plan, after the terrain multiplier
}

// defenseEfficiency returns defense per unit of total cost
func defenseEfficiency(def *models.UnitDefinition) float64 {
	total := def.Cost.Total()
	if total <= 0 {
		return float64(def.Defense)
	}
	return float64(def.Defense) / total
}

// PlanDefense greedily picks the most cost-efficient units until the added
// defense reaches need or the budget runs out
func PlanDefense(need int, multiplier float64, budget models.Resources) ArmyPlan {
	var plan ArmyPlan
	if need <= 0 {
		return plan
	}

	units := models.AllUnitDefinitions()
	sort.SliceStable(units, func(i, j int) bool {
		return defenseEfficiency(units[i]) > defenseEfficiency(units[j])
	})

	raw := 0
	for plan.Defense < need {
		var best *models.UnitDefinition
		for _, u := range units {
			remaining := models.Resources{
				Food:  budget.Food - plan.Cost.Food,
				Wood:  budget.Wood - plan.Cost.Wood,
				Stone: budget.Stone - plan.Cost.Stone,
			}
			if remaining.Covers(u.Cost) {
				best = u
				break
			}
		}
		if best == nil {
			break
		}

		plan.Units.Add(best.Type, 1)
		plan.Cost = models.Resources{
			Food:  plan.Cost.Food + best.Cost.Food,
			Wood:  plan.Cost.Wood + best.Cost.Wood,
			Stone: plan.Cost.Stone + best.Cost.Stone,
		}
		raw += best.Defense
		plan.Defense = int(math.Floor(float64(raw) * multiplier))
	}
	return plan
}

// expectedRaidStrength is the upper bound of the next raid's strength
func expectedRaidStrength(g *game.Game) int {
	threat := g.MilitarySystem().ThreatLevel()
	return int(math.Floor((10 + threat*0.8 + float64(g.Turn())*0.5) * 1.2))
}
