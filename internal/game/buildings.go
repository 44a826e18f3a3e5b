package game

import (
	"fmt"
	"strings"

	"github.com/napolitain/microciv/internal/models"
)

// BuildingCost returns the current cost of a building, after technology discounts
func (g *Game) BuildingCost(bt models.BuildingType) (models.Resources, bool) {
	cost, ok := g.costs[bt]
	return cost, ok
}

// CanAfford reports whether stocks cover every listed cost of a building
func (g *Game) CanAfford(bt models.BuildingType) bool {
	cost, ok := g.costs[bt]
	if !ok {
		return false
	}
	return g.resources.Covers(cost)
}

// MeetsRequirements reports whether all prerequisite technologies are
// researched and all prerequisite building counts are met
func (g *Game) MeetsRequirements(bt models.BuildingType) bool {
	def := models.GetBuildingDefinition(bt)
	if def == nil {
		return false
	}
	for _, tech := range def.Requirement.Technologies {
		if !g.tech.IsResearched(tech) {
			return false
		}
	}
	for _, req := range def.Requirement.Buildings {
		if g.buildings.Get(req.Type) < req.Count {
			return false
		}
	}
	return true
}

// RequirementText describes a building's requirements for display,
// e.g. "Requires: Construction and 1 library". Empty when there are none.
func RequirementText(bt models.BuildingType) string {
	def := models.GetBuildingDefinition(bt)
	if def == nil || def.Requirement.IsEmpty() {
		return ""
	}

	var parts []string
	for _, id := range def.Requirement.Technologies {
		if tech := models.GetTechnology(id); tech != nil {
			parts = append(parts, tech.Name)
		}
	}
	for _, req := range def.Requirement.Buildings {
		parts = append(parts, fmt.Sprintf("%d %s", req.Count, strings.ToLower(buildingName(req.Type))))
	}
	return "Requires: " + strings.Join(parts, " and ")
}

func buildingName(bt models.BuildingType) string {
	if def := models.GetBuildingDefinition(bt); def != nil {
		return def.Name
	}
	return string(bt)
}

// TryBuild constructs one building. Either every cost is debited and the
// count increases by exactly one, or nothing changes.
func (g *Game) TryBuild(bt models.BuildingType) error {
	if g.won {
		return ErrGameWon
	}
	def := models.GetBuildingDefinition(bt)
	if def == nil {
		return fmt.Errorf("build %q: %w", bt, ErrUnknownBuilding)
	}
	if !g.MeetsRequirements(bt) {
		return fmt.Errorf("build %s: %w", def.Name, ErrRequirementsNotMet)
	}
	if !g.CanAfford(bt) {
		return fmt.Errorf("build %s: %w", def.Name, ErrCannotAfford)
	}

	cost := g.costs[bt]
	g.resources = models.Resources{
		Food:    g.resources.Food - cost.Food,
		Wood:    g.resources.Wood - cost.Wood,
		Stone:   g.resources.Stone - cost.Stone,
		Science: g.resources.Science - cost.Science,
	}.Clamped()
	g.buildings.Set(bt, g.buildings.Get(bt)+1)

	g.addEvent("Built a new %s", def.Name)
	g.logger.Debug("building constructed", "type", bt, "count", g.buildings.Get(bt))

	g.applyBuildingEffect(def)
	g.recompute()
	return nil
}

// Build is the boolean form of TryBuild; failures are written to the event log
func (g *Game) Build(bt models.BuildingType) bool {
	return g.logFailure(g.TryBuild(bt)) == nil
}

// applyBuildingEffect runs the one-shot effect of a newly constructed building.
// Capacity, production and defense are derived in recompute.
func (g *Game) applyBuildingEffect(def *models.BuildingDefinition) {
	switch def.Type {
	case models.Monument:
		g.declareVictory()
	case models.Barracks:
		if g.buildings.Barracks == 1 {
			g.addEvent("Your barracks can now train units")
		}
	}
}

// demolish removes one building of a type and reverses its contribution
func (g *Game) demolish(bt models.BuildingType) bool {
	if g.buildings.Get(bt) == 0 {
		return false
	}
	g.buildings.Set(bt, g.buildings.Get(bt)-1)
	g.recompute()
	return true
}

// ownedDemolishable lists owned building types that can be destroyed
func (g *Game) ownedDemolishable() []models.BuildingType {
	var out []models.BuildingType
	g.buildings.EachNonZero(func(bt models.BuildingType, _ int) {
		if bt != models.Monument {
			out = append(out, bt)
		}
	})
	return out
}
