package game

import (
	"fmt"

	"github.com/napolitain/microciv/internal/models"
)

// TechnologySystem tracks the researched set. Research completes
// immediately: the science cost is paid up front and the effect applies at once.
type TechnologySystem struct {
	researched map[models.TechID]bool
	order      []models.TechID
}

func newTechnologySystem() *TechnologySystem {
	return &TechnologySystem{researched: make(map[models.TechID]bool)}
}

// IsResearched reports whether a technology has been completed
func (t *TechnologySystem) IsResearched(id models.TechID) bool {
	return t.researched[id]
}

// Researched returns completed technologies in research order
func (t *TechnologySystem) Researched() []models.TechID {
	out := make([]models.TechID, len(t.order))
	copy(out, t.order)
	return out
}

// PrerequisitesMet reports whether every prerequisite of a technology is researched
func (t *TechnologySystem) PrerequisitesMet(tech *models.Technology) bool {
	for _, pre := range tech.Prerequisites {
		if !t.researched[pre] {
			return false
		}
	}
	return true
}

// AvailableTechnologies returns unresearched technologies whose
// prerequisites are met, in catalog order
func (t *TechnologySystem) AvailableTechnologies() []models.TechnologySummary {
	var out []models.TechnologySummary
	for _, tech := range models.AllTechnologies() {
		if t.researched[tech.ID] || !t.PrerequisitesMet(tech) {
			continue
		}
		out = append(out, models.TechnologySummary{
			ID:          tech.ID,
			Name:        tech.Name,
			Cost:        tech.Cost,
			Description: tech.Description,
		})
	}
	return out
}

// ProcessTurn is a no-op: research never spans turns
func (t *TechnologySystem) ProcessTurn(*Game) {}

// TryStartResearch researches a technology, paying its science cost
func (g *Game) TryStartResearch(id models.TechID) error {
	if g.won {
		return ErrGameWon
	}
	tech := models.GetTechnology(id)
	if tech == nil {
		return fmt.Errorf("research %q: %w", id, ErrUnknownTechnology)
	}
	if g.tech.IsResearched(id) {
		return fmt.Errorf("research %s: %w", tech.Name, ErrAlreadyResearched)
	}
	if !g.tech.PrerequisitesMet(tech) {
		return fmt.Errorf("research %s: %w", tech.Name, ErrMissingPrereqs)
	}
	if g.resources.Science < tech.Cost {
		return fmt.Errorf("research %s: %w", tech.Name, ErrNotEnoughScience)
	}

	g.resources.Science = max(0, g.resources.Science-tech.Cost)
	g.tech.researched[id] = true
	g.tech.order = append(g.tech.order, id)

	g.addEvent("Researched %s", tech.Name)
	g.logger.Debug("technology researched", "tech", id, "turn", g.turn)

	g.applyTechEffect(id)
	g.recompute()
	return nil
}

// StartResearch is the boolean form of TryStartResearch
func (g *Game) StartResearch(id models.TechID) bool {
	return g.logFailure(g.TryStartResearch(id)) == nil
}

// applyTechEffect mutates multipliers or costs exactly once per technology.
// Membership in the researched set guards against a second application.
func (g *Game) applyTechEffect(id models.TechID) {
	switch id {
	case models.TechAgriculture:
		g.multipliers[models.Farm] *= 1.5
		g.addEvent("Farms are now 50%% more productive")
	case models.TechIrrigation:
		g.addEvent("Farms now provide housing for one more person")
	case models.TechMining:
		g.multipliers[models.Quarry] *= 1.5
		g.addEvent("Quarries are now 50%% more productive")
	case models.TechWoodworking:
		g.multipliers[models.LumberMill] *= 1.5
		g.addEvent("Lumber mills are now 50%% more productive")
	case models.TechConstruction:
		for bt, cost := range g.costs {
			g.costs[bt] = cost.Scale(0.8)
		}
		g.addEvent("Buildings now cost 20%% less")
	case models.TechFertilizers:
		g.multipliers[models.Farm] *= 2
		g.addEvent("Farms now produce double food")
	case models.TechMetallurgy:
		g.multipliers[models.Quarry] *= 1.5
		g.addEvent("Quarries are now 50%% more productive")
	}
}
