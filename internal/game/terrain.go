package game

import (
	"fmt"

	"github.com/napolitain/microciv/internal/models"
)

// TerrainSystem holds the single active terrain
type TerrainSystem struct {
	current models.TerrainID
}

func newTerrainSystem(id models.TerrainID) *TerrainSystem {
	return &TerrainSystem{current: id}
}

// Current returns the active terrain profile
func (t *TerrainSystem) Current() *models.Terrain {
	return models.GetTerrain(t.current)
}

// Modifiers returns the active terrain's production multipliers
func (t *TerrainSystem) Modifiers() models.Resources {
	if terrain := t.Current(); terrain != nil {
		return terrain.Modifiers
	}
	return models.Uniform(1)
}

// TradeMultiplier returns the active terrain's trade bonus
func (t *TerrainSystem) TradeMultiplier() float64 {
	if terrain := t.Current(); terrain != nil {
		return terrain.TradeMultiplier()
	}
	return 1.0
}

// Info returns the display view of the active terrain
func (t *TerrainSystem) Info() models.TerrainSummary {
	terrain := t.Current()
	return models.TerrainSummary{
		ID:          terrain.ID,
		Name:        terrain.Name,
		Description: terrain.Description,
	}
}

// AllTerrainTypes lists every selectable terrain
func (t *TerrainSystem) AllTerrainTypes() []models.TerrainSummary {
	all := models.AllTerrains()
	out := make([]models.TerrainSummary, 0, len(all))
	for _, terrain := range all {
		out = append(out, models.TerrainSummary{
			ID:          terrain.ID,
			Name:        terrain.Name,
			Description: terrain.Description,
		})
	}
	return out
}

// TryChangeTerrain switches terrain and recomputes production and defense
func (g *Game) TryChangeTerrain(id models.TerrainID) error {
	if g.won {
		return ErrGameWon
	}
	terrain := models.GetTerrain(id)
	if terrain == nil {
		return fmt.Errorf("change terrain %q: %w", id, ErrUnknownTerrain)
	}

	g.terrain.current = id
	g.military.terrainDefenseMultiplier = terrain.DefenseMultiplier()
	g.recompute()

	g.addEvent("Your civilization now lives on %s", terrain.Name)
	return nil
}

// ChangeTerrain is the boolean form of TryChangeTerrain
func (g *Game) ChangeTerrain(id models.TerrainID) bool {
	return g.logFailure(g.TryChangeTerrain(id)) == nil
}
