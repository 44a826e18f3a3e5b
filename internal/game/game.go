// Package game implements the turn-based civilization simulation: resource
// production, buildings, technologies, terrain and seasons, raids, random
// events and trade. A Game is single-threaded; callers that share one across
// goroutines must serialize access themselves.
package game

import (
	"fmt"
	"log/slog"

	"github.com/napolitain/microciv/internal/models"
)

// Phase is the turn lifecycle state
type Phase int

const (
	PhaseAwaitingInput Phase = iota
	PhaseResolving
	PhaseWon
)

// String returns a string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "AwaitingInput"
	case PhaseResolving:
		return "Resolving"
	case PhaseWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// Game is the aggregate root owning every subsystem
type Game struct {
	turn  int
	won   bool
	phase Phase

	resources      models.Resources
	baseProduction models.Resources
	rawProduction  models.Resources // base + buildings, before terrain and season
	production     models.Resources
	population     models.Population
	buildings      models.BuildingCounts

	costs       map[models.BuildingType]models.Resources
	multipliers map[models.BuildingType]float64
	tradeOffers []models.TradeOffer

	terrain  *TerrainSystem
	seasons  *SeasonsSystem
	tech     *TechnologySystem
	military *MilitarySystem
	events   *EventsSystem

	log    *EventLog
	rng    Random
	logger *slog.Logger
}

// New creates a game in its starting state. An unknown terrain in opts is
// an error. Zero chances are honored, see Options.
func New(opts Options) (*Game, error) {
	opts = opts.withDefaults()

	terrain := models.GetTerrain(opts.Terrain)
	if terrain == nil {
		return nil, fmt.Errorf("new game: %w: %s", ErrUnknownTerrain, opts.Terrain)
	}

	g := &Game{
		turn:           1,
		phase:          PhaseAwaitingInput,
		resources:      models.Resources{Food: 10, Wood: 10},
		baseProduction: models.Resources{Food: 1, Wood: 0.5, Stone: 0.1},
		population: models.Population{
			Current:                  2,
			FoodConsumptionPerPerson: 1,
		},
		buildings:   models.BuildingCounts{House: 2},
		costs:       make(map[models.BuildingType]models.Resources),
		multipliers: make(map[models.BuildingType]float64),
		terrain:     newTerrainSystem(terrain.ID),
		seasons:     newSeasonsSystem(opts.SeasonLength),
		tech:        newTechnologySystem(),
		military:    newMilitarySystem(opts.BaseRaidChance),
		events:      newEventsSystem(opts.EventChance),
		log:         NewEventLog(opts.LogCapacity),
		rng:         opts.Rand,
		logger:      opts.Logger,
	}

	for _, def := range models.AllBuildingDefinitions() {
		g.costs[def.Type] = def.Cost
		g.multipliers[def.Type] = 1.0
	}

	g.military.terrainDefenseMultiplier = terrain.DefenseMultiplier()
	g.recompute()

	g.logger.Debug("game created",
		"terrain", terrain.ID,
		"season_length", opts.SeasonLength,
		"event_chance", opts.EventChance,
	)
	return g, nil
}

// MustNew is New for options known to be valid
func MustNew(opts Options) *Game {
	g, err := New(opts)
	if err != nil {
		panic(err)
	}
	return g
}

// addEvent appends a message to the player-facing log
func (g *Game) addEvent(format string, args ...any) {
	g.log.Add(g.turn, fmt.Sprintf(format, args...))
}

// logFailure records a rejected action and passes the error through
func (g *Game) logFailure(err error) error {
	if err != nil {
		g.addEvent("%s", capitalize(err.Error()))
	}
	return err
}

// recompute rebuilds every derived aggregate from scratch
func (g *Game) recompute() {
	g.updateCapacity()
	g.UpdateProduction()
	g.military.updateDefenseValue(&g.buildings)
}

// declareVictory moves the game into its terminal state
func (g *Game) declareVictory() {
	if g.won {
		return
	}
	g.won = true
	g.phase = PhaseWon
	g.addEvent("Victory! You've built the Monument!")
	g.logger.Info("game won", "turn", g.turn)
}

// Turn returns the current turn number (starts at 1)
func (g *Game) Turn() int { return g.turn }

// Won reports whether the monument has been built
func (g *Game) Won() bool { return g.won }

// Phase returns the lifecycle state
func (g *Game) Phase() Phase { return g.phase }

// Resources returns the current stocks
func (g *Game) Resources() models.Resources { return g.resources }

// Production returns the per-turn production after all modifiers
func (g *Game) Production() models.Resources { return g.production }

// RawProduction returns base plus building production before terrain and season
func (g *Game) RawProduction() models.Resources { return g.rawProduction }

// Population returns the population state
func (g *Game) Population() models.Population { return g.population }

// Buildings returns a copy of the owned building counts
func (g *Game) Buildings() models.BuildingCounts { return g.buildings }

// EventLog returns the retained log entries, oldest first
func (g *Game) EventLog() []models.LogEntry { return g.log.Entries() }

// TerrainSystem returns the terrain subsystem
func (g *Game) TerrainSystem() *TerrainSystem { return g.terrain }

// SeasonsSystem returns the seasons subsystem
func (g *Game) SeasonsSystem() *SeasonsSystem { return g.seasons }

// TechnologySystem returns the technology subsystem
func (g *Game) TechnologySystem() *TechnologySystem { return g.tech }

// MilitarySystem returns the military subsystem
func (g *Game) MilitarySystem() *MilitarySystem { return g.military }

// EventsSystem returns the random events subsystem
func (g *Game) EventsSystem() *EventsSystem { return g.events }

// ProductionMultiplier returns the technology multiplier for a building type
func (g *Game) ProductionMultiplier(bt models.BuildingType) float64 {
	if m, ok := g.multipliers[bt]; ok {
		return m
	}
	return 1.0
}

// Snapshot returns a read-only copy of the displayable state
func (g *Game) Snapshot() models.Snapshot {
	offers := make([]models.TradeOffer, len(g.tradeOffers))
	copy(offers, g.tradeOffers)

	return models.Snapshot{
		Turn:          g.turn,
		Won:           g.won,
		Resources:     g.resources,
		Production:    g.production,
		Population:    g.population,
		Buildings:     g.buildings,
		Army:          g.military.units,
		Defense:       g.military.defenseValue,
		ThreatLevel:   g.military.threatLevel,
		Terrain:       g.terrain.current,
		Season:        g.seasons.current,
		TurnsInSeason: g.seasons.turnsInSeason,
		Researched:    g.tech.Researched(),
		TradeOffers:   offers,
		Events:        g.log.Entries(),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
