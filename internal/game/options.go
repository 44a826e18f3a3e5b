package game

import (
	"log/slog"
	"math/rand"

	"github.com/napolitain/microciv/internal/models"
)

// Game mechanics constants
const (
	// DefaultEventChance is the per-turn probability of rolling a random event
	DefaultEventChance = 0.3

	// DefaultRaidChance is the baseline raid probability before threat is added
	DefaultRaidChance = 0.1

	// MaxRaidChance caps the per-turn raid probability
	MaxRaidChance = 0.7

	// DefaultLogCapacity is how many event log entries are retained
	DefaultLogCapacity = 10

	// TradeOfferCount is how many offers a caravan brings
	TradeOfferCount = 3
)

// Random is the source of every stochastic decision in the engine.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Options configures a new game. Start from DefaultOptions: a zero
// EventChance or BaseRaidChance is kept as is and turns that roll off.
type Options struct {
	Seed           int64
	Rand           Random // Overrides Seed when set
	Terrain        models.TerrainID
	SeasonLength   int
	EventChance    float64
	BaseRaidChance float64
	LogCapacity    int
	Logger         *slog.Logger
}

// DefaultOptions returns the standard game settings
func DefaultOptions() Options {
	return Options{
		Seed:           1,
		Terrain:        models.DefaultTerrain,
		SeasonLength:   models.DefaultSeasonLength,
		EventChance:    DefaultEventChance,
		BaseRaidChance: DefaultRaidChance,
		LogCapacity:    DefaultLogCapacity,
	}
}

// withDefaults fills zero terrain, season length, log capacity, rand and logger
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Terrain == "" {
		o.Terrain = d.Terrain
	}
	if o.SeasonLength <= 0 {
		o.SeasonLength = d.SeasonLength
	}
	if o.LogCapacity <= 0 {
		o.LogCapacity = d.LogCapacity
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(o.Seed))
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
