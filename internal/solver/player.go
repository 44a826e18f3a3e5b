// Package solver plays games automatically with greedy ROI heuristics.
package solver

import (
	"fmt"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

const (
	// DefaultMaxTurns bounds a single autoplay run
	DefaultMaxTurns = 200

	// DefenseRaidThreshold is the raid chance at which defensive strategies
	// start investing in barracks, walls and units
	DefenseRaidThreshold = 0.25
)

// Strategy defines how many producers are built before saving for the
// monument, and whether the player invests in defense
type Strategy struct {
	Producers int  // Max farms, lumber mills and quarries each
	Libraries int  // Max libraries
	Defense   bool // Build barracks/walls and train warriors when raids are likely
}

// String returns the strategy name
func (s Strategy) String() string {
	name := fmt.Sprintf("P%d/L%d", s.Producers, s.Libraries)
	if s.Defense {
		name += "+D"
	}
	return name
}

func (s Strategy) cap(bt models.BuildingType) int {
	switch bt {
	case models.Farm, models.LumberMill, models.Quarry:
		return s.Producers
	case models.Library:
		return s.Libraries
	case models.House:
		return s.Producers + 2
	case models.Barracks:
		return 1
	case models.Wall:
		return 2
	}
	return 0
}

// AllStrategies returns the strategies tried by PlayAllStrategies, in order
func AllStrategies() []Strategy {
	var out []Strategy
	for producers := 2; producers <= 4; producers++ {
		for libraries := 1; libraries <= 2; libraries++ {
			out = append(out,
				Strategy{Producers: producers, Libraries: libraries},
				Strategy{Producers: producers, Libraries: libraries, Defense: true},
			)
		}
	}
	return out
}

// ParseStrategy resolves a strategy by its String() name
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range AllStrategies() {
		if s.String() == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("unknown strategy %q", name)
}

// Action is one decision taken by the player
type Action struct {
	Turn   int
	Kind   string // build, research, train, trade
	Target string
}

// Result is the outcome of one autoplay run
type Result struct {
	Strategy Strategy
	Won      bool
	Turns    int // Turns ended before winning or giving up
	Actions  []Action
	Reports  []models.TurnReport
	Final    models.Snapshot
}

// Score orders results: a win beats no win, fewer turns beat more, then
// larger population and stocks
func (r Result) Score() float64 {
	if r.Won {
		return 1e6 - float64(r.Turns)
	}
	return float64(r.Final.Population.Current)*10 + r.Final.Resources.Total()
}

// Player is the greedy autoplayer
type Player struct {
	Strategy Strategy
	actions  []Action
}

// NewPlayer creates a player for a strategy
func NewPlayer(strategy Strategy) *Player {
	return &Player{Strategy: strategy}
}

// Play runs a fresh game with opts until the monument stands or maxTurns end.
// opts.Rand is ignored so every run with the same seed is reproducible.
func Play(opts game.Options, strategy Strategy, maxTurns int) (*Result, error) {
	opts.Rand = nil
	g, err := game.New(opts)
	if err != nil {
		return nil, err
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	p := NewPlayer(strategy)
	res := &Result{Strategy: strategy}

	for range maxTurns {
		p.TakeActions(g)
		if g.Won() {
			break
		}
		res.Reports = append(res.Reports, g.EndTurn())
		res.Turns++
		if g.Won() {
			break
		}
	}

	res.Won = g.Won()
	res.Actions = p.actions
	res.Final = g.Snapshot()
	return res, nil
}

// PlayAllStrategies plays every strategy on the same seed and returns the best
func PlayAllStrategies(opts game.Options, maxTurns int) (*Result, []*Result, error) {
	var best *Result
	var results []*Result

	for _, strategy := range AllStrategies() {
		res, err := Play(opts, strategy, maxTurns)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, res)
		if best == nil || res.Score() > best.Score() {
			best = res
		}
	}
	return best, results, nil
}

// TakeActions performs every action the player wants this turn. The monument
// comes first; once it is unlocked the player only saves and trades for it.
func (p *Player) TakeActions(g *game.Game) {
	if g.Won() {
		return
	}
	p.research(g)

	if g.MeetsRequirements(models.Monument) {
		p.tradeToward(g, models.Monument)
		p.feedPopulation(g)
		if g.Build(models.Monument) {
			p.record(g, "build", string(models.Monument))
		}
		return
	}

	p.defend(g)
	p.buildGreedy(g)
	p.tradeToward(g, models.Monument)
}

func (p *Player) record(g *game.Game, kind, target string) {
	p.actions = append(p.actions, Action{Turn: g.Turn(), Kind: kind, Target: target})
}

// research buys the best affordable technology
func (p *Player) research(g *game.Game) {
	for {
		var best *models.TechnologySummary
		bestROI := 0.0
		for _, tech := range g.TechnologySystem().AvailableTechnologies() {
			if tech.Cost > g.Resources().Science {
				continue
			}
			if roi := techPriority(g, tech); roi > bestROI {
				t := tech
				best, bestROI = &t, roi
			}
		}
		if best == nil || !g.StartResearch(best.ID) {
			return
		}
		p.record(g, "research", string(best.ID))
	}
}

// buildGreedy builds the highest ROI affordable building until nothing fits
func (p *Player) buildGreedy(g *game.Game) {
	for {
		built := false
		for _, c := range p.rankBuildings(g) {
			if !g.CanAfford(c.Type) {
				continue
			}
			if g.Build(c.Type) {
				p.record(g, "build", string(c.Type))
				built = true
				break
			}
		}
		if !built {
			return
		}
	}
}

// feedPopulation adds a farm when the population is about to starve
func (p *Player) feedPopulation(g *game.Game) {
	if g.Production().Food >= g.Population().FoodNeeded() {
		return
	}
	if g.Buildings().Farm >= p.Strategy.cap(models.Farm) {
		return
	}
	if g.Build(models.Farm) {
		p.record(g, "build", string(models.Farm))
	}
}

// defend trains warriors when raids are likely
func (p *Player) defend(g *game.Game) {
	if !p.Strategy.Defense || g.Buildings().Barracks == 0 {
		return
	}
	m := g.MilitarySystem()
	if m.RaidChance() < DefenseRaidThreshold {
		return
	}

	budget := g.Resources()
	budget.Food -= g.Population().FoodNeeded() * 2
	need := expectedRaidStrength(g) - m.DefenseValue()
	multiplier := g.TerrainSystem().Current().DefenseMultiplier()

	plan := PlanDefense(need, multiplier, budget.Clamped())
	for _, ut := range models.AllUnitTypes() {
		for range plan.Units.Get(ut) {
			if !g.TrainUnit(ut) {
				return
			}
			p.record(g, "train", string(ut))
		}
	}
}

// tradeToward accepts offers that turn surplus into a building's missing resource
func (p *Player) tradeToward(g *game.Game, bt models.BuildingType) {
	cost, ok := g.BuildingCost(bt)
	if !ok {
		return
	}
	for i := 0; i < len(g.TradeOptions()); {
		offer := g.TradeOptions()[i]
		res := g.Resources()
		short := res.Get(offer.Receive) < cost.Get(offer.Receive)
		spare := res.Get(offer.Give)-offer.GiveAmount >= cost.Get(offer.Give)
		if offer.Give == models.Food {
			spare = res.Food-offer.GiveAmount >= g.Population().FoodNeeded()*2
		}
		if short && spare && g.Trade(i) {
			p.record(g, "trade", fmt.Sprintf("%s->%s", offer.Give, offer.Receive))
			continue
		}
		i++
	}
}
