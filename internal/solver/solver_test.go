package solver

import (
	"reflect"
	"testing"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

func TestStrategyNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range AllStrategies() {
		name := s.String()
		if seen[name] {
			t.Errorf("duplicate strategy name %s", name)
		}
		seen[name] = true

		parsed, err := ParseStrategy(name)
		if err != nil || parsed != s {
			t.Errorf("ParseStrategy(%s) = %+v, %v", name, parsed, err)
		}
	}
	if _, err := ParseStrategy("turtle"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestROIMetric(t *testing.T) {
	tests := []struct {
		name   string
		metric ROIMetric
		want   float64
	}{
		{"free", ROIMetric{Gain: 2}, 2000},
		{"plain", ROIMetric{Gain: 3, TotalCost: 6}, 0.5},
		{"scarce", ROIMetric{Gain: 3, TotalCost: 6, ScarcityBonus: 0.5}, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.metric.Calculate(); got != tt.want {
				t.Errorf("Calculate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankBuildingsFreshGame(t *testing.T) {
	g := game.MustNew(game.DefaultOptions())
	p := NewPlayer(Strategy{Producers: 2, Libraries: 1})

	ranked := p.rankBuildings(g)
	if len(ranked) == 0 {
		t.Fatal("no candidates on a fresh game")
	}
	for _, c := range ranked {
		if !g.MeetsRequirements(c.Type) {
			t.Errorf("%s ranked without its requirements", c.Type)
		}
		if c.Type == models.Monument {
			t.Error("monument should never be ranked")
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].ROI > ranked[i-1].ROI {
			t.Errorf("ranking not descending at %d: %v > %v", i, ranked[i].ROI, ranked[i-1].ROI)
		}
	}
}

func TestDefenseValuedAboveRaidThreshold(t *testing.T) {
	defensive := NewPlayer(Strategy{Producers: 2, Libraries: 1, Defense: true})
	passive := NewPlayer(Strategy{Producers: 2, Libraries: 1})

	calm := game.MustNew(game.DefaultOptions())
	if got := defensive.buildingMetric(calm, models.Wall, resourceWeights(calm)).Gain; got != 0 {
		t.Errorf("wall gain below threshold = %v, want 0", got)
	}

	opts := game.DefaultOptions()
	opts.BaseRaidChance = DefenseRaidThreshold
	raided := game.MustNew(opts)
	if got := defensive.buildingMetric(raided, models.Wall, resourceWeights(raided)).Gain; got <= 0 {
		t.Errorf("wall gain at threshold = %v, want > 0", got)
	}
	if got := passive.buildingMetric(raided, models.Wall, resourceWeights(raided)).Gain; got != 0 {
		t.Errorf("non-defensive wall gain = %v, want 0", got)
	}
}

func TestTakeActionsNeverBreaksInvariants(t *testing.T) {
	for _, strategy := range AllStrategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			g := game.MustNew(game.DefaultOptions())
			p := NewPlayer(strategy)
			for range 60 {
				p.TakeActions(g)
				b := g.Buildings()
				for _, bt := range []models.BuildingType{models.Farm, models.LumberMill, models.Quarry, models.Library} {
					if b.Get(bt) > strategy.cap(bt) {
						t.Fatalf("%s count %d exceeds cap %d", bt, b.Get(bt), strategy.cap(bt))
					}
				}
				g.EndTurn()
				r := g.Resources()
				if r.Food < 0 || r.Wood < 0 || r.Stone < 0 || r.Science < 0 {
					t.Fatalf("negative resources %+v", r)
				}
			}
		})
	}
}

func TestPlayDeterminism(t *testing.T) {
	opts := game.DefaultOptions()
	opts.Seed = 7
	strategy := Strategy{Producers: 3, Libraries: 2}

	first, err := Play(opts, strategy, 120)
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}

	const iterations = 10
	for i := 1; i < iterations; i++ {
		res, err := Play(opts, strategy, 120)
		if err != nil {
			t.Fatalf("Play() error: %v", err)
		}
		if res.Turns != first.Turns || res.Won != first.Won {
			t.Errorf("Iteration %d: turns/won mismatch: got %d/%v, want %d/%v",
				i, res.Turns, res.Won, first.Turns, first.Won)
		}
		if !reflect.DeepEqual(res.Actions, first.Actions) {
			t.Errorf("Iteration %d: action sequence diverged", i)
		}
		if !reflect.DeepEqual(res.Final, first.Final) {
			t.Errorf("Iteration %d: final snapshot diverged", i)
		}
	}
}

func TestPlayResultConsistency(t *testing.T) {
	res, err := Play(game.DefaultOptions(), Strategy{Producers: 3, Libraries: 2}, 150)
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if len(res.Reports) != res.Turns {
		t.Errorf("reports = %d, turns = %d", len(res.Reports), res.Turns)
	}
	if res.Won != res.Final.Won {
		t.Errorf("result won = %v, snapshot won = %v", res.Won, res.Final.Won)
	}
	if res.Won && res.Final.Buildings.Monument == 0 {
		t.Error("won without a monument")
	}
	if !res.Won && res.Turns != 150 {
		t.Errorf("gave up after %d turns, want 150", res.Turns)
	}
	t.Logf("strategy %s: won=%v turns=%d actions=%d", res.Strategy, res.Won, res.Turns, len(res.Actions))
}

func TestPlayUnknownTerrain(t *testing.T) {
	opts := game.DefaultOptions()
	opts.Terrain = "swamp"
	if _, err := Play(opts, Strategy{Producers: 2, Libraries: 1}, 10); err == nil {
		t.Error("expected error for unknown terrain")
	}
}

func TestPlayAllStrategiesPicksBest(t *testing.T) {
	best, results, err := PlayAllStrategies(game.DefaultOptions(), 150)
	if err != nil {
		t.Fatalf("PlayAllStrategies() error: %v", err)
	}
	if len(results) != len(AllStrategies()) {
		t.Fatalf("results = %d, want %d", len(results), len(AllStrategies()))
	}
	for _, r := range results {
		if r.Score() > best.Score() {
			t.Errorf("strategy %s scored %v above best %s (%v)", r.Strategy, r.Score(), best.Strategy, best.Score())
		}
	}
}

func TestPlanDefense(t *testing.T) {
	tests := []struct {
		name       string
		need       int
		multiplier float64
		budget     models.Resources
		wantDef    int
		wantUnits  int
	}{
		{"nothing needed", 0, 1, models.Uniform(100), 0, 0},
		{"warriors are most efficient", 10, 1, models.Uniform(100), 10, 2},
		{"terrain bonus", 14, 1.5, models.Uniform(100), 15, 2},
		{"budget limited", 50, 1, models.Resources{Food: 10, Wood: 6}, 10, 2},
		{"no budget", 10, 1, models.Resources{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanDefense(tt.need, tt.multiplier, tt.budget)
			if plan.Defense != tt.wantDef || plan.Units.TotalUnits() != tt.wantUnits {
				t.Errorf("plan = %+v, want defense %d with %d units", plan, tt.wantDef, tt.wantUnits)
			}
			if !tt.budget.Covers(plan.Cost) {
				t.Errorf("plan cost %+v exceeds budget %+v", plan.Cost, tt.budget)
			}
		})
	}
}
