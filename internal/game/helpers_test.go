package game

import (
	"testing"

	"github.com/napolitain/microciv/internal/models"
)

// scriptedRand replays queued draws, then falls back to fixed values
type scriptedRand struct {
	floats        []float64
	ints          []int
	fallbackFloat float64
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return r.fallbackFloat
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// quietRand never triggers raids, events or loot
func quietRand() *scriptedRand {
	return &scriptedRand{fallbackFloat: 0.99}
}

func newTestGame(t *testing.T, rng Random) *Game {
	t.Helper()
	opts := DefaultOptions()
	opts.Rand = rng
	g, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g
}

func assertNonNegative(t *testing.T, r models.Resources) {
	t.Helper()
	r.Each(func(rt models.ResourceType, v float64) {
		if v < 0 {
			t.Errorf("%s = %v, want >= 0", rt, v)
		}
	})
}

func lastEvent(g *Game) string {
	entries := g.EventLog()
	if len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1].Message
}

const epsilon = 1e-9

func approx(a, b float64) bool {
	d := a - b
	return d < epsilon && d > -epsilon
}
