package game

import (
	"math"

	"github.com/napolitain/microciv/internal/models"
)

// EventsSystem rolls weighted random events from the catalog
type EventsSystem struct {
	chance  float64
	catalog []*models.RandomEvent
}

func newEventsSystem(chance float64) *EventsSystem {
	return &EventsSystem{chance: chance, catalog: models.AllRandomEvents()}
}

// Chance returns the per-turn probability of rolling an event
func (e *EventsSystem) Chance() float64 { return e.chance }

// Candidate is an applicable event with its season-scaled weight
type Candidate struct {
	Event  *models.RandomEvent
	Weight float64
}

// Candidates returns the events whose condition holds, in catalog order
func (e *EventsSystem) Candidates(g *Game) []Candidate {
	var out []Candidate
	for _, ev := range e.catalog {
		if !eventCondition(g, ev.Kind) {
			continue
		}
		w := ev.Weight * g.seasons.EventWeight(ev.Kind)
		if w <= 0 {
			continue
		}
		out = append(out, Candidate{Event: ev, Weight: w})
	}
	return out
}

// checkForRandomEvent rolls the trigger chance, then picks one candidate by
// cumulative weight. Returns the kind fired, empty if none.
func (e *EventsSystem) checkForRandomEvent(g *Game) models.EventKind {
	if g.rng.Float64() >= e.chance {
		return ""
	}
	candidates := e.Candidates(g)
	if len(candidates) == 0 {
		return ""
	}

	total := 0.0
	for _, c := range candidates {
		total += c.Weight
	}

	r := g.rng.Float64() * total
	chosen := candidates[len(candidates)-1].Event
	for _, c := range candidates {
		r -= c.Weight
		if r <= 0 {
			chosen = c.Event
			break
		}
	}

	g.addEvent("%s: %s", chosen.Name, chosen.Description)
	applyEventEffect(g, chosen.Kind)
	g.logger.Debug("random event", "kind", chosen.Kind, "turn", g.turn)
	return chosen.Kind
}

// eventCondition reports whether an event may fire in the current state
func eventCondition(g *Game, kind models.EventKind) bool {
	switch kind {
	case models.EventBountifulHarvest:
		return true
	case models.EventWoodRot:
		return g.resources.Wood >= 5
	case models.EventWanderingNomads:
		return g.population.Current < g.population.Capacity-1
	case models.EventNaturalDisaster:
		return g.buildings.Total() >= 4
	case models.EventResourceDiscovery:
		return g.turn > 5
	case models.EventEpidemic:
		return g.population.Current > 4 && g.turn > 10
	case models.EventScientificBreakthrough:
		return g.production.Science > 0
	case models.EventTradeCaravan:
		return g.resources.Food > 5 || g.resources.Wood > 5 || g.resources.Stone > 3
	}
	return false
}

// applyEventEffect mutates state for a fired event
func applyEventEffect(g *Game, kind models.EventKind) {
	switch kind {
	case models.EventBountifulHarvest:
		amount := math.Max(3, math.Floor(g.production.Food*0.5))
		g.resources.Food += amount
		g.addEvent("Gained %.0f food", amount)

	case models.EventWoodRot:
		amount := math.Ceil(g.resources.Wood * 0.2)
		g.resources.Wood = math.Max(0, g.resources.Wood-amount)
		g.addEvent("Lost %.0f wood", amount)

	case models.EventWanderingNomads:
		joined := min(2, g.population.Capacity-g.population.Current)
		if joined > 0 {
			g.population.Current += joined
			g.addEvent("%d nomads joined your civilization", joined)
		}

	case models.EventNaturalDisaster:
		owned := g.ownedDemolishable()
		if len(owned) == 0 {
			return
		}
		bt := owned[g.rng.Intn(len(owned))]
		g.demolish(bt)
		g.addEvent("A %s was destroyed", buildingName(bt))

	case models.EventResourceDiscovery:
		mats := models.MaterialResourceTypes()
		rt := mats[g.rng.Intn(len(mats))]
		amount := math.Floor(5 + float64(g.turn)/3)
		g.resources.Add(rt, amount)
		g.addEvent("Found %.0f %s", amount, rt)

	case models.EventEpidemic:
		lost := max(1, int(math.Floor(float64(g.population.Current)*0.2)))
		lost = min(lost, g.population.Current-1)
		if lost > 0 {
			g.population.Current -= lost
			g.addEvent("%d people died of disease", lost)
		}

	case models.EventScientificBreakthrough:
		amount := math.Ceil(g.production.Science * 3)
		g.resources.Science += amount
		g.addEvent("Gained %.0f science", amount)

	case models.EventTradeCaravan:
		g.GenerateTradeOptions()
		g.addEvent("Merchants brought %d trade offers", len(g.tradeOffers))
	}
}
