package models

// SeasonID identifies a season
type SeasonID string

const (
	Spring SeasonID = "spring"
	Summer SeasonID = "summer"
	Autumn SeasonID = "autumn"
	Winter SeasonID = "winter"
)

// DefaultSeasonLength is the number of turns per season
const DefaultSeasonLength = 3

// SeasonOrder returns the seasons in cycle order
func SeasonOrder() []SeasonID {
	return []SeasonID{Spring, Summer, Autumn, Winter}
}

// NextSeason returns the season after id in the cycle
func NextSeason(id SeasonID) SeasonID {
	order := SeasonOrder()
	for i, s := range order {
		if s == id {
			return order[(i+1)%len(order)]
		}
	}
	return Spring
}

// Season is a static season profile
type Season struct {
	ID           SeasonID
	Name         string
	Description  string
	Modifiers    Resources // Production multipliers
	EventWeights map[EventKind]float64
}

// EventWeight returns the weight hint for an event kind (1.0 when absent)
func (s *Season) EventWeight(kind EventKind) float64 {
	if w, ok := s.EventWeights[kind]; ok {
		return w
	}
	return 1.0
}

// AllSeasons returns the season catalog in cycle order
func AllSeasons() []*Season {
	return []*Season{
		{
			ID:          Spring,
			Name:        "Spring",
			Description: "Growing season with increased food production.",
			Modifiers:   Resources{Food: 1.5, Wood: 1.2, Stone: 1.0, Science: 1.0},
			EventWeights: map[EventKind]float64{
				EventBountifulHarvest: 2.0,
				EventWanderingNomads:  1.5,
				EventWoodRot:          1.2, // Spring showers
			},
		},
		{
			ID:          Summer,
			Name:        "Summer",
			Description: "Peak productivity season for most resources.",
			Modifiers:   Resources{Food: 1.3, Wood: 1.2, Stone: 1.3, Science: 1.1},
			EventWeights: map[EventKind]float64{
				EventResourceDiscovery: 1.5,
				EventTradeCaravan:      1.5,
				EventNaturalDisaster:   1.2, // Summer storms
			},
		},
		{
			ID:          Autumn,
			Name:        "Autumn",
			Description: "Harvest season with balanced production.",
			Modifiers:   Resources{Food: 1.4, Wood: 1.1, Stone: 1.0, Science: 1.2},
			EventWeights: map[EventKind]float64{
				EventBountifulHarvest:  1.8,
				EventResourceDiscovery: 1.2,
				EventTradeCaravan:      1.3,
			},
		},
		{
			ID:          Winter,
			Name:        "Winter",
			Description: "Cold season with reduced production but increased research.",
			Modifiers:   Resources{Food: 0.6, Wood: 0.7, Stone: 0.8, Science: 1.4},
			EventWeights: map[EventKind]float64{
				EventScientificBreakthrough: 1.5,
				EventWoodRot:                0.5,
				EventNaturalDisaster:        1.5,
				EventEpidemic:               1.3, // Close quarters
			},
		},
	}
}

// GetSeason returns the season for an id, nil if unknown
func GetSeason(id SeasonID) *Season {
	for _, s := range AllSeasons() {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SeasonInfo is the read-only view of the active season
type SeasonInfo struct {
	ID             SeasonID
	Name           string
	Description    string
	Modifiers      Resources
	TurnsRemaining int
}
