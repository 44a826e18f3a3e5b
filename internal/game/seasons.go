package game

import (
	"fmt"

	"github.com/napolitain/microciv/internal/models"
)

// SeasonsSystem is the spring, summer, autumn, winter cycle
type SeasonsSystem struct {
	current       models.SeasonID
	turnsInSeason int
	length        int
}

func newSeasonsSystem(length int) *SeasonsSystem {
	if length <= 0 {
		length = models.DefaultSeasonLength
	}
	return &SeasonsSystem{current: models.Spring, length: length}
}

// Current returns the active season profile
func (s *SeasonsSystem) Current() *models.Season {
	return models.GetSeason(s.current)
}

// Length returns the number of turns per season
func (s *SeasonsSystem) Length() int { return s.length }

// TurnsInSeason returns how many turns of the active season have elapsed
func (s *SeasonsSystem) TurnsInSeason() int { return s.turnsInSeason }

// Modifiers returns the active season's production multipliers
func (s *SeasonsSystem) Modifiers() models.Resources {
	if season := s.Current(); season != nil {
		return season.Modifiers
	}
	return models.Uniform(1)
}

// EventWeight returns the active season's weight hint for an event kind
func (s *SeasonsSystem) EventWeight(kind models.EventKind) float64 {
	if season := s.Current(); season != nil {
		return season.EventWeight(kind)
	}
	return 1.0
}

// CurrentSeasonInfo returns the display view of the active season
func (s *SeasonsSystem) CurrentSeasonInfo() models.SeasonInfo {
	season := s.Current()
	return models.SeasonInfo{
		ID:             season.ID,
		Name:           season.Name,
		Description:    season.Description,
		Modifiers:      season.Modifiers,
		TurnsRemaining: s.length - s.turnsInSeason,
	}
}

// SeasonChangeWarning returns a message when the season changes on the next turn
func (s *SeasonsSystem) SeasonChangeWarning() (string, bool) {
	if s.turnsInSeason != s.length-1 {
		return "", false
	}
	next := models.GetSeason(models.NextSeason(s.current))
	return fmt.Sprintf("%s is coming next turn. %s", next.Name, next.Description), true
}

// processTurn advances the cycle. Returns true when the season changed.
func (s *SeasonsSystem) processTurn(g *Game) bool {
	s.turnsInSeason++
	if s.turnsInSeason < s.length {
		return false
	}
	s.turnsInSeason = 0
	s.current = models.NextSeason(s.current)

	season := s.Current()
	g.addEvent("Season changed to %s. %s", season.Name, season.Description)
	g.logger.Info("season changed", "season", season.ID, "turn", g.turn)
	return true
}
