package game

import (
	"fmt"
	"math"

	"github.com/napolitain/microciv/internal/models"
)

// GenerateTradeOptions replaces the current offers with a fresh set
func (g *Game) GenerateTradeOptions() []models.TradeOffer {
	mats := models.MaterialResourceTypes()
	mult := g.terrain.TradeMultiplier()

	offers := make([]models.TradeOffer, 0, TradeOfferCount)
	for range TradeOfferCount {
		gi := g.rng.Intn(len(mats))
		ri := (gi + 1 + g.rng.Intn(len(mats)-1)) % len(mats)

		give := float64(5 + g.rng.Intn(6))
		rate := 0.6 + 0.4*g.rng.Float64()
		receive := math.Max(1, math.Floor(give*rate*mult))

		offers = append(offers, models.TradeOffer{
			Give:          mats[gi],
			GiveAmount:    give,
			Receive:       mats[ri],
			ReceiveAmount: receive,
		})
	}
	g.tradeOffers = offers
	return g.TradeOptions()
}

// TradeOptions returns a copy of the pending offers
func (g *Game) TradeOptions() []models.TradeOffer {
	out := make([]models.TradeOffer, len(g.tradeOffers))
	copy(out, g.tradeOffers)
	return out
}

// TryTrade accepts the offer at index, consuming it
func (g *Game) TryTrade(index int) error {
	if g.won {
		return ErrGameWon
	}
	if index < 0 || index >= len(g.tradeOffers) {
		return fmt.Errorf("trade %d: %w", index, ErrInvalidTrade)
	}
	offer := g.tradeOffers[index]
	if g.resources.Get(offer.Give) < offer.GiveAmount {
		return fmt.Errorf("trade %.0f %s: %w", offer.GiveAmount, offer.Give, ErrCannotAfford)
	}

	g.resources.Add(offer.Give, -offer.GiveAmount)
	g.resources.Add(offer.Receive, offer.ReceiveAmount)
	g.clampResources()
	g.tradeOffers = append(g.tradeOffers[:index:index], g.tradeOffers[index+1:]...)

	g.addEvent("Traded %.0f %s for %.0f %s", offer.GiveAmount, offer.Give, offer.ReceiveAmount, offer.Receive)
	return nil
}

// Trade is the boolean form of TryTrade
func (g *Game) Trade(index int) bool {
	return g.logFailure(g.TryTrade(index)) == nil
}
