package models

// EventKind identifies a random event in the catalog
type EventKind string

const (
	EventBountifulHarvest       EventKind = "bountiful_harvest"
	EventWoodRot                EventKind = "wood_rot"
	EventWanderingNomads        EventKind = "wandering_nomads"
	EventNaturalDisaster        EventKind = "natural_disaster"
	EventResourceDiscovery      EventKind = "resource_discovery"
	EventEpidemic               EventKind = "epidemic"
	EventScientificBreakthrough EventKind = "scientific_breakthrough"
	EventTradeCaravan           EventKind = "trade_caravan"
)

// RandomEvent is the static part of a random event. Conditions and effects
// live in the engine and are dispatched on Kind.
type RandomEvent struct {
	Kind        EventKind
	Name        string
	Description string
	Weight      float64
}

// AllRandomEvents returns the event catalog in selection order
func AllRandomEvents() []*RandomEvent {
	return []*RandomEvent{
		{Kind: EventBountifulHarvest, Name: "Bountiful Harvest", Description: "Favorable weather brings extra food!", Weight: 10},
		{Kind: EventWoodRot, Name: "Wood Rot", Description: "Moisture has damaged some of your wood supplies.", Weight: 8},
		{Kind: EventWanderingNomads, Name: "Wandering Nomads", Description: "A group of skilled nomads asks to join your civilization.", Weight: 7},
		{Kind: EventNaturalDisaster, Name: "Natural Disaster", Description: "A disaster damages some of your buildings!", Weight: 5},
		{Kind: EventResourceDiscovery, Name: "Resource Discovery", Description: "Your people have discovered a hidden cache of resources!", Weight: 8},
		{Kind: EventEpidemic, Name: "Epidemic", Description: "Disease spreads through your population!", Weight: 4},
		{Kind: EventScientificBreakthrough, Name: "Scientific Breakthrough", Description: "Your scholars have made an unexpected discovery!", Weight: 6},
		{Kind: EventTradeCaravan, Name: "Trade Caravan", Description: "Merchants offer to trade with your civilization.", Weight: 10},
	}
}

// GetRandomEvent returns the catalog entry for a kind, nil if unknown
func GetRandomEvent(kind EventKind) *RandomEvent {
	for _, e := range AllRandomEvents() {
		if e.Kind == kind {
			return e
		}
	}
	return nil
}

// LogEntry is one line of the player-facing event log
type LogEntry struct {
	Turn    int
	Message string
}

// TradeOffer is a single merchant offer
type TradeOffer struct {
	Give          ResourceType
	GiveAmount    float64
	Receive       ResourceType
	ReceiveAmount float64
}

// RaidRecord describes one resolved raid
type RaidRecord struct {
	Turn     int
	Strength int
	Defense  int
	Repelled bool
	Losses   Resources
	People   int
	Building BuildingType // Empty if nothing was demolished
	Loot     Resources
}
