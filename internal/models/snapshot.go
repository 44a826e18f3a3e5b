package models

// Snapshot is a read-only copy of everything a consumer may display
type Snapshot struct {
	Turn          int
	Won           bool
	Resources     Resources
	Production    Resources
	Population    Population
	Buildings     BuildingCounts
	Army          Army
	Defense       int
	ThreatLevel   float64
	Terrain       TerrainID
	Season        SeasonID
	TurnsInSeason int
	Researched    []TechID
	TradeOffers   []TradeOffer
	Events        []LogEntry
}

// TurnReport summarizes what happened while resolving one turn
type TurnReport struct {
	Turn          int // Turn number that was resolved
	Resolved      bool
	SeasonChanged bool
	Season        SeasonID
	Raid          *RaidRecord
	Event         EventKind // Empty if no random event fired
	Produced      Resources
	FoodConsumed  float64
	Growth        int
	Starved       int
	Evicted       int
	Won           bool
}
