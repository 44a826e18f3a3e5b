package models

// TerrainID identifies a terrain profile
type TerrainID string

const (
	Plains    TerrainID = "plains"
	Forest    TerrainID = "forest"
	Hills     TerrainID = "hills"
	Mountains TerrainID = "mountains"
	River     TerrainID = "river"
	Coast     TerrainID = "coast"
)

// DefaultTerrain is the terrain a new game starts on
const DefaultTerrain = Plains

// AllTerrainIDs returns all terrain ids in deterministic order
func AllTerrainIDs() []TerrainID {
	return []TerrainID{Plains, Forest, Hills, Mountains, River, Coast}
}

// Terrain is a static terrain profile
type Terrain struct {
	ID           TerrainID
	Name         string
	Description  string
	Modifiers    Resources // Production multipliers
	DefenseBonus float64   // 0 means no bonus (multiplier 1.0)
	TradeBonus   float64   // 0 means no bonus (multiplier 1.0)
}

// DefenseMultiplier returns the defense multiplier granted by the terrain
func (t *Terrain) DefenseMultiplier() float64 {
	if t.DefenseBonus > 0 {
		return t.DefenseBonus
	}
	return 1.0
}

// TradeMultiplier returns the trade multiplier granted by the terrain
func (t *Terrain) TradeMultiplier() float64 {
	if t.TradeBonus > 0 {
		return t.TradeBonus
	}
	return 1.0
}

// AllTerrains returns the terrain catalog
func AllTerrains() []*Terrain {
	return []*Terrain{
		{
			ID:          Plains,
			Name:        "Plains",
			Description: "Balanced terrain with good food production.",
			Modifiers:   Resources{Food: 1.2, Wood: 0.8, Stone: 1.0, Science: 1.0},
		},
		{
			ID:          Forest,
			Name:        "Forest",
			Description: "Dense forests provide abundant wood but less food.",
			Modifiers:   Resources{Food: 0.8, Wood: 1.5, Stone: 0.7, Science: 1.0},
		},
		{
			ID:          Hills,
			Name:        "Hills",
			Description: "Rocky terrain with abundant stone but difficult farming.",
			Modifiers:   Resources{Food: 0.7, Wood: 0.9, Stone: 1.5, Science: 1.1},
		},
		{
			ID:           Mountains,
			Name:         "Mountains",
			Description:  "High terrain with strategic advantages and rich stone deposits.",
			Modifiers:    Resources{Food: 0.5, Wood: 0.6, Stone: 1.8, Science: 1.2},
			DefenseBonus: 1.5,
		},
		{
			ID:          River,
			Name:        "River Valley",
			Description: "Fertile river valley with excellent farming conditions.",
			Modifiers:   Resources{Food: 1.5, Wood: 1.2, Stone: 0.8, Science: 1.1},
		},
		{
			ID:          Coast,
			Name:        "Coastal Region",
			Description: "Access to the sea provides fishing and trade opportunities.",
			Modifiers:   Resources{Food: 1.3, Wood: 0.9, Stone: 0.8, Science: 1.3},
			TradeBonus:  1.3,
		},
	}
}

// GetTerrain returns the terrain for an id, nil if unknown
func GetTerrain(id TerrainID) *Terrain {
	for _, t := range AllTerrains() {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TerrainSummary is the read-only catalog view handed to UIs
type TerrainSummary struct {
	ID          TerrainID
	Name        string
	Description string
}
