package models

// BuildingType represents the different building types
type BuildingType string

const (
	House      BuildingType = "house"
	Farm       BuildingType = "farm"
	LumberMill BuildingType = "lumberMill"
	Quarry     BuildingType = "quarry"
	Library    BuildingType = "library"
	Barracks   BuildingType = "barracks"
	Wall       BuildingType = "wall"
	Monument   BuildingType = "monument"
)

// AllBuildingTypes returns all building types in deterministic order
func AllBuildingTypes() []BuildingType {
	return []BuildingType{House, Farm, LumberMill, Quarry, Library, Barracks, Wall, Monument}
}

// BuildingCounts is a deterministic struct for owned building counts
type BuildingCounts struct {
	House      int
	Farm       int
	LumberMill int
	Quarry     int
	Library    int
	Barracks   int
	Wall       int
	Monument   int
}

// Get returns the count for a building type
func (b BuildingCounts) Get(bt BuildingType) int {
	switch bt {
	case House:
		return b.House
	case Farm:
		return b.Farm
	case LumberMill:
		return b.LumberMill
	case Quarry:
		return b.Quarry
	case Library:
		return b.Library
	case Barracks:
		return b.Barracks
	case Wall:
		return b.Wall
	case Monument:
		return b.Monument
	}
	return 0
}

// Set sets the count for a building type
func (b *BuildingCounts) Set(bt BuildingType, count int) {
	if count < 0 {
		count = 0
	}
	switch bt {
	case House:
		b.House = count
	case Farm:
		b.Farm = count
	case LumberMill:
		b.LumberMill = count
	case Quarry:
		b.Quarry = count
	case Library:
		b.Library = count
	case Barracks:
		b.Barracks = count
	case Wall:
		b.Wall = count
	case Monument:
		b.Monument = count
	}
}

// Each iterates over all buildings in deterministic order
func (b BuildingCounts) Each(fn func(BuildingType, int)) {
	for _, bt := range AllBuildingTypes() {
		fn(bt, b.Get(bt))
	}
}

// EachNonZero iterates over buildings with a non-zero count
func (b BuildingCounts) EachNonZero(fn func(BuildingType, int)) {
	for _, bt := range AllBuildingTypes() {
		if n := b.Get(bt); n > 0 {
			fn(bt, n)
		}
	}
}

// Total returns the number of buildings owned
func (b BuildingCounts) Total() int {
	return b.House + b.Farm + b.LumberMill + b.Quarry + b.Library + b.Barracks + b.Wall + b.Monument
}

// BuildingRequirement is a minimum count of another building
type BuildingRequirement struct {
	Type  BuildingType
	Count int
}

// Requirements lists what must hold before a building can be constructed
type Requirements struct {
	Technologies []TechID
	Buildings    []BuildingRequirement
}

// IsEmpty returns true if nothing is required
func (r Requirements) IsEmpty() bool {
	return len(r.Technologies) == 0 && len(r.Buildings) == 0
}

// BuildingDefinition contains static building data
type BuildingDefinition struct {
	Type        BuildingType
	Name        string
	Effect      string
	Cost        Resources
	Produces    ResourceType // Empty if not a production building
	BaseAmount  float64      // Production per building per turn, before multipliers
	Capacity    int          // Population capacity per building
	Defense     int          // Defense value per building
	WinsGame    bool
	Requirement Requirements
}

// IsProducer returns true if the building adds to per-turn production
func (d *BuildingDefinition) IsProducer() bool {
	return d.Produces != "" && d.BaseAmount > 0
}

// AllBuildingDefinitions returns definitions for all buildings
func AllBuildingDefinitions() []*BuildingDefinition {
	return []*BuildingDefinition{
		{
			Type:     House,
			Name:     "House",
			Effect:   "+2 Population capacity",
			Cost:     Resources{Wood: 5},
			Capacity: 2,
		},
		{
			Type:       Farm,
			Name:       "Farm",
			Effect:     "+3 Food per turn",
			Cost:       Resources{Wood: 5},
			Produces:   Food,
			BaseAmount: 3,
		},
		{
			Type:       LumberMill,
			Name:       "Lumber Mill",
			Effect:     "+2 Wood per turn",
			Cost:       Resources{Wood: 3, Stone: 5},
			Produces:   Wood,
			BaseAmount: 2,
		},
		{
			Type:       Quarry,
			Name:       "Quarry",
			Effect:     "+2 Stone per turn",
			Cost:       Resources{Wood: 5, Stone: 3},
			Produces:   Stone,
			BaseAmount: 2,
		},
		{
			Type:       Library,
			Name:       "Library",
			Effect:     "+1.5 Science per turn",
			Cost:       Resources{Wood: 8, Stone: 5},
			Produces:   Science,
			BaseAmount: 1.5,
			Requirement: Requirements{
				Buildings: []BuildingRequirement{{Type: Farm, Count: 1}},
			},
		},
		{
			Type:    Barracks,
			Name:    "Barracks",
			Effect:  "+5 Defense, train units",
			Cost:    Resources{Wood: 10, Stone: 5},
			Defense: 5,
			Requirement: Requirements{
				Technologies: []TechID{TechConstruction},
			},
		},
		{
			Type:    Wall,
			Name:    "Wall",
			Effect:  "+10 Defense",
			Cost:    Resources{Wood: 5, Stone: 15},
			Defense: 10,
			Requirement: Requirements{
				Technologies: []TechID{TechMetallurgy},
				Buildings:    []BuildingRequirement{{Type: Barracks, Count: 1}},
			},
		},
		{
			Type:     Monument,
			Name:     "Monument",
			Effect:   "Win the game!",
			Cost:     Resources{Wood: 30, Stone: 30},
			WinsGame: true,
			Requirement: Requirements{
				Technologies: []TechID{TechConstruction},
				Buildings:    []BuildingRequirement{{Type: Library, Count: 1}},
			},
		},
	}
}

// GetBuildingDefinition returns the definition for a building type, nil if unknown
func GetBuildingDefinition(bt BuildingType) *BuildingDefinition {
	for _, def := range AllBuildingDefinitions() {
		if def.Type == bt {
			return def
		}
	}
	return nil
}
