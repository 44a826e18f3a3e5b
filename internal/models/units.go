package models

// UnitType represents the trainable military units
type UnitType string

const (
	Warrior UnitType = "warrior"
	Archer  UnitType = "archer"
)

// AllUnitTypes returns all unit types in deterministic order
func AllUnitTypes() []UnitType {
	return []UnitType{Warrior, Archer}
}

// Army represents unit counts with strict typing (no maps)
type Army struct {
	Warriors int
	Archers  int
}

// Get returns count for a unit type
func (a Army) Get(ut UnitType) int {
	switch ut {
	case Warrior:
		return a.Warriors
	case Archer:
		return a.Archers
	}
	return 0
}

// Add adds units of a type
func (a *Army) Add(ut UnitType, count int) {
	switch ut {
	case Warrior:
		a.Warriors += count
	case Archer:
		a.Archers += count
	}
}

// Remove removes units of a type (floors at 0)
func (a *Army) Remove(ut UnitType, count int) {
	switch ut {
	case Warrior:
		a.Warriors = max(0, a.Warriors-count)
	case Archer:
		a.Archers = max(0, a.Archers-count)
	}
}

// TotalUnits returns total count of all units
func (a Army) TotalUnits() int {
	return a.Warriors + a.Archers
}

// UnitDefinition contains static unit data
type UnitDefinition struct {
	Type    UnitType
	Name    string
	Cost    Resources
	Attack  int
	Defense int
}

// AllUnitDefinitions returns definitions for all trainable units
func AllUnitDefinitions() []*UnitDefinition {
	return []*UnitDefinition{
		{
			Type:    Warrior,
			Name:    "Warrior",
			Cost:    Resources{Food: 5, Wood: 3},
			Attack:  3,
			Defense: 5,
		},
		{
			Type:    Archer,
			Name:    "Archer",
			Cost:    Resources{Food: 5, Wood: 8},
			Attack:  5,
			Defense: 2,
		},
	}
}

// GetUnitDefinition returns the definition for a unit type
func GetUnitDefinition(ut UnitType) *UnitDefinition {
	for _, def := range AllUnitDefinitions() {
		if def.Type == ut {
			return def
		}
	}
	return nil
}
