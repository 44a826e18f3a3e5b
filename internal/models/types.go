package models

import "math"

// ResourceType represents the different resource types in the game
type ResourceType string

const (
	Food    ResourceType = "food"
	Wood    ResourceType = "wood"
	Stone   ResourceType = "stone"
	Science ResourceType = "science"
)

// AllResourceTypes returns all resource types in deterministic order
func AllResourceTypes() []ResourceType {
	return []ResourceType{Food, Wood, Stone, Science}
}

// MaterialResourceTypes returns the tradeable, raidable resources (no science)
func MaterialResourceTypes() []ResourceType {
	return []ResourceType{Food, Wood, Stone}
}

// ParseResourceType returns the resource type for a name
func ParseResourceType(name string) (ResourceType, bool) {
	for _, rt := range AllResourceTypes() {
		if string(rt) == name {
			return rt, true
		}
	}
	return "", false
}

// Resources is a fixed set of per-resource amounts (no maps).
// Used for stocks, production rates, costs and multipliers.
type Resources struct {
	Food    float64
	Wood    float64
	Stone   float64
	Science float64
}

// Get returns the amount for a resource type
func (r Resources) Get(rt ResourceType) float64 {
	switch rt {
	case Food:
		return r.Food
	case Wood:
		return r.Wood
	case Stone:
		return r.Stone
	case Science:
		return r.Science
	}
	return 0
}

// Set sets the amount for a resource type
func (r *Resources) Set(rt ResourceType, amount float64) {
	switch rt {
	case Food:
		r.Food = amount
	case Wood:
		r.Wood = amount
	case Stone:
		r.Stone = amount
	case Science:
		r.Science = amount
	}
}

// Add adds to the amount for a resource type
func (r *Resources) Add(rt ResourceType, amount float64) {
	r.Set(rt, r.Get(rt)+amount)
}

// Each iterates over all resources in deterministic order
func (r Resources) Each(fn func(ResourceType, float64)) {
	fn(Food, r.Food)
	fn(Wood, r.Wood)
	fn(Stone, r.Stone)
	fn(Science, r.Science)
}

// EachNonZero iterates over resources with a non-zero amount
func (r Resources) EachNonZero(fn func(ResourceType, float64)) {
	r.Each(func(rt ResourceType, v float64) {
		if v != 0 {
			fn(rt, v)
		}
	})
}

// Total returns the sum of all amounts
func (r Resources) Total() float64 {
	return r.Food + r.Wood + r.Stone + r.Science
}

// Scale returns a copy with every amount multiplied by factor
func (r Resources) Scale(factor float64) Resources {
	return Resources{
		Food:    r.Food * factor,
		Wood:    r.Wood * factor,
		Stone:   r.Stone * factor,
		Science: r.Science * factor,
	}
}

// Mul returns the element-wise product of two resource sets
func (r Resources) Mul(m Resources) Resources {
	return Resources{
		Food:    r.Food * m.Food,
		Wood:    r.Wood * m.Wood,
		Stone:   r.Stone * m.Stone,
		Science: r.Science * m.Science,
	}
}

// Covers reports whether r holds at least cost of every resource
func (r Resources) Covers(cost Resources) bool {
	return r.Food >= cost.Food && r.Wood >= cost.Wood &&
		r.Stone >= cost.Stone && r.Science >= cost.Science
}

// Clamped returns a copy with every negative amount raised to zero
func (r Resources) Clamped() Resources {
	return Resources{
		Food:    math.Max(0, r.Food),
		Wood:    math.Max(0, r.Wood),
		Stone:   math.Max(0, r.Stone),
		Science: math.Max(0, r.Science),
	}
}

// Uniform returns a resource set with the same value everywhere
func Uniform(v float64) Resources {
	return Resources{Food: v, Wood: v, Stone: v, Science: v}
}

// Population tracks people, housing and food needs
type Population struct {
	Current                  int
	Capacity                 int
	FoodConsumptionPerPerson float64
}

// FoodNeeded returns the food consumed per turn by the current population
func (p Population) FoodNeeded() float64 {
	return float64(p.Current) * p.FoodConsumptionPerPerson
}
