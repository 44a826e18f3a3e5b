package models

// TechID identifies a technology
type TechID string

const (
	TechAgriculture  TechID = "agriculture"
	TechIrrigation   TechID = "irrigation"
	TechMining       TechID = "mining"
	TechWoodworking  TechID = "woodworking"
	TechConstruction TechID = "construction"
	TechFertilizers  TechID = "fertilizers"
	TechMetallurgy   TechID = "metallurgy"
)

// AllTechIDs returns all technology ids in deterministic (catalog) order
func AllTechIDs() []TechID {
	return []TechID{
		TechAgriculture, TechIrrigation, TechMining, TechWoodworking,
		TechConstruction, TechFertilizers, TechMetallurgy,
	}
}

// Technology represents a researchable technology
type Technology struct {
	ID            TechID
	Name          string
	Cost          float64 // Science points
	Description   string
	Prerequisites []TechID
	Unlocks       []TechID
}

// AllTechnologies returns the technology tree
func AllTechnologies() []*Technology {
	return []*Technology{
		{
			ID:          TechAgriculture,
			Name:        "Agriculture",
			Cost:        10,
			Description: "Improves farm output by 50%",
			Unlocks:     []TechID{TechIrrigation},
		},
		{
			ID:            TechIrrigation,
			Name:          "Irrigation",
			Cost:          20,
			Description:   "Farms provide +1 population capacity",
			Prerequisites: []TechID{TechAgriculture},
			Unlocks:       []TechID{TechFertilizers},
		},
		{
			ID:          TechMining,
			Name:        "Mining",
			Cost:        15,
			Description: "Improves stone production by 50%",
			Unlocks:     []TechID{TechMetallurgy},
		},
		{
			ID:          TechWoodworking,
			Name:        "Woodworking",
			Cost:        15,
			Description: "Improves lumber mill output by 50%",
			Unlocks:     []TechID{TechConstruction},
		},
		{
			ID:            TechConstruction,
			Name:          "Construction",
			Cost:          25,
			Description:   "Enables building barracks and reduces building costs by 20%",
			Prerequisites: []TechID{TechWoodworking, TechMining},
		},
		{
			ID:            TechFertilizers,
			Name:          "Fertilizers",
			Cost:          30,
			Description:   "Farms produce double food",
			Prerequisites: []TechID{TechIrrigation},
		},
		{
			ID:            TechMetallurgy,
			Name:          "Metallurgy",
			Cost:          30,
			Description:   "Enables defense technologies and increases quarry output by 50%",
			Prerequisites: []TechID{TechMining},
		},
	}
}

// GetTechnology returns the technology for an id, nil if unknown
func GetTechnology(id TechID) *Technology {
	for _, t := range AllTechnologies() {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TechnologySummary is the read-only view handed to UIs
type TechnologySummary struct {
	ID          TechID
	Name        string
	Cost        float64
	Description string
}
