package models

import (
	"testing"
)

func TestBuildingCatalogComplete(t *testing.T) {
	defs := AllBuildingDefinitions()
	if len(defs) != len(AllBuildingTypes()) {
		t.Fatalf("expected %d definitions, got %d", len(AllBuildingTypes()), len(defs))
	}
	for i, bt := range AllBuildingTypes() {
		if defs[i].Type != bt {
			t.Errorf("definition %d: expected %s, got %s", i, bt, defs[i].Type)
		}
		if GetBuildingDefinition(bt) == nil {
			t.Errorf("GetBuildingDefinition(%s) returned nil", bt)
		}
	}
	if GetBuildingDefinition("castle") != nil {
		t.Error("GetBuildingDefinition(castle) should be nil")
	}
}

func TestBuildingCosts(t *testing.T) {
	expected := map[BuildingType]Resources{
		House:      {Wood: 5},
		Farm:       {Wood: 5},
		LumberMill: {Wood: 3, Stone: 5},
		Quarry:     {Wood: 5, Stone: 3},
		Library:    {Wood: 8, Stone: 5},
		Barracks:   {Wood: 10, Stone: 5},
		Wall:       {Wood: 5, Stone: 15},
		Monument:   {Wood: 30, Stone: 30},
	}
	for bt, want := range expected {
		if got := GetBuildingDefinition(bt).Cost; got != want {
			t.Errorf("%s cost: expected %+v, got %+v", bt, want, got)
		}
	}
}

func TestOnlyMonumentWins(t *testing.T) {
	for _, def := range AllBuildingDefinitions() {
		if def.WinsGame != (def.Type == Monument) {
			t.Errorf("%s: WinsGame = %v", def.Type, def.WinsGame)
		}
	}
}

func TestProducers(t *testing.T) {
	producers := map[BuildingType]ResourceType{
		Farm: Food, LumberMill: Wood, Quarry: Stone, Library: Science,
	}
	for _, def := range AllBuildingDefinitions() {
		want, ok := producers[def.Type]
		if def.IsProducer() != ok {
			t.Errorf("%s: IsProducer = %v", def.Type, def.IsProducer())
			continue
		}
		if ok && def.Produces != want {
			t.Errorf("%s produces %s, expected %s", def.Type, def.Produces, want)
		}
	}
}

func TestTechnologyTreeIsAcyclic(t *testing.T) {
	seen := make(map[TechID]bool)
	// Catalog order is a valid research order
	for _, tech := range AllTechnologies() {
		for _, pre := range tech.Prerequisites {
			if GetTechnology(pre) == nil {
				t.Errorf("%s: unknown prerequisite %s", tech.ID, pre)
			}
			if !seen[pre] {
				t.Errorf("%s listed before its prerequisite %s", tech.ID, pre)
			}
		}
		seen[tech.ID] = true
	}
}

func TestBuildingRequirementsReferenceCatalog(t *testing.T) {
	for _, def := range AllBuildingDefinitions() {
		for _, id := range def.Requirement.Technologies {
			if GetTechnology(id) == nil {
				t.Errorf("%s requires unknown technology %s", def.Type, id)
			}
		}
		for _, req := range def.Requirement.Buildings {
			if GetBuildingDefinition(req.Type) == nil || req.Count <= 0 {
				t.Errorf("%s has invalid building requirement %+v", def.Type, req)
			}
		}
	}
}

func TestSeasonCycle(t *testing.T) {
	s := Spring
	for _, want := range []SeasonID{Summer, Autumn, Winter, Spring} {
		s = NextSeason(s)
		if s != want {
			t.Errorf("expected %s, got %s", want, s)
		}
	}
}

func TestSeasonEventWeightDefault(t *testing.T) {
	winter := GetSeason(Winter)
	if got := winter.EventWeight(EventEpidemic); got != 1.3 {
		t.Errorf("winter epidemic weight: expected 1.3, got %v", got)
	}
	if got := winter.EventWeight(EventTradeCaravan); got != 1.0 {
		t.Errorf("winter caravan weight: expected 1.0, got %v", got)
	}
}

func TestTerrainBonuses(t *testing.T) {
	tests := []struct {
		id      TerrainID
		defense float64
		trade   float64
	}{
		{Plains, 1.0, 1.0},
		{Mountains, 1.5, 1.0},
		{Coast, 1.0, 1.3},
	}
	for _, tt := range tests {
		terrain := GetTerrain(tt.id)
		if terrain == nil {
			t.Fatalf("GetTerrain(%s) returned nil", tt.id)
		}
		if got := terrain.DefenseMultiplier(); got != tt.defense {
			t.Errorf("%s defense: expected %v, got %v", tt.id, tt.defense, got)
		}
		if got := terrain.TradeMultiplier(); got != tt.trade {
			t.Errorf("%s trade: expected %v, got %v", tt.id, tt.trade, got)
		}
	}
}

func TestResourcesHelpers(t *testing.T) {
	if got := (Resources{Food: 10, Wood: -2}).Clamped(); got.Wood != 0 || got.Food != 10 {
		t.Errorf("Clamped: got %+v", got)
	}

	r := Resources{Food: 10, Stone: 3}
	if !r.Covers(Resources{Food: 10, Stone: 3}) {
		t.Error("Covers should be true for an exact match")
	}
	if r.Covers(Resources{Stone: 4}) {
		t.Error("Covers should be false when short")
	}

	var visited []ResourceType
	r.EachNonZero(func(rt ResourceType, _ float64) { visited = append(visited, rt) })
	if len(visited) != 2 || visited[0] != Food || visited[1] != Stone {
		t.Errorf("EachNonZero visited %v", visited)
	}

	if rt, ok := ParseResourceType("stone"); !ok || rt != Stone {
		t.Errorf("ParseResourceType(stone) = %s, %v", rt, ok)
	}
	if _, ok := ParseResourceType("iron"); ok {
		t.Error("ParseResourceType(iron) should fail")
	}
}

func TestBuildingCountsSetClamps(t *testing.T) {
	var b BuildingCounts
	b.Set(Farm, -3)
	if b.Farm != 0 {
		t.Errorf("expected 0 farms, got %d", b.Farm)
	}
	b.Set(Wall, 2)
	if b.Get(Wall) != 2 || b.Total() != 2 {
		t.Errorf("expected 2 walls, got %+v", b)
	}
}

func TestArmyRemoveFloors(t *testing.T) {
	a := Army{Warriors: 2}
	a.Remove(Warrior, 5)
	a.Add(Archer, 3)
	if a.Warriors != 0 || a.Archers != 3 || a.TotalUnits() != 3 {
		t.Errorf("unexpected army %+v", a)
	}
}

func TestRandomEventCatalog(t *testing.T) {
	weights := map[EventKind]float64{
		EventBountifulHarvest: 10, EventWoodRot: 8, EventWanderingNomads: 7,
		EventNaturalDisaster: 5, EventResourceDiscovery: 8, EventEpidemic: 4,
		EventScientificBreakthrough: 6, EventTradeCaravan: 10,
	}
	events := AllRandomEvents()
	if len(events) != len(weights) {
		t.Fatalf("expected %d events, got %d", len(weights), len(events))
	}
	for _, ev := range events {
		if ev.Weight != weights[ev.Kind] {
			t.Errorf("%s weight: expected %v, got %v", ev.Kind, weights[ev.Kind], ev.Weight)
		}
	}
}

func TestBuildingCountsReadOnValue(t *testing.T) {
	if got := (BuildingCounts{House: 2, Farm: 1}).Get(Farm); got != 1 {
		t.Errorf("Get(farm) = %d, want 1", got)
	}
	if got := (BuildingCounts{House: 2, Farm: 1}).Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
	if got := (Army{Warriors: 2, Archers: 1}).TotalUnits(); got != 3 {
		t.Errorf("TotalUnits() = %d, want 3", got)
	}
}
