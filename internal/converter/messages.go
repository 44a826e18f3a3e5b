package converter

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/microciv/internal/models"
)

// SnapshotToStruct converts a game snapshot to a Struct
func SnapshotToStruct(s models.Snapshot) (*structpb.Struct, error) {
	researched := make([]any, 0, len(s.Researched))
	for _, id := range s.Researched {
		researched = append(researched, string(id))
	}
	offers := make([]any, 0, len(s.TradeOffers))
	for _, o := range s.TradeOffers {
		offers = append(offers, TradeOfferToMap(o))
	}
	events := make([]any, 0, len(s.Events))
	for _, e := range s.Events {
		events = append(events, map[string]any{"turn": e.Turn, "message": e.Message})
	}

	st, err := structpb.NewStruct(map[string]any{
		"turn":       s.Turn,
		"won":        s.Won,
		"resources":  ResourcesToMap(s.Resources),
		"production": ResourcesToMap(s.Production),
		"population": map[string]any{
			"current":                     s.Population.Current,
			"capacity":                    s.Population.Capacity,
			"food_consumption_per_person": s.Population.FoodConsumptionPerPerson,
		},
		"buildings":       BuildingsToMap(s.Buildings),
		"army":            ArmyToMap(s.Army),
		"defense":         s.Defense,
		"threat_level":    s.ThreatLevel,
		"terrain":         string(s.Terrain),
		"season":          string(s.Season),
		"turns_in_season": s.TurnsInSeason,
		"researched":      researched,
		"trade_offers":    offers,
		"events":          events,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to convert snapshot: %w", err)
	}
	return st, nil
}

// StructToSnapshot converts a Struct produced by SnapshotToStruct back to a snapshot
func StructToSnapshot(st *structpb.Struct) (models.Snapshot, error) {
	f := &fields{m: st.GetFields()}
	var s models.Snapshot

	s.Turn = f.integer("turn")
	s.Won = f.boolean("won")
	s.Resources = f.resources("resources")
	s.Production = f.resources("production")

	pop := f.object("population")
	s.Population = models.Population{
		Current:                  pop.integer("current"),
		Capacity:                 pop.integer("capacity"),
		FoodConsumptionPerPerson: pop.number("food_consumption_per_person"),
	}

	buildings := f.object("buildings")
	for key := range buildings.m {
		bt := models.BuildingType(key)
		if models.GetBuildingDefinition(bt) == nil {
			return s, fmt.Errorf("unknown building type %q", key)
		}
		s.Buildings.Set(bt, buildings.integer(key))
	}

	army := f.object("army")
	for key := range army.m {
		ut := models.UnitType(key)
		if models.GetUnitDefinition(ut) == nil {
			return s, fmt.Errorf("unknown unit type %q", key)
		}
		s.Army.Add(ut, army.integer(key))
	}

	s.Defense = f.integer("defense")
	s.ThreatLevel = f.number("threat_level")
	s.Terrain = models.TerrainID(f.str("terrain"))
	s.Season = models.SeasonID(f.str("season"))
	s.TurnsInSeason = f.integer("turns_in_season")

	researched := f.list("researched")
	s.Researched = make([]models.TechID, 0, len(researched))
	for _, v := range researched {
		s.Researched = append(s.Researched, models.TechID(v.GetStringValue()))
	}
	offers := f.list("trade_offers")
	s.TradeOffers = make([]models.TradeOffer, 0, len(offers))
	for _, v := range offers {
		o := &fields{m: v.GetStructValue().GetFields()}
		s.TradeOffers = append(s.TradeOffers, models.TradeOffer{
			Give:          models.ResourceType(o.str("give")),
			GiveAmount:    o.number("give_amount"),
			Receive:       models.ResourceType(o.str("receive")),
			ReceiveAmount: o.number("receive_amount"),
		})
		if o.err != nil {
			return s, fmt.Errorf("trade offer: %w", o.err)
		}
	}
	events := f.list("events")
	s.Events = make([]models.LogEntry, 0, len(events))
	for _, v := range events {
		e := &fields{m: v.GetStructValue().GetFields()}
		s.Events = append(s.Events, models.LogEntry{Turn: e.integer("turn"), Message: e.str("message")})
		if e.err != nil {
			return s, fmt.Errorf("event: %w", e.err)
		}
	}

	for _, sub := range []*fields{f, pop, buildings, army} {
		if sub.err != nil {
			return s, sub.err
		}
	}
	return s, nil
}

// TurnReportToStruct converts a turn report to a Struct
func TurnReportToStruct(r models.TurnReport) (*structpb.Struct, error) {
	m := map[string]any{
		"turn":           r.Turn,
		"resolved":       r.Resolved,
		"season_changed": r.SeasonChanged,
		"season":         string(r.Season),
		"event":          string(r.Event),
		"produced":       ResourcesToMap(r.Produced),
		"food_consumed":  r.FoodConsumed,
		"growth":         r.Growth,
		"starved":        r.Starved,
		"evicted":        r.Evicted,
		"won":            r.Won,
	}
	if r.Raid != nil {
		m["raid"] = RaidToMap(*r.Raid)
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to convert turn report: %w", err)
	}
	return st, nil
}

// MarshalSnapshot encodes a snapshot in protobuf binary form. Map entries are
// sorted so equal snapshots encode to equal bytes.
func MarshalSnapshot(s models.Snapshot) ([]byte, error) {
	st, err := SnapshotToStruct(s)
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(st)
}

// UnmarshalSnapshot decodes a snapshot written by MarshalSnapshot
func UnmarshalSnapshot(data []byte) (models.Snapshot, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return StructToSnapshot(&st)
}

// SnapshotJSON encodes a snapshot as indented protobuf JSON
func SnapshotJSON(s models.Snapshot) ([]byte, error) {
	st, err := SnapshotToStruct(s)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
}
