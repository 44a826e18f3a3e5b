package converter

import (
	"reflect"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

func playedSnapshot(t *testing.T) models.Snapshot {
	t.Helper()
	g := game.MustNew(game.DefaultOptions())
	g.Build(models.Farm)
	g.GenerateTradeOptions()
	for range 5 {
		g.EndTurn()
	}
	return g.Snapshot()
}

func TestSnapshotRoundTrip(t *testing.T) {
	want := playedSnapshot(t)

	st, err := SnapshotToStruct(want)
	if err != nil {
		t.Fatalf("SnapshotToStruct() error: %v", err)
	}
	got, err := StructToSnapshot(st)
	if err != nil {
		t.Fatalf("StructToSnapshot() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestMarshalSnapshot(t *testing.T) {
	want := playedSnapshot(t)

	data, err := MarshalSnapshot(want)
	if err != nil {
		t.Fatalf("MarshalSnapshot() error: %v", err)
	}
	got, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() error: %v", err)
	}
	if got.Turn != want.Turn || got.Buildings != want.Buildings || got.Resources != want.Resources {
		t.Errorf("decoded %+v, want %+v", got, want)
	}

	again, err := MarshalSnapshot(want)
	if err != nil {
		t.Fatalf("MarshalSnapshot() error: %v", err)
	}
	if string(again) != string(data) {
		t.Error("encoding is not deterministic")
	}

	if _, err := UnmarshalSnapshot([]byte{0xff, 0xff}); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestStructToSnapshotErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
	}{
		{"turn not a number", map[string]any{"turn": "five"}},
		{"unknown resource", map[string]any{"resources": map[string]any{"gold": 3}}},
		{"unknown building", map[string]any{"buildings": map[string]any{"castle": 1}}},
		{"unknown unit", map[string]any{"army": map[string]any{"knight": 1}}},
		{"population not an object", map[string]any{"population": 4}},
		{"bad trade offer", map[string]any{"trade_offers": []any{map[string]any{"give_amount": "lots"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := structpb.NewStruct(tt.fields)
			if err != nil {
				t.Fatalf("NewStruct() error: %v", err)
			}
			if _, err := StructToSnapshot(st); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTurnReportToStruct(t *testing.T) {
	report := models.TurnReport{
		Turn:     3,
		Resolved: true,
		Season:   models.Summer,
		Raid:     &models.RaidRecord{Turn: 3, Strength: 12, Defense: 15, Repelled: true},
		Produced: models.Resources{Food: 2},
	}
	st, err := TurnReportToStruct(report)
	if err != nil {
		t.Fatalf("TurnReportToStruct() error: %v", err)
	}
	raid := st.GetFields()["raid"].GetStructValue()
	if raid == nil || !raid.GetFields()["repelled"].GetBoolValue() {
		t.Errorf("raid missing or wrong: %v", raid)
	}
	if got := st.GetFields()["produced"].GetStructValue().GetFields()["food"].GetNumberValue(); got != 2 {
		t.Errorf("produced food = %v, want 2", got)
	}

	report.Raid = nil
	st, err = TurnReportToStruct(report)
	if err != nil {
		t.Fatalf("TurnReportToStruct() error: %v", err)
	}
	if _, ok := st.GetFields()["raid"]; ok {
		t.Error("raid should be omitted when nil")
	}
}

func TestSnapshotJSON(t *testing.T) {
	data, err := SnapshotJSON(playedSnapshot(t))
	if err != nil {
		t.Fatalf("SnapshotJSON() error: %v", err)
	}
	if len(data) == 0 || data[0] != '{' {
		t.Errorf("unexpected JSON %q", data)
	}
}
