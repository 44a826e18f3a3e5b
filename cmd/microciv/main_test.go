package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/napolitain/microciv/internal/converter"
	"github.com/napolitain/microciv/internal/history"
	"github.com/napolitain/microciv/internal/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{1234, "1,234"},
		{2.5, "2.5"},
	}
	for _, tt := range tests {
		if got := amount(tt.in); got != tt.want {
			t.Errorf("amount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatResources(t *testing.T) {
	if got := formatResources(models.Resources{Wood: 3, Stone: 5}); got != "wood 3, stone 5" {
		t.Errorf("formatResources() = %q", got)
	}
	if got := formatResources(models.Resources{}); got != "-" {
		t.Errorf("formatResources(empty) = %q", got)
	}
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, "catalog", "buildings")
	if err != nil {
		t.Fatalf("catalog error: %v", err)
	}
	if !strings.Contains(out, "Monument") {
		t.Errorf("building catalog missing Monument:\n%s", out)
	}
	if _, err := execute(t, "catalog", "dragons"); err == nil {
		t.Error("expected error for unknown catalog")
	}
}

func TestSimulateWritesHistoryAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	snapPath := filepath.Join(dir, "final.pb")

	_, err := execute(t, "simulate", "--quiet", "--strategy", "P3/L2", "--turns", "40",
		"--seed", "5", "--db", dbPath, "--snapshot", snapPath)
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}

	data, err := os.ReadFile(snapPath)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	snap, err := converter.UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() error: %v", err)
	}
	if snap.Turn <= 1 {
		t.Error("snapshot turn should advance")
	}

	db, err := history.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()
	games, err := db.Games()
	if err != nil || len(games) != 1 {
		t.Fatalf("Games() = %+v, %v", games, err)
	}
	if games[0].Seed != 5 || games[0].Label != "P3/L2" {
		t.Errorf("recorded game = %+v", games[0])
	}
	turns, err := db.Turns(games[0].ID)
	if err != nil || len(turns) != snap.Turn-1 {
		t.Errorf("turns = %d (%v), want %d", len(turns), err, snap.Turn-1)
	}
	stored, _, err := db.FinalSnapshot(games[0].ID)
	if err != nil {
		t.Fatalf("FinalSnapshot() error: %v", err)
	}
	if stored.Turn != snap.Turn || stored.Buildings != snap.Buildings {
		t.Errorf("stored final state %+v differs from snapshot file %+v", stored, snap)
	}

	out, err := execute(t, "history", "--db", dbPath, games[0].ID)
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if !strings.Contains(out, "Final state digest") {
		t.Errorf("history output missing digest:\n%s", out)
	}
}

func TestSimulateRejectsUnknownStrategy(t *testing.T) {
	if _, err := execute(t, "simulate", "--strategy", "turtle"); err == nil {
		t.Error("expected error for unknown strategy")
	}
	if _, err := execute(t, "simulate", "--terrain", "swamp"); err == nil {
		t.Error("expected error for unknown terrain")
	}
}

func TestRunCommand(t *testing.T) {
	plan := filepath.Join(t.TempDir(), "opening.plan")
	script := "# opening\nbuild farm\nbuild wall\nend 3\n"
	if err := os.WriteFile(plan, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", plan)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(out, "1 rejected") {
		t.Errorf("expected one rejected action:\n%s", out)
	}

	if _, err := execute(t, "run", "--strict", plan); err == nil {
		t.Error("expected strict run to fail on the locked wall")
	}
}
