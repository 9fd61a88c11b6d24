package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEdits_MissingFileStartsClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.json")
	e, err := loadEdits(path, 77)
	if err != nil {
		t.Fatalf("loadEdits: %v", err)
	}
	if e.Seed != 77 || len(e.Cells) != 0 || len(e.Lights) != 0 {
		t.Fatalf("expected a clean edit set for seed 77, got %+v", e)
	}
}

func TestLoadEdits_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.json")
	in := chunkEdits{
		Seed:   5,
		Cells:  []cellEdit{{X: 1, Y: 2, Z: 3, Kind: "rock"}},
		Lights: []lightSpec{{X: 4, Y: 5, Z: 6, R: 0.9, G: 0.8, B: 0.6, Range: 12}},
	}
	data, err := json.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := loadEdits(path, 5)
	if err != nil {
		t.Fatalf("loadEdits: %v", err)
	}
	if len(out.Cells) != 1 || out.Cells[0] != in.Cells[0] {
		t.Fatalf("expected the cell edit back, got %+v", out.Cells)
	}
	if len(out.Lights) != 1 || out.Lights[0] != in.Lights[0] {
		t.Fatalf("expected the light back, got %+v", out.Lights)
	}
}

func TestLoadEdits_SeedMismatchStartsClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.json")
	data, _ := json.Marshal(&chunkEdits{Seed: 5, Cells: []cellEdit{{X: 1, Kind: "rock"}}})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	e, err := loadEdits(path, 6)
	if err != nil {
		t.Fatalf("loadEdits: %v", err)
	}
	if e.Seed != 6 || len(e.Cells) != 0 {
		t.Fatalf("expected the other seed's edits to be dropped, got %+v", e)
	}
}

func TestLoadEdits_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadEdits(path, 1); err == nil {
		t.Fatal("expected an error for a malformed edit file")
	}
}

func TestChunkEdits_RecordCellReplacesEarlierEdit(t *testing.T) {
	var e chunkEdits
	e.recordCell(gridPoint{x: 1, y: 2, z: 3}, tileRock)
	e.recordCell(gridPoint{x: 4, y: 2, z: 3}, tileCandle)
	e.recordCell(gridPoint{x: 1, y: 2, z: 3}, tileAir)

	if len(e.Cells) != 2 {
		t.Fatalf("expected 2 recorded cells, got %d", len(e.Cells))
	}
	if e.Cells[0].Kind != "air" {
		t.Fatalf("expected the re-edit to replace the kind, got %q", e.Cells[0].Kind)
	}
	if e.Cells[1].Kind != "candle" {
		t.Fatalf("expected the other edit untouched, got %q", e.Cells[1].Kind)
	}
}

func TestApplyEdits(t *testing.T) {
	c := newChunk(8)
	edits := chunkEdits{
		Seed: 1,
		Cells: []cellEdit{
			{X: 1, Y: 1, Z: 1, Kind: "rock"},
			{X: 2, Y: 2, Z: 2, Kind: "candle"},
			{X: 3, Y: 3, Z: 3, Kind: "lava"},
			{X: 99, Y: 0, Z: 0, Kind: "rock"},
		},
		Lights: []lightSpec{
			{X: 4, Y: 4, Z: 4, R: 1, Range: 5},
			{X: 5, Y: 5, Z: 5, R: 1, Range: 0},
			{X: 6, Y: 6, Z: 6, R: 1, Range: 999},
		},
	}

	lights := applyEdits(c, edits)

	if c.at(1, 1, 1).kind != tileRock || c.at(2, 2, 2).kind != tileCandle {
		t.Fatal("expected recorded cells to be replayed")
	}
	if c.at(3, 3, 3).kind != tileAir {
		t.Fatal("expected an unknown kind to be skipped")
	}
	if !c.emittersDirty {
		t.Fatal("expected cell replay to invalidate the emitter cache")
	}

	if len(lights) != 3 {
		t.Fatalf("expected 3 lights, got %d", len(lights))
	}
	if lights[0].rng != 5 {
		t.Fatalf("expected a sane range to pass through, got %d", lights[0].rng)
	}
	if lights[1].rng != lightRange || lights[2].rng != lightRange {
		t.Fatalf("expected out-of-band ranges to fall back to %d, got %d and %d",
			lightRange, lights[1].rng, lights[2].rng)
	}
	for i, l := range lights {
		if !l.persistent {
			t.Fatalf("light %d: expected persistent", i)
		}
	}
}

func TestKindNames_RoundTripForPlaceables(t *testing.T) {
	for _, k := range []tileKind{tileAir, tileRock, tileMushroom, tileCandle} {
		name := k.name()
		if name == "" {
			t.Fatalf("expected a persistence name for kind %d", k)
		}
		if kindNames[name] != k {
			t.Fatalf("expected %q to map back to kind %d", name, k)
		}
	}
	if gunBarrel.name() != "" {
		t.Fatal("expected gun parts to have no persistence name")
	}
}
