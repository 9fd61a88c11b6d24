package main

import (
	"testing"
)

func TestCastLight_CombinesOverlappingLights(t *testing.T) {
	buildCastLookups(maxCastRange)
	c := newChunk(24)
	red := Light{pos: c.at(10, 12, 12).pos, color: rgb{r: 1}, rng: 4}
	green := Light{pos: c.at(14, 12, 12).pos, color: rgb{g: 1}, rng: 4}

	nextLightGen(c)
	castLight(c, red, 0, nil)
	castLight(c, green, 0, nil)

	if got := illuminationOf(c, c.at(12, 12, 12)); got != (rgb{r: 1, g: 1}) {
		t.Fatalf("overlap cell: expected yellow, got %+v", got)
	}
	if got := illuminationOf(c, c.at(8, 12, 12)); got != (rgb{r: 1}) {
		t.Fatalf("red-only cell: expected red, got %+v", got)
	}
	if got := illuminationOf(c, c.at(17, 12, 12)); got != (rgb{g: 1}) {
		t.Fatalf("green-only cell: expected green, got %+v", got)
	}
	if got := illuminationOf(c, c.at(12, 12, 20)); got != (rgb{}) {
		t.Fatalf("out-of-range cell: expected black, got %+v", got)
	}
}

func TestCastLight_NewGenerationReplacesStaleColor(t *testing.T) {
	buildCastLookups(maxCastRange)
	c := newChunk(24)
	red := Light{pos: c.at(12, 12, 12).pos, color: rgb{r: 1}, rng: 4}
	green := Light{pos: c.at(12, 12, 12).pos, color: rgb{g: 1}, rng: 4}

	nextLightGen(c)
	castLight(c, red, 0, nil)
	if got := illuminationOf(c, c.at(13, 12, 12)); got != (rgb{r: 1}) {
		t.Fatalf("expected red before the generation rolls, got %+v", got)
	}

	nextLightGen(c)
	if got := illuminationOf(c, c.at(13, 12, 12)); got != (rgb{}) {
		t.Fatalf("expected stale illumination to read black, got %+v", got)
	}

	castLight(c, green, 0, nil)
	if got := illuminationOf(c, c.at(13, 12, 12)); got != (rgb{g: 1}) {
		t.Fatalf("expected the first touch to replace, not combine, got %+v", got)
	}
}

func TestNextLightGen_WrapClearsStamps(t *testing.T) {
	c := newChunk(4)
	c.lightGen = ^uint32(0)
	c.at(1, 1, 1).lightGen = ^uint32(0)
	c.at(1, 1, 1).illum = rgb{r: 1}

	nextLightGen(c)

	if c.lightGen != 1 {
		t.Fatalf("expected generation 1 after wrap, got %d", c.lightGen)
	}
	if got := illuminationOf(c, c.at(1, 1, 1)); got != (rgb{}) {
		t.Fatalf("expected wrapped stamp to read black, got %+v", got)
	}
}

func TestCollectVisible_OrdersFarToNear(t *testing.T) {
	buildCastLookups(maxCastRange)
	c := newChunk(24)
	c.at(12, 12, 14).kind = tileRock
	c.at(15, 12, 12).kind = tileRock
	c.at(12, 17, 12).kind = tileRock
	c.at(12, 12, 11).kind = tileCandle
	eye := c.at(12, 12, 12).pos

	out := collectVisible(c, eye, nil, nil)

	if len(out) != 4 {
		t.Fatalf("expected 4 visible tiles, got %d", len(out))
	}
	wantDistSq := []float64{25, 9, 4, 1}
	for i, want := range wantDistSq {
		if out[i].distSq != want {
			t.Fatalf("slot %d: expected distSq %.0f, got %.1f", i, want, out[i].distSq)
		}
	}
	if out[0].t != c.at(12, 17, 12) || out[3].t != c.at(12, 12, 11) {
		t.Fatal("draw list tiles not in far-to-near order")
	}

	seen := map[*tile]bool{}
	for _, dv := range out {
		if seen[dv.t] {
			t.Fatalf("tile at %v appears twice in the draw list", dv.t.pos)
		}
		seen[dv.t] = true
	}
}

func TestCollectVisible_OmitsShadowedAndAirTiles(t *testing.T) {
	buildCastLookups(maxCastRange)
	c := newChunk(24)
	c.at(12, 12, 14).kind = tileRock
	c.at(12, 12, 18).kind = tileRock
	eye := c.at(12, 12, 12).pos

	out := collectVisible(c, eye, nil, nil)

	if len(out) != 1 {
		t.Fatalf("expected only the front blocker, got %d tiles", len(out))
	}
	if out[0].t != c.at(12, 12, 14) {
		t.Fatalf("expected the front blocker, got tile at %v", out[0].t.pos)
	}
}

func TestCollectVisible_PoolMatchesSerial(t *testing.T) {
	buildCastLookups(maxCastRange)
	c := newChunk(24)
	c.at(12, 12, 14).kind = tileRock
	c.at(15, 12, 12).kind = tileRock
	c.at(12, 17, 12).kind = tileRock
	c.at(10, 10, 10).kind = tileMushroom
	eye := c.at(12, 12, 12).pos

	serial := collectVisible(c, eye, nil, nil)
	pooled := collectVisible(c, eye, nil, newScanPool(8))

	if len(serial) != len(pooled) {
		t.Fatalf("expected %d tiles from the pooled cast, got %d", len(serial), len(pooled))
	}
	for i := range serial {
		if serial[i].t != pooled[i].t {
			t.Fatalf("slot %d: serial tile %v, pooled tile %v", i, serial[i].t.pos, pooled[i].t.pos)
		}
	}
}

func TestCollectVisible_ReusesBuffer(t *testing.T) {
	buildCastLookups(maxCastRange)
	c := newChunk(24)
	c.at(12, 12, 14).kind = tileRock
	eye := c.at(12, 12, 12).pos

	first := collectVisible(c, eye, nil, nil)
	second := collectVisible(c, eye, first, nil)
	if len(second) != len(first) {
		t.Fatalf("expected a stable draw list across frames, got %d then %d", len(first), len(second))
	}
}
