package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"runtime"
	"sync"
)

// chunkGenSet bundles the seeded noise sources the terrain blends: three
// distinct flavors, each paired with a value-noise weight field so the
// character of the caves drifts across the chunk.
type chunkGenSet struct {
	simplex       *simplexNoise
	simplexWeight *valueNoise
	perlin        *perlinNoise
	perlinWeight  *valueNoise
	value         *valueNoise
	valueWeight   *valueNoise
}

// newChunkGenSet derives all six noise sources from one terrain seed.
func newChunkGenSet(seed int64) *chunkGenSet {
	return &chunkGenSet{
		simplex:       newSimplexNoise(seed + 100),
		simplexWeight: newValueNoise(seed + 200),
		perlin:        newPerlinNoise(seed + 300),
		perlinWeight:  newValueNoise(seed + 400),
		value:         newValueNoise(seed + 500),
		valueWeight:   newValueNoise(seed + 600),
	}
}

// caveDensity evaluates the blended field at a cell: the absolute value of
// each source, weighted by the absolute value of its weight field, all
// normalized so the result stays in [0, 1].
func (g *chunkGenSet) caveDensity(x, y, z float64) float64 {
	sx, sy, sz := x*noiseScale, y*noiseScale, z*noiseScale
	wx, wy, wz := x*noiseWeightScale, y*noiseWeightScale, z*noiseWeightScale

	s := math.Abs(g.simplex.sample(sx, sy, sz))
	sw := math.Abs(g.simplexWeight.sample(wx, wy, wz))
	p := math.Abs(g.perlin.sample(sx, sy, sz))
	pw := math.Abs(g.perlinWeight.sample(wx, wy, wz))
	v := math.Abs(g.value.sample(sx, sy, sz))
	vw := math.Abs(g.valueWeight.sample(wx, wy, wz))

	total := sw + pw + vw
	if total <= 0 {
		return 0
	}
	return s*(sw/total) + p*(pw/total) + v*(vw/total)
}

// caveThreshold is the density a cell must exceed to be open air. Lowest at
// mid-height, rising to impassable toward the chunk's floor and ceiling, so
// caves pinch shut instead of spilling out of the volume.
func caveThreshold(y int) float64 {
	mid := float64(chunkSize / 2)
	return math.Abs(float64(y)-mid)/mid + caveThresholdBase
}

// generateChunk builds the playable chunk for a seed: the density field on
// the OpenCL device when built and allowed, on CPU slabs otherwise, then
// the decoration pass either way.
func generateChunk(seed int64) *chunk {
	c := newChunk(chunkSize)
	gpuDone := false
	if *gpuGenFlag {
		if err := generateFieldGPU(c, seed); err != nil {
			log.Printf("terrain: OpenCL generation unavailable (%v); using CPU", err)
		} else {
			log.Printf("terrain: density field generated on OpenCL device")
			gpuDone = true
		}
	}
	if !gpuDone {
		generateFieldCPU(c, seed)
	}
	decorateChunk(c, seed)
	c.emittersDirty = true
	return c
}

// generateFieldCPU evaluates the density field over the whole chunk,
// splitting contiguous z-slabs across one goroutine per CPU.
func generateFieldCPU(c *chunk, seed int64) {
	gen := newChunkGenSet(seed)
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > c.dim[2] {
		workers = c.dim[2]
	}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		z0 := i * c.dim[2] / workers
		z1 := (i + 1) * c.dim[2] / workers
		wg.Add(1)
		go func(z0, z1 int) {
			defer wg.Done()
			for z := z0; z < z1; z++ {
				for y := 0; y < c.dim[1]; y++ {
					threshold := caveThreshold(y)
					for x := 0; x < c.dim[0]; x++ {
						t := c.at(x, y, z)
						if gen.caveDensity(float64(x), float64(y), float64(z)) > threshold {
							t.kind = tileAir
						} else {
							t.kind = tileRock
						}
					}
				}
			}
		}(z0, z1)
	}
	wg.Wait()
}

// applyFieldKinds copies a generated kind byte per cell into the chunk.
// Layout matches the chunk's backing order: x fastest, z slabs last. A zero
// byte is air, anything else rock.
func applyFieldKinds(c *chunk, kinds []byte) error {
	if len(kinds) != len(c.tiles) {
		return fmt.Errorf("field buffer holds %d cells, chunk needs %d", len(kinds), len(c.tiles))
	}
	for i := range c.tiles {
		if kinds[i] == 0 {
			c.tiles[i].kind = tileAir
		} else {
			c.tiles[i].kind = tileRock
		}
	}
	return nil
}

// decorateChunk runs the seeded feature pass: wherever air rests directly
// on rock there is a small chance of a candle or a mushroom. Iteration
// order is fixed so a seed always yields the same cave.
func decorateChunk(c *chunk, seed int64) {
	rng := rand.New(rand.NewSource(seed + 700))
	for z := 0; z < c.dim[2]; z++ {
		for y := 1; y < c.dim[1]; y++ {
			for x := 0; x < c.dim[0]; x++ {
				t := c.at(x, y, z)
				if t.kind != tileAir || c.at(x, y-1, z).kind != tileRock {
					continue
				}
				if rng.Intn(candleChance) == 0 {
					t.kind = tileCandle
				} else if rng.Intn(mushroomChance) == 0 {
					t.kind = tileMushroom
				}
			}
		}
	}
}
