package main

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// castVisibility runs one full shadowcast over the chunk: split the bounding
// cube into octants at the origin, then scan each octant. With a pool the
// eight octants run in parallel; their views are disjoint, so the visitor
// only needs to be safe against itself within a single octant. Lights are
// cast one at a time for that reason.
func castVisibility(c *chunk, origin gridPoint, castRange int, shape lightShape, source mgl64.Vec3, visit visitFunc, pool *scanPool) {
	if castRange < 0 {
		return
	}
	if castRange > castLookupRange {
		panic(fmt.Sprintf("cast range %d exceeds lookup table range %d", castRange, castLookupRange))
	}
	octs := splitOctants(c.view(), origin.array(), castRange)
	if pool == nil {
		for _, oc := range octs {
			scanOctant(oc, castRange, shape, source, visit)
		}
		return
	}
	jobs := make([]scanJob, 0, len(octs))
	for _, oc := range octs {
		jobs = append(jobs, scanJob{
			oct:       oc,
			castRange: castRange,
			shape:     shape,
			source:    source,
			visit:     visit,
		})
	}
	pool.run(jobs)
}

// nextLightGen advances the chunk to a fresh illumination generation,
// clearing the wrapped stamps on overflow.
func nextLightGen(c *chunk) {
	if c.lightGen == ^uint32(0) {
		for i := range c.tiles {
			c.tiles[i].lightGen = 0
		}
		c.lightGen = 1
		return
	}
	c.lightGen++
}

// castLight paints one light into the chunk's illumination field. The first
// touch of a tile this generation replaces its stale color outright; later
// touches combine channel-wise, strongest light winning.
func castLight(c *chunk, l Light, tic uint64, pool *scanPool) {
	col := l.color.scaled(l.intensity(tic))
	gen := c.lightGen
	visit := func(t *tile, _, _, _ int) {
		if t.lightGen != gen {
			t.lightGen = gen
			t.illum = col
			return
		}
		t.illum = t.illum.combine(col)
	}
	castVisibility(c, cellOf(l.pos), l.rng, l.shape(), l.pos, visit, pool)
}

// drawVoxel is one visible tile queued for rendering, with its squared
// distance to the eye for depth ordering.
type drawVoxel struct {
	t      *tile
	distSq float64
}

// collectVisible casts the player's field of view and fills out with the
// visible solid and light-emitting tiles, far to near. Each octant appends
// to its own buffer, so the eight scans stay lock-free; the seen stamp
// deduplicates the up-to-three permutation passes that can reach one tile.
func collectVisible(c *chunk, eye mgl64.Vec3, out []drawVoxel, pool *scanPool) []drawVoxel {
	if c.seenGen == ^uint32(0) {
		for i := range c.tiles {
			c.tiles[i].seenGen = 0
		}
		c.seenGen = 1
	} else {
		c.seenGen++
	}
	gen := c.seenGen

	octs := splitOctants(c.view(), cellOf(eye).array(), playerSightRange)
	var parts [8][]drawVoxel
	jobs := make([]scanJob, 0, len(octs))
	for i, oc := range octs {
		part := &parts[i]
		visit := func(t *tile, _, _, _ int) {
			if t.seenGen == gen {
				return
			}
			t.seenGen = gen
			if t.kind.transparent() && !t.kind.illuminates() {
				return
			}
			d := t.pos.Sub(eye)
			*part = append(*part, drawVoxel{t: t, distSq: d.Dot(d)})
		}
		jobs = append(jobs, scanJob{
			oct:       oc,
			castRange: playerSightRange,
			shape:     sphereShape(),
			source:    eye,
			visit:     visit,
		})
	}
	if pool == nil {
		for _, j := range jobs {
			scanOctant(j.oct, j.castRange, j.shape, j.source, j.visit)
		}
	} else {
		pool.run(jobs)
	}

	out = out[:0]
	for _, part := range parts {
		out = append(out, part...)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].distSq > out[j].distSq
	})
	return out
}
