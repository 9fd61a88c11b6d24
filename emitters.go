package main

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// rebuildEmitters rescans the chunk for light-emitting tiles. The cache goes
// stale whenever worldgen or the editor changes a tile kind; callers flip
// emittersDirty and the next frame pays for one sweep.
func rebuildEmitters(c *chunk) {
	if !c.emittersDirty && c.emitters != nil {
		return
	}
	c.emitters = c.emitters[:0]
	for i := range c.tiles {
		if c.tiles[i].kind.illuminates() {
			c.emitters = append(c.emitters, &c.tiles[i])
		}
	}
	c.emittersDirty = false
}

// nearbyEmitterLights turns the closest emitters around a position into
// candle lights for the frame, at most budget of them, nearest first.
func nearbyEmitterLights(c *chunk, around mgl64.Vec3, budget int) []Light {
	rebuildEmitters(c)
	type scored struct {
		t      *tile
		distSq float64
	}
	reach := float64(lightRange + playerSightRange)
	reachSq := reach * reach
	candidates := make([]scored, 0, 16)
	for _, t := range c.emitters {
		dx := t.pos.X() - around[0]
		dy := t.pos.Y() - around[1]
		dz := t.pos.Z() - around[2]
		d := dx*dx + dy*dy + dz*dz
		if d > reachSq {
			continue
		}
		candidates = append(candidates, scored{t: t, distSq: d})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distSq < candidates[j].distSq
	})
	if len(candidates) > budget {
		candidates = candidates[:budget]
	}
	lights := make([]Light, 0, len(candidates))
	for _, cand := range candidates {
		lights = append(lights, Light{
			pos:     cand.t.pos,
			color:   cand.t.kind.glowColor(),
			rng:     lightRange,
			flicker: 0.35,
		})
	}
	return lights
}
