package main

import "github.com/go-gl/mathgl/mgl64"

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func signInt(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// bresenham3 walks the integer line from a to b inclusive, calling fn for
// every cell. fn returning false stops the walk.
func bresenham3(a, b gridPoint, fn func(gridPoint) bool) {
	dx, dy, dz := absInt(b.x-a.x), absInt(b.y-a.y), absInt(b.z-a.z)
	sx, sy, sz := signInt(b.x-a.x), signInt(b.y-a.y), signInt(b.z-a.z)
	x, y, z := a.x, a.y, a.z
	if !fn(a) {
		return
	}
	switch {
	case dx >= dy && dx >= dz:
		e1, e2 := 2*dy-dx, 2*dz-dx
		for x != b.x {
			x += sx
			if e1 >= 0 {
				y += sy
				e1 -= 2 * dx
			}
			if e2 >= 0 {
				z += sz
				e2 -= 2 * dx
			}
			e1 += 2 * dy
			e2 += 2 * dz
			if !fn(gridPoint{x: x, y: y, z: z}) {
				return
			}
		}
	case dy >= dx && dy >= dz:
		e1, e2 := 2*dx-dy, 2*dz-dy
		for y != b.y {
			y += sy
			if e1 >= 0 {
				x += sx
				e1 -= 2 * dy
			}
			if e2 >= 0 {
				z += sz
				e2 -= 2 * dy
			}
			e1 += 2 * dx
			e2 += 2 * dz
			if !fn(gridPoint{x: x, y: y, z: z}) {
				return
			}
		}
	default:
		e1, e2 := 2*dy-dz, 2*dx-dz
		for z != b.z {
			z += sz
			if e1 >= 0 {
				y += sy
				e1 -= 2 * dz
			}
			if e2 >= 0 {
				x += sx
				e2 -= 2 * dz
			}
			e1 += 2 * dy
			e2 += 2 * dx
			if !fn(gridPoint{x: x, y: y, z: z}) {
				return
			}
		}
	}
}

// firstSolidOnLine walks from a toward b and returns the first blocking
// tile past a, or nil when the line is clear or leaves the chunk first.
func firstSolidOnLine(c *chunk, a, b gridPoint) *tile {
	var hit *tile
	first := true
	bresenham3(a, b, func(p gridPoint) bool {
		if first {
			first = false
			return true
		}
		if !c.inBounds(p.x, p.y, p.z) {
			return false
		}
		t := c.at(p.x, p.y, p.z)
		if !t.kind.transparent() {
			hit = t
			return false
		}
		return true
	})
	return hit
}

// rayHit casts from a world position along a non-zero direction and returns
// the first solid tile within maxDist, with its distance from the start.
func rayHit(c *chunk, from, dir mgl64.Vec3, maxDist float64) (*tile, float64, bool) {
	to := from.Add(dir.Normalize().Mul(maxDist))
	hit := firstSolidOnLine(c, cellOf(from), cellOf(to))
	if hit == nil {
		return nil, 0, false
	}
	return hit, hit.pos.Sub(from).Len(), true
}

// lastOpenOnRay walks the same line as rayHit but also reports the last
// in-bounds open cell before the blocker, where the editor places tiles.
func lastOpenOnRay(c *chunk, from, dir mgl64.Vec3, maxDist float64) (open gridPoint, hit *tile, ok bool) {
	a := cellOf(from)
	b := cellOf(from.Add(dir.Normalize().Mul(maxDist)))
	open = a
	bresenham3(a, b, func(p gridPoint) bool {
		if !c.inBounds(p.x, p.y, p.z) {
			return false
		}
		t := c.at(p.x, p.y, p.z)
		if !t.kind.transparent() {
			hit = t
			ok = true
			return false
		}
		open = p
		return true
	})
	return open, hit, ok
}

// echoDistances probes the eight corner directions around a position and
// returns the distances at which they strike rock, for shaping gunshot
// reverb.
func echoDistances(c *chunk, from mgl64.Vec3) []float64 {
	out := make([]float64, 0, len(echoCornerTargets))
	for _, dir := range echoCornerTargets {
		if _, d, ok := rayHit(c, from, dir, 2*maxSoundRange); ok {
			out = append(out, d)
		}
	}
	return out
}
