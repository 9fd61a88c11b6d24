package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// gridPoint represents an integer cell coordinate in the chunk.
type gridPoint struct {
	x int
	y int
	z int
}

// array returns the coordinate as a per-axis array.
func (p gridPoint) array() [3]int {
	return [3]int{p.x, p.y, p.z}
}

// cellOf is the cell containing a world position.
func cellOf(p mgl64.Vec3) gridPoint {
	return gridPoint{
		x: int(math.Floor(p.X())),
		y: int(math.Floor(p.Y())),
		z: int(math.Floor(p.Z())),
	}
}

// chunk is the dense voxel volume the game plays in. The tile slice is laid
// out x-fastest, z-slabs contiguous. lightGen and seenGen are the current
// illumination and draw-set generations; a tile's illum or seen state only
// counts when its stamp matches.
type chunk struct {
	dim   [3]int
	tiles []tile

	lightGen uint32
	seenGen  uint32

	emitters      []*tile
	emittersDirty bool
}

// newChunk allocates a cubic chunk of air and assigns every tile its
// world-space position.
func newChunk(size int) *chunk {
	c := &chunk{
		dim:   [3]int{size, size, size},
		tiles: make([]tile, size*size*size),
	}
	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				t := c.at(x, y, z)
				t.kind = tileAir
				t.pos = mgl64.Vec3{float64(x), float64(y), float64(z)}
			}
		}
	}
	return c
}

// at returns the tile at a chunk coordinate. Callers keep coordinates
// in-bounds.
func (c *chunk) at(x, y, z int) *tile {
	return &c.tiles[x+y*c.dim[0]+z*c.dim[0]*c.dim[1]]
}

// inBounds reports whether a coordinate lies inside the chunk.
func (c *chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.dim[0] && y >= 0 && y < c.dim[1] && z >= 0 && z < c.dim[2]
}

// view returns a tileView covering the whole chunk.
func (c *chunk) view() tileView {
	return tileView{
		tiles:  c.tiles,
		base:   0,
		stride: [3]int{1, c.dim[0], c.dim[0] * c.dim[1]},
		dim:    c.dim,
	}
}

// tileView is a strided window into a chunk's tiles. Mirroring an axis
// negates its stride so iteration runs the other way; permuting reorders the
// axes. Views produced by splitAt cover disjoint tiles and may be scanned
// concurrently.
type tileView struct {
	tiles  []tile
	base   int
	stride [3]int
	dim    [3]int
}

// at returns the tile at a view-local coordinate.
func (v tileView) at(x, y, z int) *tile {
	return &v.tiles[v.base+x*v.stride[0]+y*v.stride[1]+z*v.stride[2]]
}

// empty reports whether any axis of the view has zero extent.
func (v tileView) empty() bool {
	return v.dim[0] == 0 || v.dim[1] == 0 || v.dim[2] == 0
}

// slice narrows the view to [lo, hi) on every axis. Bounds must already lie
// within the view.
func (v tileView) slice(lo, hi [3]int) tileView {
	nv := v
	for axis := 0; axis < 3; axis++ {
		nv.base += lo[axis] * v.stride[axis]
		nv.dim[axis] = hi[axis] - lo[axis]
	}
	return nv
}

// splitAt divides the view along one axis into [0, k) and [k, dim). Either
// half may be empty.
func (v tileView) splitAt(axis, k int) (tileView, tileView) {
	low := v
	low.dim[axis] = k
	high := v
	high.base += k * v.stride[axis]
	high.dim[axis] = v.dim[axis] - k
	return low, high
}

// mirror reverses the iteration direction of one axis, so local index 0 maps
// to what was the far end.
func (v tileView) mirror(axis int) tileView {
	nv := v
	if v.dim[axis] > 0 {
		nv.base += (v.dim[axis] - 1) * v.stride[axis]
	}
	nv.stride[axis] = -v.stride[axis]
	return nv
}

// permute reorders the view's axes: result axis i reads what source axis
// p[i] covered.
func (v tileView) permute(p [3]int) tileView {
	nv := v
	for axis := 0; axis < 3; axis++ {
		nv.stride[axis] = v.stride[p[axis]]
		nv.dim[axis] = v.dim[p[axis]]
	}
	return nv
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// buildEchoCornerTargets precomputes the eight unit corner directions used
// when probing the cave for gunshot echo distances.
func buildEchoCornerTargets() []mgl64.Vec3 {
	dirs := make([]mgl64.Vec3, 0, 8)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				dirs = append(dirs, mgl64.Vec3{sx, sy, sz}.Normalize())
			}
		}
	}
	return dirs
}

// echoCornerTargets caches the corner probe directions for audio echo.
var echoCornerTargets = buildEchoCornerTargets()
