package main

// octant is one eighth of the bounding cube around a cast origin: a view
// over that region plus the sign of each axis relative to the origin. A
// false sign means the octant extends toward smaller coordinates.
type octant struct {
	view  tileView
	signs [3]bool
}

// splitOctants slices the view to the bounding cube origin±castRange
// (saturating at the grid edges, so octants near a wall are simply smaller)
// and splits the cube at the origin along each axis in turn. The 8 returned
// views are pairwise disjoint and together cover the cube exactly; the
// negative half of each axis excludes the origin plane. Zero-size views are
// valid and scan as no-ops.
func splitOctants(v tileView, origin [3]int, castRange int) [8]octant {
	var lo, hi, at [3]int
	for axis := 0; axis < 3; axis++ {
		o := clampCoord(origin[axis], 0, v.dim[axis]-1)
		lo[axis] = clampCoord(o-castRange, 0, v.dim[axis])
		hi[axis] = clampCoord(o+castRange+1, 0, v.dim[axis])
		at[axis] = o - lo[axis]
	}
	cube := v.slice(lo, hi)

	var halvesX, halvesY, halvesZ [2]tileView
	halvesX[0], halvesX[1] = cube.splitAt(0, at[0])

	var out [8]octant
	i := 0
	for ix := 0; ix < 2; ix++ {
		halvesY[0], halvesY[1] = halvesX[ix].splitAt(1, at[1])
		for iy := 0; iy < 2; iy++ {
			halvesZ[0], halvesZ[1] = halvesY[iy].splitAt(2, at[2])
			for iz := 0; iz < 2; iz++ {
				out[i] = octant{
					view:  halvesZ[iz],
					signs: [3]bool{ix == 1, iy == 1, iz == 1},
				}
				i++
			}
		}
	}
	return out
}
