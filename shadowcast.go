package main

import (
	"math"

	"github.com/gammazero/deque"
	"github.com/go-gl/mathgl/mgl64"
)

// visitFunc receives every cell a scan reaches, together with the cell's
// scan-local coordinate (octant-relative, mirrored and axis-permuted).
// Visitors that need world coordinates read tile.pos.
type visitFunc func(t *tile, x, y, z int)

// shadowcast is one pending angular wedge of a scan: four bounding angles,
// all in [0, π/4], and the depth slice to process next. Wedges live on an
// explicit frontier stack; each processed wedge may push children one slice
// deeper.
type shadowcast struct {
	left   float64
	right  float64
	top    float64
	bottom float64
	z      int
}

// scanPermutations lists the three cyclic axis orders of a scan. Result axis
// i reads source axis p[i], so p[2] names the pass's primary depth axis.
// Occlusion is evaluated once per primary axis; a cell is visible when at
// least one pass reaches it.
var scanPermutations = [3][3]int{{0, 1, 2}, {1, 2, 0}, {2, 0, 1}}

// scanOctant runs the recursive shadowcast over one octant. The view is
// first mirrored on every negative axis so outward always means increasing
// index, then scanned once per cyclic axis permutation.
//
// The shape test uses the cell's true world offset from source, so cone
// lights behave identically in all octants regardless of mirroring. The
// range test instead uses octant-local coordinates against the distance
// table; on a mirrored axis, local index 0 is the first cell beyond the
// origin plane.
func scanOctant(oc octant, castRange int, shape lightShape, source mgl64.Vec3, visit visitFunc) {
	v := oc.view
	for axis := 0; axis < 3; axis++ {
		if !oc.signs[axis] {
			v = v.mirror(axis)
		}
	}
	for _, p := range scanPermutations {
		scanFrontier(v.permute(p), castRange, shape, source, visit)
	}
}

// frontierScan carries the shared state of one octant-permutation pass.
type frontierScan struct {
	view      tileView
	castRange float64
	shape     lightShape
	source    mgl64.Vec3
	visit     visitFunc
	frontier  deque.Deque[shadowcast]
}

// scanFrontier drains one pass over an already-mirrored, already-permuted
// view. The seed wedge spans the full octant at depth 0. Every child wedge
// sits strictly deeper than its parent and depth is bounded by the view, so
// the frontier always drains.
func scanFrontier(v tileView, castRange int, shape lightShape, source mgl64.Vec3, visit visitFunc) {
	if v.empty() {
		return
	}
	s := frontierScan{
		view:      v,
		castRange: float64(castRange),
		shape:     shape,
		source:    source,
		visit:     visit,
	}
	s.frontier.PushBack(shadowcast{right: math.Pi / 4, bottom: math.Pi / 4})
	for s.frontier.Len() > 0 {
		s.processFrame(s.frontier.PopBack())
	}
}

// pushWedge queues a child wedge one slice below fr, intersected with fr's
// own angles so wedges only ever narrow. Empty intersections are dropped.
func (s *frontierScan) pushWedge(fr shadowcast, left, right, top, bottom float64) {
	if left < fr.left {
		left = fr.left
	}
	if right > fr.right {
		right = fr.right
	}
	if top < fr.top {
		top = fr.top
	}
	if bottom > fr.bottom {
		bottom = fr.bottom
	}
	if left > right || top > bottom {
		return
	}
	s.frontier.PushBack(shadowcast{left: left, right: right, top: top, bottom: bottom, z: fr.z + 1})
}

// processFrame scans one wedge at its depth slice and pushes the child
// wedges that survive its walls and range cutoffs.
//
// Screen bounds come from the wedge angles with the look-one-ahead
// multiplier z+1 (also the denominator in the atan table, which keeps every
// division well away from zero). Left/top round down; right/bottom round up
// and clamp to the slice, making the covered ranges inclusive.
func (s *frontierScan) processFrame(fr shadowcast) {
	width, height, depth := s.view.dim[0], s.view.dim[1], s.view.dim[2]
	last := fr.z+1 >= depth
	ahead := float64(fr.z + 1)
	xl := int(math.Floor(ahead * math.Tan(fr.left)))
	xr := clampCoord(int(math.Ceil(ahead*math.Tan(fr.right))), 0, width-1)
	yt := int(math.Floor(ahead * math.Tan(fr.top)))
	yb := clampCoord(int(math.Ceil(ahead*math.Tan(fr.bottom))), 0, height-1)

	// rowRun is the first row of the current streak of fully clear rows;
	// run is the first column of the current streak of clear cells within
	// the row. -1 means no open streak.
	rowRun := -1
	for y := yt; y <= yb; y++ {
		run := -1
		interrupted := false
		for x := xl; x <= xr; x++ {
			if euclideanDistanceLookup[x][y][fr.z] >= s.castRange {
				// Out of range: close the run like a wall would, then
				// abandon the rest of the row unvisited.
				if !last && run >= 0 {
					s.pushWedge(fr,
						atanCastingLookup[run][fr.z], atanCastingLookup[x][fr.z],
						atanCastingLookup[y][fr.z], atanCastingLookup[y+1][fr.z])
					run = -1
				}
				interrupted = true
				break
			}
			t := s.view.at(x, y, fr.z)
			if s.shape.contains(t.pos.Sub(s.source)) {
				// Blocking cells are visited too: they are the surfaces
				// sight and light land on. Only what lies beyond them is
				// shadowed.
				s.visit(t, x, y, fr.z)
			}
			if last {
				continue
			}
			if t.kind.transparent() {
				if run < 0 {
					run = x
				}
			} else {
				if run >= 0 {
					s.pushWedge(fr,
						atanCastingLookup[run][fr.z], atanCastingLookup[x][fr.z],
						atanCastingLookup[y][fr.z], atanCastingLookup[y+1][fr.z])
					run = -1
				}
				interrupted = true
			}
		}
		if last {
			continue
		}
		if interrupted {
			if run >= 0 {
				// Trailing clear run, open through the wedge's right bound.
				s.pushWedge(fr,
					atanCastingLookup[run][fr.z], fr.right,
					atanCastingLookup[y][fr.z], atanCastingLookup[y+1][fr.z])
			}
			if rowRun >= 0 {
				// Clear full-width rows continue at the wedge's full width;
				// this row ends that streak.
				s.pushWedge(fr,
					fr.left, fr.right,
					atanCastingLookup[rowRun][fr.z], atanCastingLookup[y][fr.z])
				rowRun = -1
			}
		} else if rowRun < 0 {
			rowRun = y
		}
	}
	if last || rowRun < 0 {
		return
	}
	if rowRun == yt {
		// Nothing in the slice obstructed the wedge: carry it straight out.
		fr.z++
		s.frontier.PushBack(fr)
		return
	}
	s.pushWedge(fr, fr.left, fr.right, atanCastingLookup[rowRun][fr.z], fr.bottom)
}
