package main

import "testing"

// countOctantCoverage walks every view cell of every octant and counts how
// often each chunk tile is reachable.
func countOctantCoverage(c *chunk, octs [8]octant) map[*tile]int {
	counts := map[*tile]int{}
	for _, oc := range octs {
		v := oc.view
		for z := 0; z < v.dim[2]; z++ {
			for y := 0; y < v.dim[1]; y++ {
				for x := 0; x < v.dim[0]; x++ {
					counts[v.at(x, y, z)]++
				}
			}
		}
	}
	return counts
}

func TestSplitOctants_CoverCubeExactlyOnce(t *testing.T) {
	c := newChunk(16)
	origin := [3]int{5, 7, 3}
	const castRange = 4
	octs := splitOctants(c.view(), origin, castRange)

	counts := countOctantCoverage(c, octs)
	for z := 0; z < 16; z++ {
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				inCube := absInt(x-origin[0]) <= castRange &&
					absInt(y-origin[1]) <= castRange &&
					absInt(z-origin[2]) <= castRange
				want := 0
				if inCube {
					want = 1
				}
				if got := counts[c.at(x, y, z)]; got != want {
					t.Fatalf("cell (%d,%d,%d): expected coverage %d, got %d", x, y, z, want, got)
				}
			}
		}
	}
}

func TestSplitOctants_OriginPlanesBelongToPositiveHalves(t *testing.T) {
	c := newChunk(16)
	origin := [3]int{5, 7, 3}
	octs := splitOctants(c.view(), origin, 4)

	for _, oc := range octs {
		switch oc.signs {
		case [3]bool{true, true, true}:
			if oc.view.at(0, 0, 0) != c.at(5, 7, 3) {
				t.Fatal("expected the all-positive octant to start at the origin cell")
			}
		case [3]bool{false, true, true}:
			if oc.view.at(oc.view.dim[0]-1, 0, 0) != c.at(4, 7, 3) {
				t.Fatal("expected the negative-x octant to end just before the origin plane")
			}
		}
	}
}

func TestSplitOctants_CornerOriginEmptiesNegativeHalves(t *testing.T) {
	c := newChunk(16)
	octs := splitOctants(c.view(), [3]int{0, 0, 0}, 4)

	for _, oc := range octs {
		negAxis := !oc.signs[0] || !oc.signs[1] || !oc.signs[2]
		if negAxis && !oc.view.empty() {
			t.Fatalf("expected octant with signs %v to be empty at the corner", oc.signs)
		}
		if oc.signs == [3]bool{true, true, true} {
			for _, d := range oc.view.dim {
				if d != 5 {
					t.Fatalf("expected the positive octant to span range+1 cells, got dims %v", oc.view.dim)
				}
			}
		}
	}
}

func TestSplitOctants_SaturatesAtChunkEdges(t *testing.T) {
	c := newChunk(16)
	origin := [3]int{1, 14, 8}
	const castRange = 6
	octs := splitOctants(c.view(), origin, castRange)

	counts := countOctantCoverage(c, octs)
	total := 0
	for _, n := range counts {
		if n != 1 {
			t.Fatalf("expected each cube cell to be covered once, got %d", n)
		}
		total++
	}
	// x clamps to [0,8), y to [8,16), z is the full range.
	want := 8 * 8 * 13
	if total != want {
		t.Fatalf("expected %d covered cells, got %d", want, total)
	}
}
