package main

import (
	"fmt"
	"math"
)

// Cast lookup tables. Both are indexed with octant-local offsets and sized
// castLookupRange+1 on every axis, so any scan with a cast range at or below
// castLookupRange stays in bounds. Built once before the first cast,
// read-only afterward.
var (
	// atanCastingLookup[x][z] is atan(x/(z+1)), the angle of column x one
	// slice ahead of depth z.
	atanCastingLookup [][]float64

	// euclideanDistanceLookup[x][y][z] is the Euclidean length of the local
	// offset (x, y, z).
	euclideanDistanceLookup [][][]float64

	// castLookupRange is the largest cast range the tables support.
	castLookupRange = -1
)

// buildCastLookups sizes the cast tables for ranges up to maxRange. Calling
// it again with a smaller or equal range is a no-op.
func buildCastLookups(maxRange int) {
	if maxRange < 0 {
		panic(fmt.Sprintf("cast lookup range %d is negative", maxRange))
	}
	if maxRange <= castLookupRange {
		return
	}
	n := maxRange + 1

	atanCastingLookup = make([][]float64, n)
	for x := 0; x < n; x++ {
		atanCastingLookup[x] = make([]float64, n)
		for z := 0; z < n; z++ {
			atanCastingLookup[x][z] = math.Atan(float64(x) / float64(z+1))
		}
	}

	euclideanDistanceLookup = make([][][]float64, n)
	for x := 0; x < n; x++ {
		euclideanDistanceLookup[x] = make([][]float64, n)
		for y := 0; y < n; y++ {
			euclideanDistanceLookup[x][y] = make([]float64, n)
			for z := 0; z < n; z++ {
				euclideanDistanceLookup[x][y][z] = math.Sqrt(float64(x*x + y*y + z*z))
			}
		}
	}

	castLookupRange = maxRange
}
