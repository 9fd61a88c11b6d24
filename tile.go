package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// tileKind identifies what occupies a cell: terrain, a light-emitting
// feature, or one of the gun parts the first-person weapon model is
// assembled from.
type tileKind uint8

const (
	tileAir tileKind = iota
	tileRock
	tileMushroom
	tileCandle

	gunBody
	gunBarrel
	gunMuzzle
	gunSight
	gunStock
	gunGrip
	gunTrigger
	gunMagazine
	gunRail
)

// transparent reports whether a cast ray passes through the cell. Rock is the
// only terrain that blocks; features and gun parts never do.
func (k tileKind) transparent() bool {
	return k != tileRock
}

// illuminates reports whether the kind is a light emitter in the world.
func (k tileKind) illuminates() bool {
	return k == tileMushroom || k == tileCandle
}

// glowColor is the emitted light color for illuminating kinds.
func (k tileKind) glowColor() rgb {
	switch k {
	case tileMushroom:
		return rgb{0.22, 0.5, 0.58}
	case tileCandle:
		return rgb{0.95, 0.7, 0.32}
	}
	return rgb{}
}

// glyph is the atlas index used to draw the kind.
func (k tileKind) glyph() int {
	switch k {
	case tileRock:
		return glyphShade
	case tileMushroom:
		return glyphMushroom
	case tileCandle:
		return glyphCandle
	case gunBody, gunRail:
		return glyphBoxHorizontal
	case gunBarrel:
		return glyphBoxThin
	case gunMuzzle:
		return glyphMuzzle
	case gunSight:
		return glyphSight
	case gunStock:
		return glyphBoxSolid
	case gunGrip:
		return glyphBoxVertical
	case gunTrigger:
		return glyphTrigger
	case gunMagazine:
		return glyphBoxVertical
	}
	return glyphBlank
}

// baseColor is the unlit sprite tint for the kind.
func (k tileKind) baseColor() rgb {
	switch k {
	case tileRock:
		return rgb{0.48, 0.45, 0.42}
	case tileMushroom:
		return rgb{0.5, 0.85, 0.9}
	case tileCandle:
		return rgb{1.0, 0.85, 0.5}
	case gunBody, gunRail, gunStock:
		return rgb{0.35, 0.33, 0.3}
	case gunBarrel, gunMuzzle:
		return rgb{0.55, 0.55, 0.58}
	case gunSight:
		return rgb{0.8, 0.3, 0.2}
	case gunGrip, gunMagazine, gunTrigger:
		return rgb{0.25, 0.22, 0.2}
	}
	return rgb{1, 1, 1}
}

// spriteRotation is the sprite's draw rotation in radians. Long gun parts
// lie on their side.
func (k tileKind) spriteRotation() float64 {
	switch k {
	case gunBarrel, gunBody, gunRail:
		return math.Pi / 2
	}
	return 0
}

// kindNames maps editor-facing names to kinds for persistence.
var kindNames = map[string]tileKind{
	"air":      tileAir,
	"rock":     tileRock,
	"mushroom": tileMushroom,
	"candle":   tileCandle,
}

// name returns the persistence name of a kind, or "" when the kind is not a
// placeable world tile.
func (k tileKind) name() string {
	for n, v := range kindNames {
		if v == k {
			return n
		}
	}
	return ""
}

// tile is one cell of the chunk. pos is the cell's world-space coordinate,
// kept on the tile so cast visitors can test shape containment and distance
// without undoing octant mirroring. illum and the generation stamps hold the
// per-frame lighting and draw-set state.
type tile struct {
	kind     tileKind
	pos      mgl64.Vec3
	illum    rgb
	lightGen uint32
	seenGen  uint32
}
