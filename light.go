package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rgb is a normalized color channel triple, the unit of both tile tint and
// illumination.
type rgb struct {
	r float32
	g float32
	b float32
}

// combine merges two illumination samples channel-wise: the strongest light
// wins per channel, clamped to 1. Overlapping lights therefore never
// overexpose.
func (c rgb) combine(o rgb) rgb {
	return rgb{
		r: clamp01(maxF32(c.r, o.r)),
		g: clamp01(maxF32(c.g, o.g)),
		b: clamp01(maxF32(c.b, o.b)),
	}
}

// scaled multiplies every channel by f.
func (c rgb) scaled(f float32) rgb {
	return rgb{r: c.r * f, g: c.g * f, b: c.b * f}
}

// add sums two colors channel-wise, clamped to 1.
func (c rgb) add(o rgb) rgb {
	return rgb{
		r: clamp01(c.r + o.r),
		g: clamp01(c.g + o.g),
		b: clamp01(c.b + o.b),
	}
}

// mul multiplies two colors channel-wise.
func (c rgb) mul(o rgb) rgb {
	return rgb{r: c.r * o.r, g: c.g * o.g, b: c.b * o.b}
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lightShape restricts which cells of a cast receive the visitor. The zero
// value is a sphere and contains everything; a cone contains offsets whose
// angle to the facing vector is within the half-angle. The set of shapes is
// closed, so a tagged struct stands in for an interface.
type lightShape struct {
	cone      bool
	facing    mgl64.Vec3
	cosHalfSq float64
}

// sphereShape is the omnidirectional shape.
func sphereShape() lightShape {
	return lightShape{}
}

// coneShape builds a cone from a facing vector and a half-angle in
// [0, π/2). A zero half-angle keeps only offsets exactly on the facing ray.
func coneShape(facing mgl64.Vec3, halfAngle float64) lightShape {
	c := math.Cos(halfAngle)
	return lightShape{cone: true, facing: facing.Normalize(), cosHalfSq: c * c}
}

// contains reports whether the offset from the shape's source lies inside
// the shape. The cone test compares squared cosines, no acos involved; a
// zero offset is outside every cone.
func (sh lightShape) contains(offset mgl64.Vec3) bool {
	if !sh.cone {
		return true
	}
	dot := sh.facing.Dot(offset)
	if dot <= 0 {
		return false
	}
	return dot*dot >= offset.Dot(offset)*sh.cosHalfSq
}

// Light is one light source for a frame: a world position, a color, and a
// reach. Cone lights also carry a facing and half-angle. Persistent lights
// survive across frames (placed via the editor); everything else (torch,
// muzzle flash, candle glow) is rebuilt per frame. flicker is the amplitude
// of the intensity wobble, 0 for a steady light.
type Light struct {
	pos        mgl64.Vec3
	color      rgb
	rng        int
	cone       bool
	facing     mgl64.Vec3
	halfAngle  float64
	persistent bool
	flicker    float32
}

// shape returns the cast shape for the light.
func (l Light) shape() lightShape {
	if !l.cone {
		return sphereShape()
	}
	return coneShape(l.facing, l.halfAngle)
}

// flickerNoise drives candle and torch wobble.
var flickerNoise = newValueNoise(0x7a11)

// intensity is the light's flicker-scaled brightness at a tic,
// deterministic in (position, tic).
func (l Light) intensity(tic uint64) float32 {
	if l.flicker == 0 {
		return 1
	}
	n := flickerNoise.sample(l.pos.X()*0.7, l.pos.Y()*0.7+float64(tic)*0.07, l.pos.Z()*0.7)
	return 1 - l.flicker*float32(0.5+0.5*n)
}

// illuminationOf reads a tile's illumination under the chunk's current
// light generation; stale stamps read as black.
func illuminationOf(c *chunk, t *tile) rgb {
	if t.lightGen != c.lightGen {
		return rgb{}
	}
	return t.illum
}
