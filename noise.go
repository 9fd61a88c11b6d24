package main

import (
	"math"
	"math/rand"
)

// Seeded lattice noise in three flavors. Terrain blends all three, weighted
// by value-noise fields; light flicker reuses the value flavor. Every
// sampler returns roughly [-1, 1] and is deterministic in (seed, x, y, z).

// fadeCurve is the quintic smoothstep used by all lattice interpolation.
func fadeCurve(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// hashLattice mixes a lattice coordinate and seed into 53 usable bits.
func hashLattice(x, y, z, seed int64) uint64 {
	h := uint64(seed) * 0x9e3779b97f4a7c15
	h ^= uint64(x) * 0xbf58476d1ce4e5b9
	h ^= uint64(y) * 0x94d049bb133111eb
	h ^= uint64(z) * 0xd6e8feb86659fd93
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

// valueNoise interpolates hashed random values at integer lattice points.
type valueNoise struct {
	seed int64
}

func newValueNoise(seed int64) *valueNoise {
	return &valueNoise{seed: seed}
}

func (n *valueNoise) lattice(x, y, z int64) float64 {
	return float64(hashLattice(x, y, z, n.seed)>>11)/float64(1<<52) - 1
}

// sample returns the interpolated noise value at a point.
func (n *valueNoise) sample(x, y, z float64) float64 {
	x0, y0, z0 := int64(math.Floor(x)), int64(math.Floor(y)), int64(math.Floor(z))
	fx := fadeCurve(x - float64(x0))
	fy := fadeCurve(y - float64(y0))
	fz := fadeCurve(z - float64(z0))

	c000 := n.lattice(x0, y0, z0)
	c100 := n.lattice(x0+1, y0, z0)
	c010 := n.lattice(x0, y0+1, z0)
	c110 := n.lattice(x0+1, y0+1, z0)
	c001 := n.lattice(x0, y0, z0+1)
	c101 := n.lattice(x0+1, y0, z0+1)
	c011 := n.lattice(x0, y0+1, z0+1)
	c111 := n.lattice(x0+1, y0+1, z0+1)

	return lerp(
		lerp(lerp(c000, c100, fx), lerp(c010, c110, fx), fy),
		lerp(lerp(c001, c101, fx), lerp(c011, c111, fx), fy),
		fz)
}

// permTable is a seeded shuffle of 0..255, doubled so indexing never wraps.
type permTable [512]uint8

func newPermTable(seed int64) permTable {
	rng := rand.New(rand.NewSource(seed))
	var p permTable
	for i := 0; i < 256; i++ {
		p[i] = uint8(i)
	}
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	copy(p[256:], p[:256])
	return p
}

// grad3 are the twelve edge-direction gradients of classic gradient noise.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

func dotGrad(g [3]float64, x, y, z float64) float64 {
	return g[0]*x + g[1]*y + g[2]*z
}

// perlinNoise is classic improved gradient noise over a seeded permutation.
type perlinNoise struct {
	perm permTable
}

func newPerlinNoise(seed int64) *perlinNoise {
	return &perlinNoise{perm: newPermTable(seed)}
}

// sample returns the gradient noise value at a point.
func (n *perlinNoise) sample(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)
	u := fadeCurve(xf)
	v := fadeCurve(yf)
	w := fadeCurve(zf)

	p := &n.perm
	g := func(i, j, k int, dx, dy, dz float64) float64 {
		h := p[int(p[int(p[xi+i])+yi+j])+zi+k] % 12
		return dotGrad(grad3[h], dx, dy, dz)
	}

	return lerp(
		lerp(
			lerp(g(0, 0, 0, xf, yf, zf), g(1, 0, 0, xf-1, yf, zf), u),
			lerp(g(0, 1, 0, xf, yf-1, zf), g(1, 1, 0, xf-1, yf-1, zf), u),
			v),
		lerp(
			lerp(g(0, 0, 1, xf, yf, zf-1), g(1, 0, 1, xf-1, yf, zf-1), u),
			lerp(g(0, 1, 1, xf, yf-1, zf-1), g(1, 1, 1, xf-1, yf-1, zf-1), u),
			v),
		w)
}

// simplexNoise is three-dimensional simplex noise over a seeded permutation.
type simplexNoise struct {
	perm permTable
}

func newSimplexNoise(seed int64) *simplexNoise {
	return &simplexNoise{perm: newPermTable(seed)}
}

const (
	simplexSkew   = 1.0 / 3.0
	simplexUnskew = 1.0 / 6.0
)

// sample returns the simplex noise value at a point.
func (n *simplexNoise) sample(x, y, z float64) float64 {
	s := (x + y + z) * simplexSkew
	i := int(math.Floor(x + s))
	j := int(math.Floor(y + s))
	k := int(math.Floor(z + s))
	t := float64(i+j+k) * simplexUnskew
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	// Rank the displacement components to pick the simplex the point is in.
	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + simplexUnskew
	y1 := y0 - float64(j1) + simplexUnskew
	z1 := z0 - float64(k1) + simplexUnskew
	x2 := x0 - float64(i2) + 2*simplexUnskew
	y2 := y0 - float64(j2) + 2*simplexUnskew
	z2 := z0 - float64(k2) + 2*simplexUnskew
	x3 := x0 - 1 + 3*simplexUnskew
	y3 := y0 - 1 + 3*simplexUnskew
	z3 := z0 - 1 + 3*simplexUnskew

	ii := i & 255
	jj := j & 255
	kk := k & 255
	p := &n.perm

	corner := func(dx, dy, dz float64, gi, gj, gk int) float64 {
		t := 0.6 - dx*dx - dy*dy - dz*dz
		if t < 0 {
			return 0
		}
		h := p[ii+gi+int(p[jj+gj+int(p[kk+gk])])] % 12
		t *= t
		return t * t * dotGrad(grad3[h], dx, dy, dz)
	}

	total := corner(x0, y0, z0, 0, 0, 0) +
		corner(x1, y1, z1, i1, j1, k1) +
		corner(x2, y2, z2, i2, j2, k2) +
		corner(x3, y3, z3, 1, 1, 1)
	return 32 * total
}
