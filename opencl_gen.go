//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// caveKernelSource mirrors the CPU density blend: three noise flavors mixed
// by value-noise weight fields, thresholded by height into air and rock.
// The permutation tables ride along as buffers; the lattice hash is exact,
// only the float math is single precision.
const caveKernelSource = `
inline ulong hash_lattice(long x, long y, long z, long seed) {
    ulong h = (ulong)seed * 0x9e3779b97f4a7c15UL;
    h ^= (ulong)x * 0xbf58476d1ce4e5b9UL;
    h ^= (ulong)y * 0x94d049bb133111ebUL;
    h ^= (ulong)z * 0xd6e8feb86659fd93UL;
    h ^= h >> 27;
    h *= 0x94d049bb133111ebUL;
    h ^= h >> 31;
    return h;
}

inline float fade_curve(float t) {
    return t * t * t * (t * (t * 6.0f - 15.0f) + 10.0f);
}

__constant float GRAD3[36] = {
    1,1,0, -1,1,0, 1,-1,0, -1,-1,0,
    1,0,1, -1,0,1, 1,0,-1, -1,0,-1,
    0,1,1, 0,-1,1, 0,1,-1, 0,-1,-1};

inline float dot_grad(int h, float x, float y, float z) {
    int b = h * 3;
    return GRAD3[b] * x + GRAD3[b + 1] * y + GRAD3[b + 2] * z;
}

inline float lattice_value(long x, long y, long z, long seed) {
    return (float)(hash_lattice(x, y, z, seed) >> 11) / 4503599627370496.0f - 1.0f;
}

inline float value_noise(float x, float y, float z, long seed) {
    float flx = floor(x), fly = floor(y), flz = floor(z);
    long x0 = (long)flx, y0 = (long)fly, z0 = (long)flz;
    float fx = fade_curve(x - flx);
    float fy = fade_curve(y - fly);
    float fz = fade_curve(z - flz);
    float c000 = lattice_value(x0,     y0,     z0,     seed);
    float c100 = lattice_value(x0 + 1, y0,     z0,     seed);
    float c010 = lattice_value(x0,     y0 + 1, z0,     seed);
    float c110 = lattice_value(x0 + 1, y0 + 1, z0,     seed);
    float c001 = lattice_value(x0,     y0,     z0 + 1, seed);
    float c101 = lattice_value(x0 + 1, y0,     z0 + 1, seed);
    float c011 = lattice_value(x0,     y0 + 1, z0 + 1, seed);
    float c111 = lattice_value(x0 + 1, y0 + 1, z0 + 1, seed);
    return mix(mix(mix(c000, c100, fx), mix(c010, c110, fx), fy),
               mix(mix(c001, c101, fx), mix(c011, c111, fx), fy), fz);
}

#define PHASH(i, j, k) (p[(int)p[(int)p[xi + (i)] + yi + (j)] + zi + (k)] % 12)

inline float perlin_noise(float x, float y, float z, __global const uchar* p) {
    float flx = floor(x), fly = floor(y), flz = floor(z);
    int xi = ((int)flx) & 255;
    int yi = ((int)fly) & 255;
    int zi = ((int)flz) & 255;
    float xf = x - flx;
    float yf = y - fly;
    float zf = z - flz;
    float u = fade_curve(xf);
    float v = fade_curve(yf);
    float w = fade_curve(zf);
    float n000 = dot_grad(PHASH(0, 0, 0), xf,        yf,        zf);
    float n100 = dot_grad(PHASH(1, 0, 0), xf - 1.0f, yf,        zf);
    float n010 = dot_grad(PHASH(0, 1, 0), xf,        yf - 1.0f, zf);
    float n110 = dot_grad(PHASH(1, 1, 0), xf - 1.0f, yf - 1.0f, zf);
    float n001 = dot_grad(PHASH(0, 0, 1), xf,        yf,        zf - 1.0f);
    float n101 = dot_grad(PHASH(1, 0, 1), xf - 1.0f, yf,        zf - 1.0f);
    float n011 = dot_grad(PHASH(0, 1, 1), xf,        yf - 1.0f, zf - 1.0f);
    float n111 = dot_grad(PHASH(1, 1, 1), xf - 1.0f, yf - 1.0f, zf - 1.0f);
    return mix(mix(mix(n000, n100, u), mix(n010, n110, u), v),
               mix(mix(n001, n101, u), mix(n011, n111, u), v), w);
}

inline float simplex_corner(float dx, float dy, float dz, int h) {
    float t = 0.6f - dx * dx - dy * dy - dz * dz;
    if (t < 0.0f) {
        return 0.0f;
    }
    t *= t;
    return t * t * dot_grad(h, dx, dy, dz);
}

inline float simplex_noise(float x, float y, float z, __global const uchar* p) {
    const float skew = 1.0f / 3.0f;
    const float unskew = 1.0f / 6.0f;
    float s = (x + y + z) * skew;
    int i = (int)floor(x + s);
    int j = (int)floor(y + s);
    int k = (int)floor(z + s);
    float t = (float)(i + j + k) * unskew;
    float x0 = x - ((float)i - t);
    float y0 = y - ((float)j - t);
    float z0 = z - ((float)k - t);

    int i1, j1, k1, i2, j2, k2;
    if (x0 >= y0) {
        if (y0 >= z0)      { i1=1; j1=0; k1=0; i2=1; j2=1; k2=0; }
        else if (x0 >= z0) { i1=1; j1=0; k1=0; i2=1; j2=0; k2=1; }
        else               { i1=0; j1=0; k1=1; i2=1; j2=0; k2=1; }
    } else {
        if (y0 < z0)       { i1=0; j1=0; k1=1; i2=0; j2=1; k2=1; }
        else if (x0 < z0)  { i1=0; j1=1; k1=0; i2=0; j2=1; k2=1; }
        else               { i1=0; j1=1; k1=0; i2=1; j2=1; k2=0; }
    }

    float x1 = x0 - (float)i1 + unskew;
    float y1 = y0 - (float)j1 + unskew;
    float z1 = z0 - (float)k1 + unskew;
    float x2 = x0 - (float)i2 + 2.0f * unskew;
    float y2 = y0 - (float)j2 + 2.0f * unskew;
    float z2 = z0 - (float)k2 + 2.0f * unskew;
    float x3 = x0 - 1.0f + 3.0f * unskew;
    float y3 = y0 - 1.0f + 3.0f * unskew;
    float z3 = z0 - 1.0f + 3.0f * unskew;

    int ii = i & 255;
    int jj = j & 255;
    int kk = k & 255;
    int h0 = p[ii + (int)p[jj + (int)p[kk]]] % 12;
    int h1 = p[ii + i1 + (int)p[jj + j1 + (int)p[kk + k1]]] % 12;
    int h2 = p[ii + i2 + (int)p[jj + j2 + (int)p[kk + k2]]] % 12;
    int h3 = p[ii + 1 + (int)p[jj + 1 + (int)p[kk + 1]]] % 12;

    return 32.0f * (simplex_corner(x0, y0, z0, h0) +
                    simplex_corner(x1, y1, z1, h1) +
                    simplex_corner(x2, y2, z2, h2) +
                    simplex_corner(x3, y3, z3, h3));
}

__kernel void cave_field(
    const int dim,
    const float noise_scale,
    const float weight_scale,
    const float threshold_base,
    __global const long* seeds,
    __global const uchar* perm_simplex,
    __global const uchar* perm_perlin,
    __global uchar* kinds)
{
    int idx = get_global_id(0);
    int size = dim * dim * dim;
    if (idx >= size) {
        return;
    }
    int x = idx % dim;
    int y = (idx / dim) % dim;
    int z = idx / (dim * dim);

    float sx = x * noise_scale, sy = y * noise_scale, sz = z * noise_scale;
    float wx = x * weight_scale, wy = y * weight_scale, wz = z * weight_scale;

    float sv = fabs(simplex_noise(sx, sy, sz, perm_simplex));
    float sw = fabs(value_noise(wx, wy, wz, seeds[1]));
    float pv = fabs(perlin_noise(sx, sy, sz, perm_perlin));
    float pw = fabs(value_noise(wx, wy, wz, seeds[2]));
    float vv = fabs(value_noise(sx, sy, sz, seeds[0]));
    float vw = fabs(value_noise(wx, wy, wz, seeds[3]));

    float total = sw + pw + vw;
    float density = 0.0f;
    if (total > 0.0f) {
        density = sv * (sw / total) + pv * (pw / total) + vv * (vw / total);
    }
    float mid = (float)dim * 0.5f;
    float threshold = fabs((float)y - mid) / mid + threshold_base;
    kinds[idx] = density > threshold ? (uchar)0 : (uchar)1;
}`

// generateFieldGPU evaluates the cave density field on an OpenCL device and
// applies the resulting kind bytes to the chunk. Device selection prefers a
// GPU and falls back to a CPU device; any failure reports back so the
// caller can run the host path instead.
func generateFieldGPU(c *chunk, seed int64) error {
	device, err := pickOpenCLDevice()
	if err != nil {
		return err
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	defer context.Release()
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	defer queue.Release()
	program, err := context.CreateProgramWithSource([]string{caveKernelSource})
	if err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	defer program.Release()
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	kernel, err := program.CreateKernel("cave_field")
	if err != nil {
		return fmt.Errorf("creating terrain kernel: %w", err)
	}
	defer kernel.Release()

	seeds := [4]int64{seed + 500, seed + 200, seed + 400, seed + 600}
	permSimplex := newPermTable(seed + 100)
	permPerlin := newPermTable(seed + 300)

	seedsBuf, err := context.CreateEmptyBuffer(cl.MemReadOnly, len(seeds)*int(unsafe.Sizeof(int64(0))))
	if err != nil {
		return fmt.Errorf("allocating seed buffer: %w", err)
	}
	defer seedsBuf.Release()
	simplexBuf, err := context.CreateEmptyBuffer(cl.MemReadOnly, len(permSimplex))
	if err != nil {
		return fmt.Errorf("allocating simplex table buffer: %w", err)
	}
	defer simplexBuf.Release()
	perlinBuf, err := context.CreateEmptyBuffer(cl.MemReadOnly, len(permPerlin))
	if err != nil {
		return fmt.Errorf("allocating perlin table buffer: %w", err)
	}
	defer perlinBuf.Release()
	kindsBuf, err := context.CreateEmptyBuffer(cl.MemWriteOnly, len(c.tiles))
	if err != nil {
		return fmt.Errorf("allocating kind buffer: %w", err)
	}
	defer kindsBuf.Release()

	if _, err := queue.EnqueueWriteBuffer(seedsBuf, false, 0,
		len(seeds)*int(unsafe.Sizeof(int64(0))), unsafe.Pointer(&seeds[0]), nil); err != nil {
		return fmt.Errorf("writing seed buffer: %w", err)
	}
	if _, err := queue.EnqueueWriteBuffer(simplexBuf, false, 0,
		len(permSimplex), unsafe.Pointer(&permSimplex[0]), nil); err != nil {
		return fmt.Errorf("writing simplex table: %w", err)
	}
	if _, err := queue.EnqueueWriteBuffer(perlinBuf, false, 0,
		len(permPerlin), unsafe.Pointer(&permPerlin[0]), nil); err != nil {
		return fmt.Errorf("writing perlin table: %w", err)
	}

	if err := kernel.SetArgs(
		int32(c.dim[0]),
		float32(noiseScale),
		float32(noiseWeightScale),
		float32(caveThresholdBase),
		seedsBuf,
		simplexBuf,
		perlinBuf,
		kindsBuf,
	); err != nil {
		return fmt.Errorf("setting terrain kernel arguments: %w", err)
	}

	if _, err := queue.EnqueueNDRangeKernel(kernel, nil, []int{len(c.tiles)}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing terrain kernel: %w", err)
	}
	kinds := make([]byte, len(c.tiles))
	if _, err := queue.EnqueueReadBuffer(kindsBuf, true, 0, len(kinds), unsafe.Pointer(&kinds[0]), nil); err != nil {
		return fmt.Errorf("reading kind buffer: %w", err)
	}
	return applyFieldKinds(c, kinds)
}

// pickOpenCLDevice finds a usable device, preferring GPUs over CPU
// implementations.
func pickOpenCLDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	for _, deviceType := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(deviceType)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}
