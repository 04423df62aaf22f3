// Package scene composes one frame of the reference scene: a horizon, a
// ground grid of lines, a field of ground points that fade with distance and
// a unit wireframe cube.
//
// The scene is fixed; only the camera changes between frames, so every frame
// is recomputed from scratch.
package scene

import "fbscene/gfx/vecmath"

// Segment is one 3D line of the scene.
type Segment struct {
	A, B vecmath.Vec3
}

// ReferenceGrid returns the lines of a square grid on the plane y = plane,
// spanning [-half, half] on X and Z with lines every step units. Lines
// parallel to Z come first, then lines parallel to X.
func ReferenceGrid(half, step, plane float64) []Segment {
	if step <= 0 || half < 0 {
		return nil
	}
	n := int(2*half/step) + 1
	segs := make([]Segment, 0, 2*n)
	for i := 0; i < n; i++ {
		x := -half + float64(i)*step
		segs = append(segs, Segment{vecmath.V3(x, plane, -half), vecmath.V3(x, plane, half)})
	}
	for i := 0; i < n; i++ {
		z := -half + float64(i)*step
		segs = append(segs, Segment{vecmath.V3(-half, plane, z), vecmath.V3(half, plane, z)})
	}
	return segs
}

// Cube returns the 12 edges of an axis-aligned cube whose lowest corner is
// min.
func Cube(min vecmath.Vec3, size float64) []Segment {
	var v [8]vecmath.Vec3
	for i := range v {
		v[i] = min.Add(vecmath.V3(
			float64(i&1)*size,
			float64(i>>2&1)*size,
			float64(i>>1&1)*size,
		))
	}
	// Corner index bits: 1 = +X, 2 = +Z, 4 = +Y.
	edges := [12][2]int{
		{0, 1}, {0, 2}, {1, 3}, {2, 3}, // bottom
		{4, 5}, {4, 6}, {5, 7}, {6, 7}, // top
		{0, 4}, {2, 6}, {1, 5}, {3, 7}, // uprights
	}
	segs := make([]Segment, 0, len(edges))
	for _, e := range edges {
		segs = append(segs, Segment{v[e[0]], v[e[1]]})
	}
	return segs
}

// FastDist approximates the Euclidean length of (dx, dz) without a square
// root, as 123/128 of the larger axis plus 51/128 of the smaller one. The
// error stays within about 4%.
func FastDist(dx, dz int) int {
	ax, az := absInt(dx), absInt(dz)
	lo, hi := min(ax, az), max(ax, az)
	return ((hi << 8) + (hi << 3) - (hi << 4) - (hi << 1) +
		(lo << 7) - (lo << 5) + (lo << 3) - (lo << 1)) >> 8
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
