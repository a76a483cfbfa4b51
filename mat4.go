package choreo

import "math"

// Mat4 is a 4x4 transform matrix stored row-major: element (r, c) is at
// index r*4+c. It carries the scene's composed scale/rotation/translation
// and is applied to entity points by homogeneous multiplication.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scaling returns a uniform scale matrix with factor d on X, Y, and Z.
func Scaling(d float64) Mat4 {
	return Mat4{
		d, 0, 0, 0,
		0, d, 0, 0,
		0, 0, d, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a rotation about the Z axis by the given angle in radians.
func RotationZ(rad float64) Mat4 {
	sin, cos := math.Sincos(rad)
	return Mat4{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a translation matrix by (dx, dy, dz).
func Translation(dx, dy, dz float64) Mat4 {
	return Mat4{
		1, 0, 0, dx,
		0, 1, 0, dy,
		0, 0, 1, dz,
		0, 0, 0, 1,
	}
}

// Mul returns the matrix product m * n. Applying the result to a point is
// equivalent to applying n first, then m.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[r*4+k] * n[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// Apply transforms a point by the matrix using homogeneous coordinates,
// dividing by w. A zero w leaves the point unscaled by the divide.
func (m Mat4) Apply(p Vec3) Vec3 {
	x := m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z := m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w := m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	if w != 0 && w != 1 {
		inv := 1 / w
		x *= inv
		y *= inv
		z *= inv
	}
	return Vec3{X: x, Y: y, Z: z}
}

// lerpMat4 interpolates every element of a toward b by t. The endpoints
// return the snapshots themselves, so a fully evaluated tween reproduces
// its end value exactly rather than up to rounding.
func lerpMat4(a, b Mat4, t float64) Mat4 {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	var out Mat4
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}
