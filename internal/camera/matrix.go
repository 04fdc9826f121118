package camera

import "math"

// Mat4 is a column-vector 4x4 transform matrix in row-major storage.
// Only the primitives the camera composes are provided.
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

// RotationX builds a rotation about the X axis, angle in degrees.
func RotationX(deg float64) Mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY builds a rotation about the Y axis, angle in degrees.
func RotationY(deg float64) Mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Translation builds a translation matrix.
func Translation(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Mul returns m × n (n applied first).
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * n[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Apply transforms the point (x, y, z).
func (m Mat4) Apply(x, y, z float64) (float64, float64, float64) {
	ox := m[0]*x + m[1]*y + m[2]*z + m[3]
	oy := m[4]*x + m[5]*y + m[6]*z + m[7]
	oz := m[8]*x + m[9]*y + m[10]*z + m[11]
	return ox, oy, oz
}
