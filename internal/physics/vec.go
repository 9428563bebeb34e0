package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is the vector type used throughout the simulation.
type Vec2 = mgl64.Vec2

// normalize returns the unit vector of v, or the zero vector when v is zero.
// mgl64's Normalize divides by zero on an empty vector.
func normalize(v Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Mul(1 / l)
}

// cross2 is the z component of the 3D cross product of a and b.
func cross2(a, b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// crossScalar returns w x r for an angular velocity w about the z axis.
func crossScalar(w float64, r Vec2) Vec2 {
	return Vec2{-w * r[1], w * r[0]}
}

func isZero(v Vec2) bool {
	return v[0] == 0 && v[1] == 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
