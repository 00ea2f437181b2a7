package impulse

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec6 is a generalized 6-component vector made of a linear part and an angular part.
//
// It stores body velocities as well as the per-body rows of a contact Jacobian,
// so the velocity error of a constraint is simply jacobian.Dot(velocities).
type Vec6 struct {
	Linear  mgl64.Vec3
	Angular mgl64.Vec3
}

// NewVec6 returns a Vec6 from its linear and angular parts.
func NewVec6(linear, angular mgl64.Vec3) Vec6 {
	return Vec6{Linear: linear, Angular: angular}
}

func (v Vec6) String() string {
	return fmt.Sprintf("(%v, %v)", v.Linear, v.Angular)
}

// Dot returns the sum of the dot products of both parts.
func (v Vec6) Dot(other Vec6) float64 {
	return v.Linear.Dot(other.Linear) + v.Angular.Dot(other.Angular)
}

// Add returns the componentwise sum.
func (v Vec6) Add(other Vec6) Vec6 {
	return Vec6{v.Linear.Add(other.Linear), v.Angular.Add(other.Angular)}
}

// Scale multiplies both parts by s.
func (v Vec6) Scale(s float64) Vec6 {
	return Vec6{v.Linear.Mul(s), v.Angular.Mul(s)}
}

// IsZero reports whether every component is exactly zero.
func (v Vec6) IsZero() bool {
	return v == Vec6{}
}
