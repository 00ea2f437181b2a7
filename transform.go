package impulse

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents a 3D rigid transformation: a rotation followed by a translation.
//
// The rotation is kept as a unit quaternion. Points are transformed as
//
//	p' = R * p + t
//
// Where:
//   - R: Rotation matrix derived from the quaternion.
//   - t: Translation, the world-space position of the body's center of mass.
//
// Transform carries no scale or shear, so its inverse is always another rigid
// transformation and directions keep their length.
type Transform struct {
	position mgl64.Vec3
	rotation mgl64.Quat
}

// NewTransformIdentity creates and returns an identity transformation.
func NewTransformIdentity() Transform {
	return Transform{rotation: mgl64.QuatIdent()}
}

// NewTransformRigid creates a new rigid transformation that combines
// translation and rotation.
//
// Parameters:
//   - translate: The translation component.
//   - rotation: The orientation. It is normalized before use.
func NewTransformRigid(translate mgl64.Vec3, rotation mgl64.Quat) Transform {
	return Transform{position: translate, rotation: rotation.Normalize()}
}

// Position returns the translation component.
func (t Transform) Position() mgl64.Vec3 {
	return t.position
}

// Rotation returns the orientation quaternion.
func (t Transform) Rotation() mgl64.Quat {
	return t.rotation
}

// Matrix returns the 3x3 rotation matrix R.
func (t Transform) Matrix() mgl64.Mat3 {
	return t.rotation.Mat4().Mat3()
}

// Inverse returns the inverse rigid transformation.
func (t Transform) Inverse() Transform {
	inv := t.rotation.Conjugate()
	return Transform{position: inv.Rotate(t.position.Mul(-1)), rotation: inv}
}

// Mult composes two transformations; the result applies t2 first, then t.
func (t Transform) Mult(t2 Transform) Transform {
	return Transform{
		position: t.Apply(t2.position),
		rotation: t.rotation.Mul(t2.rotation).Normalize(),
	}
}

// Apply transforms a point.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.rotation.Rotate(p).Add(t.position)
}

// ApplyVector transforms a direction, ignoring translation.
func (t Transform) ApplyVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.rotation.Rotate(v)
}

// WorldInertia rotates a body-space inertia tensor (or its inverse) into world space:
//
//	I_world = R * I_local * R^T
func (t Transform) WorldInertia(local mgl64.Mat3) mgl64.Mat3 {
	r := t.Matrix()
	return r.Mul3(local).Mul3(r.Transpose())
}
