package impulse

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType for bodies; Dynamic, Kinematic or Static
type BodyType uint8

const (
	Dynamic   BodyType = 0
	Kinematic BodyType = 1
	Static    BodyType = 2
)

func (bt BodyType) String() string {
	switch bt {
	case Dynamic:
		return "Dynamic"
	case Kinematic:
		return "Kinematic"
	case Static:
		return "Static"
	}
	return fmt.Sprintf("BodyType(%d)", uint8(bt))
}

// RigidBody holds the physical state the contact solver reads and writes.
//
// Mass and inertia come from outside (shape data is not handled here). The world-space
// inverse inertia is kept in sync with the orientation by SetTransform and SetInertiaTensor;
// an external integrator that tracks orientation on its own may instead write it directly
// with SetInertiaTensorInverse.
type RigidBody struct {
	// UserData is an object that this body is associated with.
	UserData any

	bodyType                  BodyType
	mass                      float64    // Mass
	massInverse               float64    // Mass inverse
	inertiaTensorInverseLocal mgl64.Mat3 // Inverse inertia in body coordinates
	inertiaTensorInverse      mgl64.Mat3 // Inverse inertia in world coordinates
	transform                 Transform
	velocities                Vec6 // Linear and angular velocity
}

// String returns the body type and location.
func (body RigidBody) String() string {
	return fmt.Sprint(body.bodyType, " body at ", body.transform.position)
}

// NewRigidBody initializes a dynamic rigid body with the given mass and body-space inertia tensor.
//
// The body starts at the origin with identity orientation and zero velocity.
func NewRigidBody(mass float64, inertia mgl64.Mat3) *RigidBody {
	body := &RigidBody{transform: NewTransformIdentity()}
	body.SetMass(mass)
	body.SetInertiaTensor(inertia)
	return body
}

// NewStaticBody allocates and initializes a RigidBody, and set it as a static body.
func NewStaticBody() *RigidBody {
	body := &RigidBody{transform: NewTransformIdentity()}
	body.SetType(Static)
	return body
}

// NewKinematicBody allocates and initializes a RigidBody, and set it as a kinematic body.
func NewKinematicBody() *RigidBody {
	body := &RigidBody{transform: NewTransformIdentity()}
	body.SetType(Kinematic)
	return body
}

// Type returns the type of the body.
func (body *RigidBody) Type() BodyType {
	return body.bodyType
}

// SetType sets the type of the body.
//
// Kinematic and static bodies get infinite mass and inertia. A static body also loses its velocity.
// Switching back to Dynamic restores the mass and inertia set before.
func (body *RigidBody) SetType(bt BodyType) {
	body.bodyType = bt
	if bt == Dynamic {
		body.SetMass(body.mass)
		body.updateWorldInertia()
		return
	}
	body.massInverse = 0
	body.inertiaTensorInverse = mgl64.Mat3{}
	if bt == Static {
		body.velocities = Vec6{}
	}
}

// IsKinematic reports whether the solver must leave the velocity of this body untouched.
// Static bodies are kinematic bodies that do not move.
func (body *RigidBody) IsKinematic() bool {
	return body.bodyType != Dynamic
}

// Mass returns mass of the body
func (body *RigidBody) Mass() float64 {
	return body.mass
}

// SetMass sets mass of the body. A mass of zero or less means infinite mass.
func (body *RigidBody) SetMass(mass float64) {
	body.mass = mass
	if mass <= 0 || body.IsKinematic() {
		body.massInverse = 0
		return
	}
	body.massInverse = 1 / mass
}

// MassInverse returns the inverse mass, 0 for infinite mass.
func (body *RigidBody) MassInverse() float64 {
	return body.massInverse
}

// SetInertiaTensor sets the body-space inertia tensor and refreshes the world-space inverse.
//
// A singular tensor is treated as infinite inertia.
func (body *RigidBody) SetInertiaTensor(inertia mgl64.Mat3) {
	if inertia.Det() == 0 {
		body.inertiaTensorInverseLocal = mgl64.Mat3{}
	} else {
		body.inertiaTensorInverseLocal = inertia.Inv()
	}
	body.updateWorldInertia()
}

// InertiaTensorInverse returns the world-space inverse inertia tensor.
func (body *RigidBody) InertiaTensorInverse() mgl64.Mat3 {
	return body.inertiaTensorInverse
}

// SetInertiaTensorInverse overrides the world-space inverse inertia tensor.
//
// It is reset the next time the orientation or the body-space tensor changes.
func (body *RigidBody) SetInertiaTensorInverse(inverse mgl64.Mat3) {
	if body.IsKinematic() {
		return
	}
	body.inertiaTensorInverse = inverse
}

func (body *RigidBody) updateWorldInertia() {
	if body.IsKinematic() {
		body.inertiaTensorInverse = mgl64.Mat3{}
		return
	}
	body.inertiaTensorInverse = body.transform.WorldInertia(body.inertiaTensorInverseLocal)
}

// Location returns the world-space center of mass.
func (body *RigidBody) Location() mgl64.Vec3 {
	return body.transform.position
}

// SetLocation moves the center of mass.
func (body *RigidBody) SetLocation(location mgl64.Vec3) {
	body.transform.position = location
}

// Orientation returns the orientation of the body.
func (body *RigidBody) Orientation() mgl64.Quat {
	return body.transform.rotation
}

// SetOrientation rotates the body and recomputes the world-space inverse inertia.
func (body *RigidBody) SetOrientation(q mgl64.Quat) {
	body.SetTransform(body.transform.position, q)
}

// SetTransform sets location and orientation at once.
func (body *RigidBody) SetTransform(location mgl64.Vec3, q mgl64.Quat) {
	body.transform = NewTransformRigid(location, q)
	body.updateWorldInertia()
}

// Transform returns the pose of the body.
func (body *RigidBody) Transform() Transform {
	return body.transform
}

// Velocities returns the combined linear and angular velocity.
func (body *RigidBody) Velocities() Vec6 {
	return body.velocities
}

// SetVelocities sets the combined linear and angular velocity.
func (body *RigidBody) SetVelocities(v Vec6) {
	body.velocities = v
}

// VelocityLinear returns the linear velocity of the center of mass.
func (body *RigidBody) VelocityLinear() mgl64.Vec3 {
	return body.velocities.Linear
}

// SetVelocityLinear sets the linear velocity of the body.
func (body *RigidBody) SetVelocityLinear(v mgl64.Vec3) {
	body.velocities.Linear = v
}

// VelocityAngular returns the angular velocity in world space.
func (body *RigidBody) VelocityAngular() mgl64.Vec3 {
	return body.velocities.Angular
}

// SetVelocityAngular sets the angular velocity of the body.
func (body *RigidBody) SetVelocityAngular(w mgl64.Vec3) {
	body.velocities.Angular = w
}

// VelocityAtWorldPoint returns the velocity of a point rigidly attached to the body.
func (body *RigidBody) VelocityAtWorldPoint(point mgl64.Vec3) mgl64.Vec3 {
	r := point.Sub(body.transform.position)
	return body.velocities.Linear.Add(body.velocities.Angular.Cross(r))
}

// ApplyImpulseAtWorldPoint applies an impulse at a world-space point. Kinematic bodies ignore it.
func (body *RigidBody) ApplyImpulseAtWorldPoint(impulse, point mgl64.Vec3) {
	if body.IsKinematic() {
		return
	}
	r := point.Sub(body.transform.position)
	body.velocities.Linear = body.velocities.Linear.Add(impulse.Mul(body.massInverse))
	body.velocities.Angular = body.velocities.Angular.Add(body.inertiaTensorInverse.Mul3x1(r.Cross(impulse)))
}

// KineticEnergy returns the kinetic energy of the body.
//
// Infinite mass bodies report 0.
func (body *RigidBody) KineticEnergy() float64 {
	if body.IsKinematic() {
		return 0
	}
	v := body.velocities.Linear
	w := body.velocities.Angular
	linear := 0.5 * body.mass * v.Dot(v)
	// 1/2 w^T I w, with I recovered from the world-space inverse.
	inverse := body.inertiaTensorInverse
	if inverse.Det() == 0 {
		return linear
	}
	return linear + 0.5*w.Dot(inverse.Inv().Mul3x1(w))
}

// applyVelocityDelta adds a solver velocity change. Kinematic bodies ignore it.
func (body *RigidBody) applyVelocityDelta(delta Vec6) {
	if body.IsKinematic() {
		return
	}
	body.velocities = body.velocities.Add(delta)
}
