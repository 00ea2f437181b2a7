package impulse

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/vec"
)

// Axis indexes the three solver blocks of a contact.
type Axis int

const (
	AxisNormal Axis = iota
	AxisTangent
	AxisBitangent
	axisCount
)

func (a Axis) String() string {
	switch a {
	case AxisNormal:
		return "normal"
	case AxisTangent:
		return "tangent"
	case AxisBitangent:
		return "bitangent"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Clip selects how the accumulated impulse of an axis is clamped after each update.
type Clip uint8

const (
	// ClipNonNegative keeps the impulse >= 0, contacts only push.
	ClipNonNegative Clip = iota
	// ClipFrictionCone limits the impulse to ±friction*normalLambda of the owning contact.
	// Each tangential axis is limited on its own (box, not circular cone).
	ClipFrictionCone
)

func (c Clip) String() string {
	switch c {
	case ClipNonNegative:
		return "non-negative"
	case ClipFrictionCone:
		return "friction-cone"
	}
	return fmt.Sprintf("Clip(%d)", uint8(c))
}

// clip applies the strategy to lambda. con is the contact owning the axis.
func (c Clip) clip(lambda float64, con *Contact) float64 {
	switch c {
	case ClipFrictionCone:
		limit := con.Axes[AxisNormal].Lambda * con.Friction
		return clamp(lambda, -limit, limit)
	default:
		return max(0, lambda)
	}
}

// VelocitySolverData is the solver state of one contact axis.
//
// Everything except Lambda is rebuilt every step. Lambda is the accumulated impulse along
// the axis and is carried over to the next step to warm start the solver.
type VelocitySolverData struct {
	// Jacobian rows for body A and body B.
	Jacobian [2]Vec6
	// Jacobian rows pre-multiplied by the inverse mass and inverse inertia of each body.
	MassJacobian [2]Vec6
	// EffectiveMass is -1 / (J0·M0 + J1·M1).
	EffectiveMass float64
	Lambda        float64
	Bias          float64
	Clip          Clip
}

// Contact is one contact point of a manifold.
//
// The geometric fields are filled by collision detection and stay constant for the step.
// Normal points from body A toward body B; Penetration is positive when the bodies overlap.
type Contact struct {
	ID ContactID

	PointA, PointB             mgl64.Vec3
	Normal, Tangent, Bitangent mgl64.Vec3
	Penetration                float64
	Restitution, Friction      float64

	Axes [axisCount]VelocitySolverData

	warmStarted bool
}

// NewContact returns a contact whose tangent basis is derived from the normal.
//
// The bitangent is normal × tangent.
func NewContact(id ContactID, pointA, pointB, normal mgl64.Vec3, penetration float64) Contact {
	tangent, bitangent := TangentBasis(normal)
	return Contact{
		ID:          id,
		PointA:      pointA,
		PointB:      pointB,
		Normal:      normal,
		Tangent:     tangent,
		Bitangent:   bitangent,
		Penetration: penetration,
	}
}

// TangentBasis returns two unit vectors completing n to an orthonormal basis,
// with bitangent = n × tangent.
func TangentBasis(n mgl64.Vec3) (tangent, bitangent mgl64.Vec3) {
	// Cross with the world axis least aligned with n.
	axis := mgl64.Vec3{1, 0, 0}
	if abs(n.X()) > 0.57735 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	tangent = axis.Cross(n).Normalize()
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}

// Lambda returns the accumulated impulse along axis a.
func (c *Contact) Lambda(a Axis) float64 {
	return c.Axes[a].Lambda
}

// SetLambdas sets the accumulated impulses of the three axes, normal first.
func (c *Contact) SetLambdas(normal, tangent, bitangent float64) {
	c.Axes[AxisNormal].Lambda = normal
	c.Axes[AxisTangent].Lambda = tangent
	c.Axes[AxisBitangent].Lambda = bitangent
}

// ResetLambdas drops the accumulated impulses.
func (c *Contact) ResetLambdas() {
	c.SetLambdas(0, 0, 0)
}

// WarmStarted reports whether the lambdas of this contact were seeded from a previous step.
func (c *Contact) WarmStarted() bool {
	return c.warmStarted
}

// NormalImpulse returns the accumulated normal impulse.
func (c *Contact) NormalImpulse() float64 {
	return c.Axes[AxisNormal].Lambda
}

// FrictionImpulse returns the accumulated friction impulse in the tangent plane as
// (tangent, bitangent) components.
func (c *Contact) FrictionImpulse() vec.Vec2 {
	return vec.Vec2{X: c.Axes[AxisTangent].Lambda, Y: c.Axes[AxisBitangent].Lambda}
}

// Impulse returns the world-space impulse the contact applied to body B.
func (c *Contact) Impulse() mgl64.Vec3 {
	return c.Normal.Mul(c.Axes[AxisNormal].Lambda).
		Add(c.Tangent.Mul(c.Axes[AxisTangent].Lambda)).
		Add(c.Bitangent.Mul(c.Axes[AxisBitangent].Lambda))
}

// ContactID identifies the same contact point across steps.
//
// Collision detection derives it from the bodies and the touching features, so that a contact
// that persists keeps its ID and can be warm started.
type ContactID uint64

const hashCoef = 3344921057

func hashPair(a, b ContactID) ContactID {
	return a*hashCoef ^ b*hashCoef
}

// NewContactID combines two body handles and a feature index into a contact ID.
// Swapping a and b gives the same ID.
func NewContactID(a, b BodyHandle, feature uint32) ContactID {
	pair := hashPair(ContactID(a)+1, ContactID(b)+1)
	return hashPair(pair, ContactID(feature)+1)
}
