package impulse

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Manifold holds the contact points between two bodies for one step.
//
// Bodies are referenced by handle into the BodyPool of the ContactManager. Before solving,
// the manifold is canonicalized so that only BodyB may be kinematic.
type Manifold struct {
	BodyA, BodyB BodyHandle
	Contacts     [MaxContactsPerManifold]Contact
	Count        int
	// Swapped is toggled each time the roles of the bodies are exchanged.
	Swapped bool
}

// NewManifold returns a manifold between a and b holding the given contacts.
// Contacts beyond MaxContactsPerManifold are dropped.
func NewManifold(a, b BodyHandle, contacts ...Contact) Manifold {
	m := Manifold{BodyA: a, BodyB: b}
	for _, con := range contacts {
		if !m.PushContact(con) {
			break
		}
	}
	return m
}

// PushContact appends a contact. It returns false when the manifold is full.
func (m *Manifold) PushContact(con Contact) bool {
	if m.Count >= MaxContactsPerManifold {
		return false
	}
	m.Contacts[m.Count] = con
	m.Count++
	return true
}

// ContactSlice returns the populated contacts. The slice aliases the manifold.
func (m *Manifold) ContactSlice() []Contact {
	return m.Contacts[:m.Count]
}

// Swap returns a copy of the manifold with the roles of the bodies exchanged.
//
// Normal and Tangent are negated so they point from the new A toward the new B, and the
// contact points are exchanged. Bitangent is left as is.
func (m Manifold) Swap() Manifold {
	m.BodyA, m.BodyB = m.BodyB, m.BodyA
	m.Swapped = !m.Swapped
	for i := 0; i < m.Count; i++ {
		con := &m.Contacts[i]
		con.Normal = con.Normal.Mul(-1)
		con.Tangent = con.Tangent.Mul(-1)
		con.PointA, con.PointB = con.PointB, con.PointA
	}
	return m
}

// Canonical returns the manifold with a kinematic body, if any, in slot B.
func (m Manifold) Canonical(bodies *BodyPool) Manifold {
	if a := bodies.Get(m.BodyA); a != nil && a.IsKinematic() {
		return m.Swap()
	}
	return m
}

// Bodies returns the colliding bodies in the order they were handed in by collision detection.
func (m *Manifold) Bodies() (a, b BodyHandle) {
	if m.Swapped {
		return m.BodyB, m.BodyA
	}
	return m.BodyA, m.BodyB
}

// TotalImpulse returns the world-space impulse applied to the second body handed in by
// collision detection, summed over all contacts.
func (m *Manifold) TotalImpulse() mgl64.Vec3 {
	var sum mgl64.Vec3
	for i := 0; i < m.Count; i++ {
		sum = sum.Add(m.Contacts[i].Impulse())
	}
	if m.Swapped {
		return sum.Mul(-1)
	}
	return sum
}

// stepParams are the constants of the Baumgarte term for one solver run.
type stepParams struct {
	stabilizationFactor float64
	penetrationSlop     float64
	restitutionSlop     float64
}

// prepare builds the Jacobians, effective masses and normal biases of every contact.
// b is read only when it is kinematic.
func (m *Manifold) prepare(a, b *RigidBody, p *stepParams) {
	single := b.IsKinematic()
	for i := 0; i < m.Count; i++ {
		con := &m.Contacts[i]
		rA := con.PointA.Sub(a.Location())
		rB := con.PointB.Sub(b.Location())

		axes := [axisCount]mgl64.Vec3{con.Normal, con.Tangent, con.Bitangent}
		for k := range axes {
			d := &con.Axes[k]
			if single {
				d.prepareSingle(axes[k], rA, rB, a)
			} else {
				d.preparePair(axes[k], rA, rB, a, b)
			}
			d.Bias = 0
			d.Clip = ClipFrictionCone
		}

		normal := &con.Axes[AxisNormal]
		normal.Clip = ClipNonNegative
		normal.Bias = baumgarteTerm(con, a, b, rA, rB, p)
	}
}

func jacobianRows(axis, rA, rB mgl64.Vec3) (j0, j1 Vec6) {
	crossA := axis.Cross(rA)
	crossB := rB.Cross(axis)
	return Vec6{axis.Mul(-1), crossA}, Vec6{axis, crossB}
}

func (d *VelocitySolverData) preparePair(axis, rA, rB mgl64.Vec3, a, b *RigidBody) {
	j0, j1 := jacobianRows(axis, rA, rB)
	d.Jacobian = [2]Vec6{j0, j1}
	d.MassJacobian[0] = Vec6{j0.Linear.Mul(a.massInverse), a.inertiaTensorInverse.Mul3x1(j0.Angular)}
	d.MassJacobian[1] = Vec6{j1.Linear.Mul(b.massInverse), b.inertiaTensorInverse.Mul3x1(j1.Angular)}

	denom := j0.Dot(d.MassJacobian[0]) + j1.Dot(d.MassJacobian[1])
	if debugChecks {
		assertf(denom > effectiveMassEpsilon, "degenerate effective mass denominator %g", denom)
	}
	d.EffectiveMass = -1 / denom
}

// prepareSingle keeps the Jacobian row of the kinematic body so its velocity is still read,
// but gives it no mass-scaled row: it never receives an impulse.
func (d *VelocitySolverData) prepareSingle(axis, rA, rB mgl64.Vec3, a *RigidBody) {
	j0, j1 := jacobianRows(axis, rA, rB)
	d.Jacobian = [2]Vec6{j0, j1}
	d.MassJacobian[0] = Vec6{j0.Linear.Mul(a.massInverse), a.inertiaTensorInverse.Mul3x1(j0.Angular)}
	d.MassJacobian[1] = Vec6{}

	denom := j0.Dot(d.MassJacobian[0])
	if debugChecks {
		assertf(denom > effectiveMassEpsilon, "degenerate effective mass denominator %g", denom)
	}
	d.EffectiveMass = -1 / denom
}

// baumgarteTerm returns the normal bias: a push proportional to the penetration beyond the slop,
// plus the restitution response to an approach speed beyond the slop. Both terms are <= 0 and
// drive the relative normal velocity toward separation.
func baumgarteTerm(con *Contact, a, b *RigidBody, rA, rB mgl64.Vec3, p *stepParams) float64 {
	va := a.velocities.Linear.Add(a.velocities.Angular.Cross(rA))
	vb := b.velocities.Linear.Add(b.velocities.Angular.Cross(rB))
	approach := -vb.Sub(va).Dot(con.Normal)

	return p.stabilizationFactor*max(con.Penetration-p.penetrationSlop, 0) -
		con.Restitution*max(approach-p.restitutionSlop, 0)
}

// warmStart applies the impulses accumulated in the previous step.
func (m *Manifold) warmStart(a, b *RigidBody) {
	for i := 0; i < m.Count; i++ {
		con := &m.Contacts[i]
		for k := range con.Axes {
			d := &con.Axes[k]
			if d.Lambda == 0 {
				continue
			}
			a.applyVelocityDelta(d.MassJacobian[0].Scale(d.Lambda))
			b.applyVelocityDelta(d.MassJacobian[1].Scale(d.Lambda))
		}
	}
}

// solveNormal runs one pass over the normal axes. It returns the sum of the absolute
// impulses applied.
func (m *Manifold) solveNormal(a, b *RigidBody) float64 {
	var total float64
	single := b.IsKinematic()
	for i := 0; i < m.Count; i++ {
		con := &m.Contacts[i]
		total += abs(con.solveAxis(AxisNormal, a, b, single))
	}
	return total
}

// solveFriction runs one pass over the tangent and bitangent axes, bounded by the
// current normal impulses.
func (m *Manifold) solveFriction(a, b *RigidBody) float64 {
	var total float64
	single := b.IsKinematic()
	for i := 0; i < m.Count; i++ {
		con := &m.Contacts[i]
		total += abs(con.solveAxis(AxisTangent, a, b, single))
		total += abs(con.solveAxis(AxisBitangent, a, b, single))
	}
	return total
}

func (con *Contact) solveAxis(axis Axis, a, b *RigidBody, single bool) float64 {
	d := &con.Axes[axis]
	if single {
		return d.solveSingle(con, a, b)
	}
	return d.solvePair(con, a, b)
}

func (d *VelocitySolverData) solvePair(con *Contact, a, b *RigidBody) float64 {
	va := a.velocities
	vb := b.velocities

	delta := d.EffectiveMass * (d.Jacobian[0].Dot(va) + d.Jacobian[1].Dot(vb) + d.Bias)
	lambda := d.Clip.clip(d.Lambda+delta, con)
	applied := lambda - d.Lambda

	a.velocities = va.Add(d.MassJacobian[0].Scale(applied))
	b.velocities = vb.Add(d.MassJacobian[1].Scale(applied))
	d.Lambda = lambda
	return applied
}

func (d *VelocitySolverData) solveSingle(con *Contact, a, b *RigidBody) float64 {
	va := a.velocities

	delta := d.EffectiveMass * (d.Jacobian[0].Dot(va) + d.Jacobian[1].Dot(b.velocities) + d.Bias)
	lambda := d.Clip.clip(d.Lambda+delta, con)
	applied := lambda - d.Lambda

	a.velocities = va.Add(d.MassJacobian[0].Scale(applied))
	d.Lambda = lambda
	return applied
}
