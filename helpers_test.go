package impulse_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/impulse"
)

const (
	dt    = 1.0 / 60.0
	invDt = 60.0
)

// boxInertia returns the body-space inertia of a solid box with the given half extents.
func boxInertia(mass float64, h mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Diag3(mgl64.Vec3{
		mass / 3 * (h.Y()*h.Y() + h.Z()*h.Z()),
		mass / 3 * (h.X()*h.X() + h.Z()*h.Z()),
		mass / 3 * (h.X()*h.X() + h.Y()*h.Y()),
	})
}

// sphereInertia returns the body-space inertia of a solid sphere.
func sphereInertia(mass, radius float64) mgl64.Mat3 {
	i := 0.4 * mass * radius * radius
	return mgl64.Diag3(mgl64.Vec3{i, i, i})
}

func newBox(mass float64, location mgl64.Vec3) *impulse.RigidBody {
	body := impulse.NewRigidBody(mass, boxInertia(mass, mgl64.Vec3{0.5, 0.5, 0.5}))
	body.SetLocation(location)
	return body
}

// boxOnGround is a unit box resting on a static ground, touching it at its four bottom corners.
type boxOnGround struct {
	pool    *impulse.BodyPool
	manager *impulse.ContactManager
	box     impulse.BodyHandle
	ground  impulse.BodyHandle
}

func newBoxOnGround(persistence uint) *boxOnGround {
	s := &boxOnGround{pool: impulse.NewBodyPool()}
	s.box = s.pool.Add(newBox(1, mgl64.Vec3{0, 0.5, 0}))
	s.ground = s.pool.Add(impulse.NewStaticBody())
	s.manager = impulse.NewContactManager(s.pool, persistence)
	return s
}

// manifold returns the box/ground manifold with the box in slot A. The normal points down,
// from the box toward the ground.
func (s *boxOnGround) manifold(penetration, friction, restitution float64) impulse.Manifold {
	m := impulse.Manifold{BodyA: s.box, BodyB: s.ground}
	corners := []mgl64.Vec3{{-0.5, 0, -0.5}, {0.5, 0, -0.5}, {0.5, 0, 0.5}, {-0.5, 0, 0.5}}
	for i, p := range corners {
		id := impulse.NewContactID(s.box, s.ground, uint32(i))
		con := impulse.NewContact(id, p, p.Add(mgl64.Vec3{0, penetration, 0}), mgl64.Vec3{0, -1, 0}, penetration)
		con.Friction = friction
		con.Restitution = restitution
		m.PushContact(con)
	}
	return m
}

func (s *boxOnGround) step(solver *impulse.VelocitySolver, m impulse.Manifold) {
	s.manager.Begin()
	s.manager.Add(m)
	solver.Run(s.manager, invDt)
	s.manager.Commit()
}

func (s *boxOnGround) boxBody() *impulse.RigidBody {
	return s.pool.Get(s.box)
}

func newSolver(t *testing.T, cfg impulse.Config) *impulse.VelocitySolver {
	t.Helper()
	solver, err := impulse.NewVelocitySolver(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return solver
}

func near(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// nearVec and nearMat compare componentwise with an absolute tolerance. mgl64's
// ApproxEqual helpers are relative and fail against exact zeros.
func nearVec(a, b mgl64.Vec3, tolerance float64) bool {
	for i := range a {
		if !near(a[i], b[i], tolerance) {
			return false
		}
	}
	return true
}

func nearMat(a, b mgl64.Mat3, tolerance float64) bool {
	for i := range a {
		if !near(a[i], b[i], tolerance) {
			return false
		}
	}
	return true
}

func checkContactBounds(t *testing.T, m *impulse.Manifold) {
	t.Helper()
	const tolerance = 1e-9
	for i, con := range m.ContactSlice() {
		n := con.Lambda(impulse.AxisNormal)
		if n < 0 {
			t.Errorf("contact %d: negative normal impulse %v", i, n)
		}
		limit := n*con.Friction + tolerance
		if tl := con.Lambda(impulse.AxisTangent); math.Abs(tl) > limit {
			t.Errorf("contact %d: tangent impulse %v outside ±%v", i, tl, limit)
		}
		if bl := con.Lambda(impulse.AxisBitangent); math.Abs(bl) > limit {
			t.Errorf("contact %d: bitangent impulse %v outside ±%v", i, bl, limit)
		}
	}
}
