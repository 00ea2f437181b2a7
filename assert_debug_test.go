//go:build impulsedebug

package impulse_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/impulse"
)

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: no panic", name)
		}
	}()
	f()
}

func TestDebugAssertions(t *testing.T) {
	floor := mgl64.Vec3{0, -1, 0}
	contact := impulse.NewContact(1, mgl64.Vec3{}, mgl64.Vec3{}, floor, 0)

	expectPanic(t, "empty manifold", func() {
		s := newBoxOnGround(1)
		s.manager.Begin()
		s.manager.Add(impulse.Manifold{BodyA: s.box, BodyB: s.ground})
	})

	expectPanic(t, "unknown body", func() {
		s := newBoxOnGround(1)
		s.manager.Begin()
		s.manager.Add(impulse.NewManifold(s.box, 42, contact))
	})

	expectPanic(t, "two kinematic bodies", func() {
		pool := impulse.NewBodyPool()
		a := pool.Add(impulse.NewKinematicBody())
		b := pool.Add(impulse.NewStaticBody())
		manager := impulse.NewContactManager(pool, 1)
		manager.Begin()
		manager.Add(impulse.NewManifold(a, b, contact))
		impulse.Run(manager, invDt)
	})

	expectPanic(t, "zero effective mass", func() {
		pool := impulse.NewBodyPool()
		a := pool.Add(impulse.NewRigidBody(0, mgl64.Mat3{}))
		b := pool.Add(impulse.NewStaticBody())
		manager := impulse.NewContactManager(pool, 1)
		manager.Begin()
		manager.Add(impulse.NewManifold(a, b, contact))
		impulse.Run(manager, invDt)
	})
}

func TestDebugAssertionsAcceptValidInput(t *testing.T) {
	s := newBoxOnGround(1)
	s.step(newSolver(t, impulse.DefaultConfig()), s.manifold(0.01, 0.5, 0))
}
