package impulse

import (
	"github.com/pkg/errors"
)

// VelocitySolver resolves the contacts of a ContactManager with sequential impulses.
//
// The solver keeps no state between runs; the accumulated impulses live in the contacts.
type VelocitySolver struct {
	config Config

	// Observer, when set, receives diagnostics of every run.
	Observer Observer
}

var defaultSolver = VelocitySolver{config: DefaultConfig()}

// NewVelocitySolver returns a solver using cfg, or the validation error of cfg.
func NewVelocitySolver(cfg Config) (*VelocitySolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "new velocity solver")
	}
	return &VelocitySolver{config: cfg}, nil
}

// Config returns the configuration of the solver.
func (s *VelocitySolver) Config() Config {
	return s.config
}

// Run solves the contacts of one step with the default configuration.
func Run(manager *ContactManager, fixedTimeStepInverse float64) {
	defaultSolver.Run(manager, fixedTimeStepInverse)
}

// Run solves the contacts of one fixed step.
//
// Every manifold is canonicalized and prepared, the previous impulses are applied, then each
// iteration resolves the normal axes of all manifolds before the friction axes of all
// manifolds. Body velocities and contact impulses are updated in place; manifolds are visited
// in list order, so two runs on identical input give identical output.
//
// The caller must hold exclusive access to the manager and its bodies for the duration.
func (s *VelocitySolver) Run(manager *ContactManager, fixedTimeStepInverse float64) {
	manifolds := manager.Manifolds()
	if len(manifolds) == 0 {
		return
	}
	bodies := manager.Bodies()
	observer := s.Observer

	params := stepParams{
		stabilizationFactor: -s.config.StabilizationScale * fixedTimeStepInverse,
		penetrationSlop:     s.config.PenetrationSlop,
		restitutionSlop:     s.config.RestitutionSlop,
	}

	// Canonicalize and prestep the manifolds.
	for i := range manifolds {
		m := &manifolds[i]
		*m = m.Canonical(bodies)
		a, b := bodies.Get(m.BodyA), bodies.Get(m.BodyB)
		if debugChecks {
			assertf(a != nil && b != nil, "manifold references unknown body %d/%d", m.BodyA, m.BodyB)
			assertf(m.Count > 0 && m.Count <= MaxContactsPerManifold, "manifold contact count %d out of range", m.Count)
			assertf(!a.IsKinematic(), "manifold between two kinematic bodies %d/%d", m.BodyA, m.BodyB)
		}
		if !s.config.WarmStarting {
			for j := 0; j < m.Count; j++ {
				m.Contacts[j].ResetLambdas()
			}
		}
		m.prepare(a, b, &params)
		if observer != nil {
			observer.ManifoldPrepared(m)
		}
	}

	// Apply cached impulses
	if s.config.WarmStarting {
		for i := range manifolds {
			m := &manifolds[i]
			m.warmStart(bodies.Get(m.BodyA), bodies.Get(m.BodyB))
		}
	}

	// Run the impulse solver.
	for it := 0; it < s.config.Iterations; it++ {
		var normal, friction float64
		for i := range manifolds {
			m := &manifolds[i]
			normal += m.solveNormal(bodies.Get(m.BodyA), bodies.Get(m.BodyB))
		}
		for i := range manifolds {
			m := &manifolds[i]
			friction += m.solveFriction(bodies.Get(m.BodyA), bodies.Get(m.BodyB))
		}
		if observer != nil {
			observer.IterationDone(it, normal, friction)
		}
	}

	if observer != nil {
		for i := range manifolds {
			observer.ManifoldSolved(&manifolds[i])
		}
	}
}
