package impulse

import (
	"math"
)

const (
	// MaxContactsPerManifold is the capacity of Manifold.Contacts.
	MaxContactsPerManifold int = 8

	// DefaultIterations is the number of normal/friction passes of the velocity solver.
	DefaultIterations int = 7

	// DefaultPenetrationSlop is the penetration depth left uncorrected by the Baumgarte term.
	DefaultPenetrationSlop float64 = 5e-4

	// DefaultRestitutionSlop is the approach speed below which restitution is ignored.
	DefaultRestitutionSlop float64 = 0.5

	// DefaultStabilizationScale is the fraction of the penetration removed per second
	// per unit of fixedTimeStepInverse.
	DefaultStabilizationScale float64 = 0.25

	// DefaultPersistence is the number of steps an unrefreshed warm-start entry is kept.
	DefaultPersistence uint = 3

	// effectiveMassEpsilon bounds the effective-mass denominator in debug builds.
	effectiveMassEpsilon float64 = 1e-12
)

func clamp(f, min, max float64) float64 {
	if f > min {
		return math.Min(f, max)
	} else {
		return math.Min(min, max)
	}
}

func abs(f float64) float64 {
	return math.Abs(f)
}
