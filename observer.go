package impulse

import (
	"fmt"
)

// Observer receives diagnostics from a VelocitySolver run.
//
// A nil Observer costs nothing; the solver only gathers the numbers when one is set.
type Observer interface {
	// ManifoldPrepared is called once per manifold after canonicalization and preparation.
	ManifoldPrepared(m *Manifold)
	// IterationDone is called after each normal and friction pass with the sum of the
	// absolute impulses applied in it.
	IterationDone(iteration int, normalImpulse, frictionImpulse float64)
	// ManifoldSolved is called once per manifold after the last iteration.
	ManifoldSolved(m *Manifold)
}

// Stats is an Observer accumulating counters over any number of runs.
type Stats struct {
	Runs      int
	Manifolds int
	Swapped   int
	Contacts  int
	// SizeHistogram counts manifolds by contact count.
	SizeHistogram [MaxContactsPerManifold + 1]int
	// WarmStarted counts contacts whose impulses came from a previous step.
	WarmStarted int
	// NormalImpulse and FrictionImpulse sum the absolute impulses applied during iterations,
	// warm start excluded.
	NormalImpulse   float64
	FrictionImpulse float64
	// FrictionSaturated counts contacts whose friction reached the limit on some axis.
	FrictionSaturated int
	// OutsideCone counts contacts whose combined friction impulse lies outside the circular
	// cone, which the per-axis clamp allows.
	OutsideCone int
}

func (s *Stats) ManifoldPrepared(m *Manifold) {
	if m.Count >= 0 && m.Count <= MaxContactsPerManifold {
		s.SizeHistogram[m.Count]++
	}
	s.Manifolds++
	s.Contacts += m.Count
	if m.Swapped {
		s.Swapped++
	}
	for i := 0; i < m.Count; i++ {
		if m.Contacts[i].WarmStarted() {
			s.WarmStarted++
		}
	}
}

func (s *Stats) IterationDone(iteration int, normalImpulse, frictionImpulse float64) {
	if iteration == 0 {
		s.Runs++
	}
	s.NormalImpulse += normalImpulse
	s.FrictionImpulse += frictionImpulse
}

func (s *Stats) ManifoldSolved(m *Manifold) {
	const tolerance = 1e-9
	for i := 0; i < m.Count; i++ {
		con := &m.Contacts[i]
		limit := con.NormalImpulse() * con.Friction
		if limit <= 0 {
			continue
		}
		friction := con.FrictionImpulse()
		if abs(friction.X) >= limit-tolerance || abs(friction.Y) >= limit-tolerance {
			s.FrictionSaturated++
		}
		if friction.Mag() > limit+tolerance {
			s.OutsideCone++
		}
	}
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	*s = Stats{}
}

func (s *Stats) String() string {
	return fmt.Sprintf(`Runs: %d - Manifolds: %d (swapped %d) - Contacts: %d (warm %d)
Sizes: %v
Impulse: normal %.6g friction %.6g - Friction saturated: %d (outside cone %d)`,
		s.Runs, s.Manifolds, s.Swapped, s.Contacts, s.WarmStarted,
		s.SizeHistogram[1:],
		s.NormalImpulse, s.FrictionImpulse, s.FrictionSaturated, s.OutsideCone)
}
