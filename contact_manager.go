package impulse

// ContactManager owns the manifolds of the current step and the warm-start cache that
// carries accumulated impulses from one step to the next.
//
// A step goes:
//
//	manager.Begin()
//	manager.Add(manifold) // once per manifold from collision detection
//	solver.Run(manager, 1/dt)
//	manager.Commit()
//
// ContactManager is not safe for concurrent use.
type ContactManager struct {
	bodies    *BodyPool
	manifolds []Manifold

	// Number of steps an unrefreshed warm-start entry survives.
	persistence uint
	stamp       uint
	cache       map[ContactID]warmStartEntry
}

type warmStartEntry struct {
	lambdas [axisCount]float64
	stamp   uint
}

// NewContactManager returns a manager resolving body handles through bodies.
//
// Warm-start entries that are not refreshed for persistence steps are dropped; 0 behaves like 1,
// keeping only the contacts of the previous step.
func NewContactManager(bodies *BodyPool, persistence uint) *ContactManager {
	return &ContactManager{
		bodies:      bodies,
		persistence: persistence,
		cache:       make(map[ContactID]warmStartEntry),
	}
}

// Bodies returns the pool the manifold handles refer to.
func (cm *ContactManager) Bodies() *BodyPool {
	return cm.bodies
}

// Manifolds returns the manifolds of the current step. The slice aliases the manager's
// storage until the next Begin.
func (cm *ContactManager) Manifolds() []Manifold {
	return cm.manifolds
}

// Len returns the number of manifolds of the current step.
func (cm *ContactManager) Len() int {
	return len(cm.manifolds)
}

// Stamp returns the number of steps begun so far.
func (cm *ContactManager) Stamp() uint {
	return cm.stamp
}

// CachedContacts returns the number of contacts held for warm starting.
func (cm *ContactManager) CachedContacts() int {
	return len(cm.cache)
}

// Begin starts a new step and empties the manifold list. The backing storage is reused.
func (cm *ContactManager) Begin() {
	cm.stamp++
	clear(cm.manifolds)
	cm.manifolds = cm.manifolds[:0]
}

// Add appends a manifold for this step and seeds every contact's accumulated impulses from
// the warm-start cache by contact ID. Contacts with no cache entry start from zero.
func (cm *ContactManager) Add(m Manifold) {
	if debugChecks {
		assertf(m.Count > 0 && m.Count <= MaxContactsPerManifold, "manifold contact count %d out of range", m.Count)
		assertf(cm.bodies.Contains(m.BodyA) && cm.bodies.Contains(m.BodyB), "manifold references unknown body %d/%d", m.BodyA, m.BodyB)
	}
	for i := 0; i < m.Count; i++ {
		con := &m.Contacts[i]
		entry, ok := cm.cache[con.ID]
		if !ok {
			con.ResetLambdas()
			con.warmStarted = false
			continue
		}
		for k := range con.Axes {
			con.Axes[k].Lambda = entry.lambdas[k]
		}
		con.warmStarted = true
	}
	cm.manifolds = append(cm.manifolds, m)
}

// Commit stores the solved impulses of this step for the next one and throws away
// entries that were not refreshed within the persistence window.
func (cm *ContactManager) Commit() {
	for id, entry := range cm.cache {
		if cm.stamp-entry.stamp >= max(cm.persistence, 1) {
			delete(cm.cache, id)
		}
	}

	for i := range cm.manifolds {
		m := &cm.manifolds[i]
		for j := 0; j < m.Count; j++ {
			con := &m.Contacts[j]
			var entry warmStartEntry
			for k := range con.Axes {
				entry.lambdas[k] = con.Axes[k].Lambda
			}
			entry.stamp = cm.stamp
			cm.cache[con.ID] = entry
		}
	}
}

// Reset forgets all manifolds and warm-start data.
func (cm *ContactManager) Reset() {
	clear(cm.manifolds)
	cm.manifolds = cm.manifolds[:0]
	clear(cm.cache)
}
