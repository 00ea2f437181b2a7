package impulse

// BodyHandle is a stable index of a body inside a BodyPool.
type BodyHandle int

// InvalidBody is the handle value that never refers to a body.
const InvalidBody BodyHandle = -1

// BodyPool owns the rigid bodies referenced by contact manifolds.
//
// Manifolds hold handles instead of pointers; a handle stays valid until the body is removed,
// after which its slot may be reused by a later Add.
type BodyPool struct {
	bodies []*RigidBody
	free   []BodyHandle
}

// NewBodyPool returns an empty pool.
func NewBodyPool() *BodyPool {
	return &BodyPool{}
}

// Add inserts body into the pool and returns its handle.
func (p *BodyPool) Add(body *RigidBody) BodyHandle {
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		p.bodies[h] = body
		return h
	}
	p.bodies = append(p.bodies, body)
	return BodyHandle(len(p.bodies) - 1)
}

// Remove takes the body out of the pool. Removing an unknown handle does nothing.
func (p *BodyPool) Remove(h BodyHandle) {
	if !p.Contains(h) {
		return
	}
	p.bodies[h] = nil
	p.free = append(p.free, h)
}

// Contains reports whether h refers to a live body.
func (p *BodyPool) Contains(h BodyHandle) bool {
	return h >= 0 && int(h) < len(p.bodies) && p.bodies[h] != nil
}

// Get returns the body for h, or nil if h is not live.
func (p *BodyPool) Get(h BodyHandle) *RigidBody {
	if !p.Contains(h) {
		return nil
	}
	return p.bodies[h]
}

// Len returns the number of live bodies.
func (p *BodyPool) Len() int {
	return len(p.bodies) - len(p.free)
}

// Each calls f for each live body in handle order.
func (p *BodyPool) Each(f func(h BodyHandle, body *RigidBody)) {
	for i, body := range p.bodies {
		if body != nil {
			f(BodyHandle(i), body)
		}
	}
}

// EachDynamicBody calls f for each live body the solver may move.
func (p *BodyPool) EachDynamicBody(f func(h BodyHandle, body *RigidBody)) {
	p.Each(func(h BodyHandle, body *RigidBody) {
		if !body.IsKinematic() {
			f(h, body)
		}
	})
}
