package physics

import "sync"

// Handle is a stable reference to a registered body. The zero Handle is never valid,
// and a handle goes stale once its body is removed even if the slot is reused.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Valid reports whether h could refer to a body. It does not check the registry.
func (h Handle) Valid() bool {
	return h.Generation != 0
}

type slot struct {
	body       *Body
	generation uint32
}

type pendingOp struct {
	body     *Body
	register bool
}

// Registry is an ordered set of live bodies backed by a slot pool. Membership is
// unique; insertion order only fixes iteration order.
//
// Register, Unregister and Remove must run on the tick goroutine. Other goroutines
// use Enqueue, and the queue is applied by Flush at the next tick boundary.
type Registry struct {
	slots []slot
	free  []uint32
	order []Handle
	index map[*Body]Handle

	mu      sync.Mutex
	pending []pendingOp
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[*Body]Handle)}
}

// Register adds b if it is not already present and returns its handle.
// Registering the same body twice returns the original handle. Bodies that did not
// come from NewBody (no transform, or mass not above zero) are refused with the zero Handle.
func (r *Registry) Register(b *Body) Handle {
	if !b.valid() {
		return Handle{}
	}
	if h, ok := r.index[b]; ok {
		return h
	}
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}
	s := &r.slots[idx]
	s.generation++
	s.body = b
	h := Handle{Index: idx, Generation: s.generation}
	r.order = append(r.order, h)
	r.index[b] = h
	return h
}

// Unregister removes b if present. It reports whether anything was removed.
func (r *Registry) Unregister(b *Body) bool {
	h, ok := r.index[b]
	if !ok {
		return false
	}
	return r.Remove(h)
}

// Remove removes the body behind h. Stale or unknown handles are ignored.
func (r *Registry) Remove(h Handle) bool {
	b, ok := r.Get(h)
	if !ok {
		return false
	}
	r.slots[h.Index].body = nil
	r.free = append(r.free, h.Index)
	delete(r.index, b)
	for i, o := range r.order {
		if o == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	b.contacts = 0
	return true
}

// Get resolves a handle.
func (r *Registry) Get(h Handle) (*Body, bool) {
	if !h.Valid() || int(h.Index) >= len(r.slots) {
		return nil, false
	}
	s := r.slots[h.Index]
	if s.generation != h.Generation || s.body == nil {
		return nil, false
	}
	return s.body, true
}

// Handle returns the handle of a registered body.
func (r *Registry) Handle(b *Body) (Handle, bool) {
	h, ok := r.index[b]
	return h, ok
}

// Contains reports whether b is registered.
func (r *Registry) Contains(b *Body) bool {
	_, ok := r.index[b]
	return ok
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Handles returns the registered handles in insertion order.
func (r *Registry) Handles() []Handle {
	out := make([]Handle, len(r.order))
	copy(out, r.order)
	return out
}

// Bodies returns the registered bodies in insertion order.
func (r *Registry) Bodies() []*Body {
	out := make([]*Body, len(r.order))
	for i, h := range r.order {
		out[i] = r.slots[h.Index].body
	}
	return out
}

// EnqueueRegister queues b for registration at the next Flush. Safe from any goroutine.
func (r *Registry) EnqueueRegister(b *Body) {
	r.enqueue(pendingOp{body: b, register: true})
}

// EnqueueUnregister queues b for removal at the next Flush. Safe from any goroutine.
func (r *Registry) EnqueueUnregister(b *Body) {
	r.enqueue(pendingOp{body: b})
}

func (r *Registry) enqueue(op pendingOp) {
	if op.body == nil {
		return
	}
	r.mu.Lock()
	r.pending = append(r.pending, op)
	r.mu.Unlock()
}

// Flush applies queued registrations in the order they were enqueued and returns
// how many were applied.
func (r *Registry) Flush() int {
	r.mu.Lock()
	ops := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, op := range ops {
		if op.register {
			r.Register(op.body)
		} else {
			r.Unregister(op.body)
		}
	}
	return len(ops)
}
