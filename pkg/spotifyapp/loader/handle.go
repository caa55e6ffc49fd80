package loader

import (
	"sort"
	"sync"

	"go.uber.org/atomic"
)

var handleSeq atomic.Uint64

// Handle is one reference to a resource request. All handles for a URL
// observe the same state. A handle must be released exactly once; further
// calls to Release are no-ops.
type Handle struct {
	l  *Loader // nil for handles issued after Close
	e  *entry
	id uint64

	mu       sync.Mutex
	subs     map[uint64]*subscription
	nextSub  uint64
	released atomic.Bool
}

type subscription struct {
	fn     func(State)
	active atomic.Bool
}

func newHandle(l *Loader, e *entry) *Handle {
	return &Handle{
		l:    l,
		e:    e,
		id:   handleSeq.Inc(),
		subs: make(map[uint64]*subscription),
	}
}

// URL returns the requested URL.
func (h *Handle) URL() string {
	return h.e.url
}

// State returns the current state of the request.
func (h *Handle) State() State {
	if h.l == nil {
		return h.e.state
	}
	h.l.mu.Lock()
	defer h.l.mu.Unlock()
	return h.e.state
}

// Subscribe registers fn to be called on the loader's Poster with every
// state transition after this call. The returned function stops delivery,
// including deliveries already queued.
func (h *Handle) Subscribe(fn func(State)) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	sub.active.Store(!h.released.Load())

	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = sub
	h.mu.Unlock()

	return func() {
		sub.active.Store(false)
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Retry fetches a failed resource again. It is the only way an errored
// request is retried. Returns false if the request is not in StatusError
// or its URL can never succeed.
func (h *Handle) Retry() bool {
	if h.l == nil || h.released.Load() {
		return false
	}
	return h.l.retry(h)
}

// Release drops this reference. When the last reference to a loading
// request goes away its fetch is cancelled; a cached success becomes
// eligible for eviction.
func (h *Handle) Release() {
	if !h.released.CompareAndSwap(false, true) {
		return
	}

	h.mu.Lock()
	for id, sub := range h.subs {
		sub.active.Store(false)
		delete(h.subs, id)
	}
	h.mu.Unlock()

	if h.l != nil {
		h.l.release(h)
	}
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	return h.released.Load()
}

func (h *Handle) observersLocked() []func(State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]uint64, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]func(State), 0, len(ids))
	for _, id := range ids {
		sub := h.subs[id]
		out = append(out, func(s State) {
			if sub.active.Load() {
				sub.fn(s)
			}
		})
	}
	return out
}

func sortedHandles(handles map[*Handle]struct{}) []*Handle {
	out := make([]*Handle, 0, len(handles))
	for h := range handles {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
