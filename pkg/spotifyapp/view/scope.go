package view

import "reflect"

// Scope is the per-instance handle a Component renders with. Hook state is
// stored in call order, so hooks must be called unconditionally and in the
// same order on every render.
type Scope struct {
	inst    *instance
	slots   []any
	cursor  int
	watches map[any]*watch
	pending []*effect
}

type watch struct {
	cancel func()
	seen   bool
}

type effect struct {
	dep     any
	ran     bool
	cleanup func()

	nextDep any
	next    func() func()
}

type valueSlot[T any] struct {
	value T
}

func newScope(inst *instance) *Scope {
	return &Scope{
		inst:    inst,
		watches: make(map[any]*watch),
	}
}

// Props returns the props of the component being rendered.
func (s *Scope) Props() any {
	return s.inst.comp.Props
}

// Key returns the identity key of the component instance.
func (s *Scope) Key() string {
	return s.inst.key
}

// Invalidate schedules a re-render of this instance.
func (s *Scope) Invalidate() {
	s.inst.tree.markDirty(s.inst)
}

// Effect runs fn after the first render and again after any render where dep
// differs from the previous dep (reflect.DeepEqual). The function fn returns
// is called before the next run and when the instance unmounts.
func (s *Scope) Effect(dep any, fn func() (cleanup func())) {
	e := s.slot(func() any { return &effect{} }).(*effect)
	if e.ran && reflect.DeepEqual(e.dep, dep) {
		return
	}
	e.nextDep = dep
	e.next = fn
	s.pending = append(s.pending, e)
}

// UseCell returns a Cell owned by this instance, created with init on the
// first render.
func UseCell[T comparable](s *Scope, init T) *Cell[T] {
	return s.slot(func() any { return NewCell(init) }).(*Cell[T])
}

// Remember returns a value created by init on the first render and kept for
// the lifetime of the instance.
func Remember[T any](s *Scope, init func() T) T {
	return s.slot(func() any { return &valueSlot[T]{value: init()} }).(*valueSlot[T]).value
}

// Watch reads c and re-renders the instance whenever c changes value.
// A cell not watched during a render stops triggering re-renders.
func Watch[T comparable](s *Scope, c *Cell[T]) T {
	if w, ok := s.watches[c]; ok {
		w.seen = true
	} else {
		inst := s.inst
		s.watches[c] = &watch{
			cancel: c.Subscribe(func(T) { inst.tree.markDirty(inst) }),
			seen:   true,
		}
	}
	return c.Get()
}

func (s *Scope) slot(create func() any) any {
	if s.cursor < len(s.slots) {
		v := s.slots[s.cursor]
		s.cursor++
		return v
	}
	v := create()
	s.slots = append(s.slots, v)
	s.cursor++
	return v
}

func (s *Scope) begin() {
	s.cursor = 0
	s.pending = nil
	for _, w := range s.watches {
		w.seen = false
	}
}

func (s *Scope) end() {
	for key, w := range s.watches {
		if !w.seen {
			w.cancel()
			delete(s.watches, key)
		}
	}
}

func (s *Scope) commitEffects() {
	pending := s.pending
	s.pending = nil
	for _, e := range pending {
		if e.cleanup != nil {
			e.cleanup()
			e.cleanup = nil
		}
		e.dep = e.nextDep
		e.ran = true
		if e.next != nil {
			e.cleanup = e.next()
		}
		e.next = nil
		e.nextDep = nil
	}
}

func (s *Scope) dispose() {
	for key, w := range s.watches {
		w.cancel()
		delete(s.watches, key)
	}
	for _, v := range s.slots {
		if e, ok := v.(*effect); ok && e.cleanup != nil {
			e.cleanup()
			e.cleanup = nil
		}
	}
	s.pending = nil
}
