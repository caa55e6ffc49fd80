package view

import (
	"reflect"
	"sort"
	"strconv"
	"sync"
)

// maxFlushPasses bounds how many times effects may re-dirty the tree within
// a single Flush.
const maxFlushPasses = 64

// Scheduler queues work onto the UI thread. ui.Loop implements it.
type Scheduler interface {
	Post(fn func()) bool
}

// Tree owns the component instances mounted from a root Component.
// All methods except the invalidation triggered by Cell.Set must be called
// from the UI thread.
type Tree struct {
	mu        sync.Mutex
	root      *instance
	sched     Scheduler
	dirty     map[*instance]struct{}
	scheduled bool
	unmounted bool
	renders   int

	listeners map[uint64]func()
	nextID    uint64
}

type instance struct {
	tree     *Tree
	parent   *instance
	key      string
	depth    int
	comp     Component
	scope    *Scope
	rendered Node
	children map[string]*instance
	mounted  bool
}

// Mount renders root and everything below it. When sched is nil, dirty
// instances are only re-rendered by explicit calls to Flush.
func Mount(root Component, sched Scheduler) *Tree {
	t := &Tree{
		sched:     sched,
		dirty:     make(map[*instance]struct{}),
		listeners: make(map[uint64]func()),
	}

	key := root.Key
	if key == "" {
		key = "root"
	}
	t.root = t.newInstance(nil, key, root)
	t.render(t.root)
	t.Flush()
	return t
}

// Flush re-renders every dirty instance, parents before children, until the
// tree is stable. Returns the number of instances rendered.
func (t *Tree) Flush() int {
	total := 0
	for pass := 0; pass < maxFlushPasses; pass++ {
		batch := t.dirtyBatch()
		if len(batch) == 0 {
			break
		}
		for _, inst := range batch {
			if inst.mounted && t.isDirty(inst) {
				total += t.render(inst)
			}
		}
	}

	if total > 0 {
		for _, fn := range t.listenerSnapshot() {
			fn()
		}
	}
	return total
}

// Resolve returns the current tree with every Component replaced by its
// rendered output.
func (t *Tree) Resolve() Node {
	t.mu.Lock()
	unmounted := t.unmounted
	t.mu.Unlock()

	if unmounted || t.root == nil {
		return nil
	}
	return t.root.resolve()
}

// OnFlush registers fn to run after every Flush that rendered something.
func (t *Tree) OnFlush(fn func()) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners, id)
	}
}

// Renders returns how many component renders the tree has performed.
func (t *Tree) Renders() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renders
}

// Dirty reports whether any instance is waiting to be re-rendered.
func (t *Tree) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.dirty) > 0
}

// Unmount tears down every instance, running effect cleanups.
func (t *Tree) Unmount() {
	t.mu.Lock()
	if t.unmounted {
		t.mu.Unlock()
		return
	}
	t.unmounted = true
	t.mu.Unlock()

	if t.root != nil {
		t.root.unmount()
	}
}

func (t *Tree) newInstance(parent *instance, key string, comp Component) *instance {
	inst := &instance{
		tree:     t,
		parent:   parent,
		key:      key,
		comp:     comp,
		children: make(map[string]*instance),
		mounted:  true,
	}
	if parent != nil {
		inst.depth = parent.depth + 1
	}
	inst.scope = newScope(inst)
	return inst
}

// render runs the component, reconciles its child components by key and
// commits effects. Returns the number of instances rendered.
func (t *Tree) render(inst *instance) int {
	t.clearDirty(inst)

	s := inst.scope
	s.begin()
	var out Node
	if inst.comp.Render != nil {
		out = inst.comp.Render(s)
	}
	s.end()
	inst.rendered = out

	t.mu.Lock()
	t.renders++
	t.mu.Unlock()

	count := 1
	seen := make(map[string]struct{})
	walk(out, newKeyer(), func(c Component, key string) Node {
		seen[key] = struct{}{}

		child, ok := inst.children[key]
		if !ok {
			child = t.newInstance(inst, key, c)
			inst.children[key] = child
			count += t.render(child)
			return nil
		}

		changed := !reflect.DeepEqual(child.comp.Props, c.Props)
		child.comp = c
		if changed || t.isDirty(child) {
			count += t.render(child)
		}
		return nil
	})

	for key, child := range inst.children {
		if _, ok := seen[key]; !ok {
			child.unmount()
			delete(inst.children, key)
		}
	}

	s.commitEffects()
	return count
}

func (inst *instance) resolve() Node {
	return walk(inst.rendered, newKeyer(), func(_ Component, key string) Node {
		if child, ok := inst.children[key]; ok {
			return child.resolve()
		}
		return nil
	})
}

func (inst *instance) unmount() {
	if !inst.mounted {
		return
	}
	for key, child := range inst.children {
		child.unmount()
		delete(inst.children, key)
	}
	inst.scope.dispose()
	inst.mounted = false
	inst.tree.clearDirty(inst)
}

func (t *Tree) markDirty(inst *instance) {
	t.mu.Lock()
	if t.unmounted || !inst.mounted {
		t.mu.Unlock()
		return
	}
	t.dirty[inst] = struct{}{}
	post := !t.scheduled && t.sched != nil
	if post {
		t.scheduled = true
	}
	t.mu.Unlock()

	if post {
		t.sched.Post(func() {
			t.mu.Lock()
			t.scheduled = false
			t.mu.Unlock()
			t.Flush()
		})
	}
}

func (t *Tree) isDirty(inst *instance) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.dirty[inst]
	return ok
}

func (t *Tree) clearDirty(inst *instance) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.dirty, inst)
}

func (t *Tree) dirtyBatch() []*instance {
	t.mu.Lock()
	defer t.mu.Unlock()

	batch := make([]*instance, 0, len(t.dirty))
	for inst := range t.dirty {
		batch = append(batch, inst)
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].depth < batch[j].depth })
	return batch
}

func (t *Tree) listenerSnapshot() []func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]uint64, 0, len(t.listeners))
	for id := range t.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]func(), len(ids))
	for i, id := range ids {
		out[i] = t.listeners[id]
	}
	return out
}

// keyer assigns identity keys to the components of one render output.
// Keyed components use their Key, unkeyed ones their ordinal among unkeyed
// siblings; duplicates get a suffix.
type keyer struct {
	seen    map[string]int
	unkeyed int
}

func newKeyer() *keyer {
	return &keyer{seen: make(map[string]int)}
}

func (k *keyer) key(c Component) string {
	base := c.Key
	if base == "" {
		base = "#" + strconv.Itoa(k.unkeyed)
		k.unkeyed++
	}
	n := k.seen[base]
	k.seen[base] = n + 1
	if n > 0 {
		return base + "~" + strconv.Itoa(n)
	}
	return base
}

// walk rebuilds n, replacing each Component with the result of visit.
// A nil result drops the node from its parent's children.
func walk(n Node, k *keyer, visit func(c Component, key string) Node) Node {
	switch v := n.(type) {
	case Component:
		return visit(v, k.key(v))
	case Box:
		v.Children = walkAll(v.Children, k, visit)
		return v
	case Column:
		v.Children = walkAll(v.Children, k, visit)
		return v
	case Row:
		v.Children = walkAll(v.Children, k, visit)
		return v
	case List:
		v.Children = walkAll(v.Children, k, visit)
		return v
	case Button:
		if v.Child != nil {
			v.Child = walk(v.Child, k, visit)
		}
		return v
	default:
		return n
	}
}

func walkAll(nodes []Node, k *keyer, visit func(c Component, key string) Node) []Node {
	if len(nodes) == 0 {
		return nodes
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if r := walk(n, k, visit); r != nil {
			out = append(out, r)
		}
	}
	return out
}
