package sdlview

import "github.com/veandco/go-sdl2/sdl"

// lru keeps at most maxSize values and calls evict for every value it
// drops, including on Destroy.
type lru[V comparable] struct {
	values  map[string]V
	order   []string // least recently used first
	maxSize int
	evict   func(V)
}

func newLRU[V comparable](maxSize int, evict func(V)) *lru[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &lru[V]{
		values:  make(map[string]V),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		evict:   evict,
	}
}

func (c *lru[V]) Get(key string) (V, bool) {
	v, ok := c.values[key]
	if ok {
		c.touch(key)
	}
	return v, ok
}

func (c *lru[V]) Set(key string, v V) {
	if old, ok := c.values[key]; ok {
		c.values[key] = v
		c.touch(key)
		if old != v {
			c.evict(old)
		}
		return
	}

	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.evict(c.values[oldest])
		delete(c.values, oldest)
	}

	c.values[key] = v
	c.order = append(c.order, key)
}

func (c *lru[V]) Len() int {
	return len(c.order)
}

func (c *lru[V]) Destroy() {
	for _, v := range c.values {
		c.evict(v)
	}
	c.values = make(map[string]V)
	c.order = c.order[:0]
}

func (c *lru[V]) touch(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

// TextureCache owns the textures it holds and destroys them on eviction.
type TextureCache = lru[*sdl.Texture]

func NewTextureCache(maxSize int) *TextureCache {
	return newLRU(maxSize, func(t *sdl.Texture) {
		if t != nil {
			t.Destroy()
		}
	})
}
