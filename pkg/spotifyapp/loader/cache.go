package loader

// idleCache orders cached entries that no handle references, least recently
// released first. Only those entries are eligible for eviction.
type idleCache struct {
	order   []string
	present map[string]struct{}
	maxSize int // 0 = unbounded
}

func newIdleCache(maxSize int) *idleCache {
	return &idleCache{
		present: make(map[string]struct{}),
		maxSize: maxSize,
	}
}

// add marks url idle and returns the URLs that must be evicted to respect
// the size bound, oldest first.
func (c *idleCache) add(url string) []string {
	if _, exists := c.present[url]; exists {
		c.remove(url)
	}
	c.present[url] = struct{}{}
	c.order = append(c.order, url)

	if c.maxSize <= 0 {
		return nil
	}

	var evicted []string
	for len(c.order) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.present, oldest)
		evicted = append(evicted, oldest)
	}
	return evicted
}

func (c *idleCache) remove(url string) {
	if _, exists := c.present[url]; !exists {
		return
	}
	delete(c.present, url)
	for i, k := range c.order {
		if k == url {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *idleCache) len() int {
	return len(c.order)
}

func (c *idleCache) clear() {
	c.order = c.order[:0]
	c.present = make(map[string]struct{})
}
