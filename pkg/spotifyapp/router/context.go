package router

// Context is handed to a Producer for one render pass. It borrows the
// Navigator; once the pass ends every request fails with ErrContextExpired.
type Context struct {
	nav    *Navigator
	route  Route
	resume any
}

// Route returns the route being rendered.
func (c *Context) Route() Route {
	return c.route
}

// Resume returns the resume state stored on this route's stack entry, or
// nil for a fresh visit.
func (c *Context) Resume() any {
	return c.resume
}

// CanGoBack reports whether a Back request would change the route.
func (c *Context) CanGoBack() bool {
	if c.nav == nil {
		return false
	}
	return c.nav.CanGoBack()
}

// Navigate requests a push of route.
func (c *Context) Navigate(route Route) error {
	if c.nav == nil {
		return ErrContextExpired
	}
	return c.nav.Navigate(route)
}

// Back requests a pop.
func (c *Context) Back() error {
	if c.nav == nil {
		return ErrContextExpired
	}
	c.nav.Back()
	return nil
}

// Replace requests the current route be swapped for route.
func (c *Context) Replace(route Route) error {
	if c.nav == nil {
		return ErrContextExpired
	}
	return c.nav.Replace(route)
}

// Expired reports whether the render pass has ended.
func (c *Context) Expired() bool {
	return c.nav == nil
}

func (c *Context) expire() {
	c.nav = nil
}
