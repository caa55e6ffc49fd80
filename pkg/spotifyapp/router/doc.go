// Package router provides screen navigation over a back-stack.
//
// A Table maps Route identifiers to producers that build a view for that
// route. A Navigator owns the back-stack, exposes Navigate, Back and Replace,
// and publishes every change of the current route to its subscribers before
// the call returns, so a tab bar never renders a stale selection.
//
// # Basic Usage
//
//	// Define routes as typed constants
//	const (
//	    RouteHome   router.Route = "home"
//	    RouteSearch router.Route = "search"
//	)
//
//	table := router.NewTable(RouteHome).
//	    Register(RouteHome, func(ctx *router.Context) view.Node {
//	        return view.Text{Text: "Home"}
//	    }).
//	    Register(RouteSearch, func(ctx *router.Context) view.Node {
//	        return view.Text{Text: "Search"}
//	    })
//
//	nav, err := router.NewNavigator(table)
//	if err != nil {
//	    return err
//	}
//
//	nav.Subscribe(func(current router.Route) {
//	    tabs.Set(current)
//	})
//
//	_ = nav.Navigate(RouteSearch) // stack: [home search]
//	nav.Back()                    // stack: [home]
//	nav.Back()                    // no-op, the last entry is never popped
//
// # Events
//
// Views do not hold the Navigator. Buttons carry Navigate, Back or Replace
// values as their Action and the shell hands them to Navigator.Apply.
//
// # Resume State
//
// A screen can store resume state (like a scroll position) on its stack
// entry with SetResume before navigating forward. When the user comes back
// the producer receives it through Context.Resume.
//
// # Errors
//
// Navigating to a route that is not registered returns a
// *RouteNotFoundError and leaves the stack untouched.
package router
