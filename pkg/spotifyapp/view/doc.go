// Package view describes the UI as a tree of plain node values and keeps
// that tree up to date as reactive state changes.
//
// Leaf and container nodes (Text, Image, Column, Row, ...) are inert data.
// A Component is the only node that renders: it is a function of its Props
// and of the Cells it watches. A Tree mounts a root Component, re-renders an
// instance exactly when a watched Cell changes value or its Props change,
// and resolves the whole thing into a component-free tree that frontends
// paint.
//
// # Basic Usage
//
//	counter := view.Component{
//	    Key: "counter",
//	    Render: func(s *view.Scope) view.Node {
//	        clicks := view.UseCell(s, 0)
//	        return view.Button{
//	            Child:  view.Text{Text: fmt.Sprintf("clicked %d times", view.Watch(s, clicks))},
//	            Action: Increment{},
//	        }
//	    },
//	}
//
//	tree := view.Mount(counter, loop)
//	root := tree.Resolve()
//
// # Keys
//
// Children of a List (or any container) that are Components keep their
// instance, hook state and effects across parent re-renders when they carry
// the same Key. Rows keyed by a stable identity therefore keep in-flight
// work such as image requests instead of restarting it.
//
// # Effects
//
// Side effects belong in Scope.Effect, which runs after the first render and
// again only when its dependency value changes. Rendering itself must stay
// free of side effects.
package view
