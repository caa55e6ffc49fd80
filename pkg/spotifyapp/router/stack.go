package router

// Entry is a single entry in the back-stack: the route and any resume state
// the screen stored before navigating away (scroll position, selection).
type Entry struct {
	Route  Route
	Resume any
}

// Stack is the navigation history, most recent entry last.
type Stack struct {
	entries []Entry
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]Entry, 0, 8),
	}
}

// Push adds a new entry to the top of the stack.
func (s *Stack) Push(route Route, resume any) {
	s.entries = append(s.entries, Entry{
		Route:  route,
		Resume: resume,
	})
}

// Pop removes and returns the top entry.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *Entry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *Entry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Routes returns the routes on the stack, bottom first.
func (s *Stack) Routes() []Route {
	out := make([]Route, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Route
	}
	return out
}
