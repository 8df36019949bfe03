// ABOUTME: Bounded undo stack of editor snapshots
// ABOUTME: The oldest snapshot is evicted once the depth limit is reached

package undo

// Stack holds snapshots taken before each change, newest last.
type Stack[S any] struct {
	states []S
	max    int
}

// New creates a Stack keeping at most max snapshots.
func New[S any](max int) *Stack[S] {
	if max < 1 {
		max = 1
	}
	return &Stack[S]{max: max}
}

// Push records the state before a change.
func (s *Stack[S]) Push(state S) {
	if len(s.states) == s.max {
		copy(s.states, s.states[1:])
		s.states = s.states[:s.max-1]
	}
	s.states = append(s.states, state)
}

// Undo pops the most recent snapshot.
func (s *Stack[S]) Undo() (S, bool) {
	var zero S
	if len(s.states) == 0 {
		return zero, false
	}
	last := s.states[len(s.states)-1]
	s.states[len(s.states)-1] = zero
	s.states = s.states[:len(s.states)-1]
	return last, true
}

// Len returns the number of snapshots.
func (s *Stack[S]) Len() int {
	return len(s.states)
}

// Reset drops every snapshot.
func (s *Stack[S]) Reset() {
	clear(s.states)
	s.states = s.states[:0]
}
