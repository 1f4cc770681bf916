package util

// Stack is a LIFO used for the editor's undo history.
type Stack[T any] struct {
	items []T
	limit int
}

// NewStack returns a stack that discards its oldest entries beyond limit; zero means unbounded.
func NewStack[T any](limit int) *Stack[T] {
	return &Stack[T]{limit: limit}
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
	if s.limit > 0 && len(s.items) > s.limit {
		s.items = s.items[len(s.items)-s.limit:]
	}
}

// Pop removes and returns the top element, or the zero value when empty.
func (s *Stack[T]) Pop() (item T) {
	if len(s.items) == 0 {
		return
	}
	idx := len(s.items) - 1
	item = s.items[idx]
	s.items = s.items[:idx]
	return
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (item T) {
	if len(s.items) == 0 {
		return
	}
	return s.items[len(s.items)-1]
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) Clear() {
	s.items = nil
}
