package util

// Stack is the back navigation history of the TUI.
// Pushing the item already on top is a no-op, so going back never revisits the same screen twice in a row.
type Stack[T comparable] struct {
	items []T
}

func (s *Stack[T]) Push(item T) {
	if n := len(s.items); n > 0 && s.items[n-1] == item {
		return
	}
	s.items = append(s.items, item)
}

// Pop removes the top item. ok is false on an empty stack.
func (s *Stack[T]) Pop() (item T, ok bool) {
	n := len(s.items)
	if n == 0 {
		return item, false
	}

	item = s.items[n-1]
	s.items = s.items[:n-1]
	return item, true
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
