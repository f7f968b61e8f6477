package vm

import "fmt"

// ---------------------------------------------------------------------------
// Operand stack
// ---------------------------------------------------------------------------

// Stack is the operand stack: a LIFO sequence of values. Underflow on
// any access is a fatal error rather than a panic; the interpreter
// surfaces it as ErrStackUnderflow with row context.
type Stack struct {
	values []Value
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v Value) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (Value, error) {
	n := len(s.values)
	if n == 0 {
		return Empty, ErrStackUnderflow
	}
	v := s.values[n-1]
	s.values = s.values[:n-1]
	return v, nil
}

// Pop2 removes the top two values, returning them in stack order:
// a was below b.
func (s *Stack) Pop2() (a, b Value, err error) {
	n := len(s.values)
	if n < 2 {
		return Empty, Empty, fmt.Errorf("%w: need 2 values, have %d", ErrStackUnderflow, n)
	}
	a, b = s.values[n-2], s.values[n-1]
	s.values = s.values[:n-2]
	return a, b, nil
}

// Peek returns the value depth positions from the top without removing
// it; depth 1 is the top.
func (s *Stack) Peek(depth int) (Value, error) {
	n := len(s.values)
	if depth < 1 || depth > n {
		return Empty, fmt.Errorf("%w: need %d values, have %d", ErrStackUnderflow, depth, n)
	}
	return s.values[n-depth], nil
}

// Depth reports the number of values on the stack.
func (s *Stack) Depth() int {
	return len(s.values)
}

// Reset discards all values.
func (s *Stack) Reset() {
	s.values = s.values[:0]
}
