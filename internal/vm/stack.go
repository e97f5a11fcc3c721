package vm

// DefaultStackCapacity is the initial slot count for a fresh stack.
const DefaultStackCapacity = 256

// Stack is the operand stack: a contiguous growable buffer of Values.
// A Stack is owned by exactly one VM for the duration of a run; it is
// reset after a runtime error so the buffer can serve the next run.
type Stack struct {
	values []Value
	count  int
}

// NewStack creates a stack with the given initial capacity.
// Non-positive capacities fall back to DefaultStackCapacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultStackCapacity
	}
	return &Stack{values: make([]Value, capacity)}
}

// Push appends a value on top, doubling the buffer when full.
// Existing entries and their order are preserved across growth.
func (s *Stack) Push(v Value) {
	if s.count == len(s.values) {
		grown := make([]Value, len(s.values)*2)
		copy(grown, s.values)
		s.values = grown
	}
	s.values[s.count] = v
	s.count++
}

// Pop removes and returns the top value. Popping an empty stack means
// the instruction stream is malformed; it panics with errStackUnderflow,
// which the run loop turns into an InternalError.
func (s *Stack) Pop() Value {
	if s.count == 0 {
		panic(errStackUnderflow)
	}
	s.count--
	return s.values[s.count]
}

// Peek returns a copy of the value distance slots below the top
// (distance 0 is the top) without removing it. Only the count live slots
// are addressable; anything else panics like Pop on empty.
func (s *Stack) Peek(distance int) Value {
	idx := s.count - 1 - distance
	if idx < 0 || idx >= s.count {
		panic(errStackUnderflow)
	}
	return s.values[idx]
}

// PeekRef returns a mutable handle to the slot distance below the top,
// used by the in-place unary instructions. Bounds-checked like Peek.
func (s *Stack) PeekRef(distance int) *Value {
	idx := s.count - 1 - distance
	if idx < 0 || idx >= s.count {
		panic(errStackUnderflow)
	}
	return &s.values[idx]
}

// Reset drops all live entries. The buffer and its capacity are kept.
func (s *Stack) Reset() {
	s.count = 0
}

// Len returns the number of live entries
func (s *Stack) Len() int {
	return s.count
}

// Cap returns the current buffer capacity
func (s *Stack) Cap() int {
	return len(s.values)
}
