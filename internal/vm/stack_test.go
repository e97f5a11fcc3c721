package vm

import "testing"

func TestStackPushPop(t *testing.T) {
	s := NewStack(4)

	s.Push(NumberVal(1))
	s.Push(NumberVal(2))
	s.Push(NumberVal(3))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	// LIFO order
	for _, want := range []float64{3, 2, 1} {
		got := s.Pop()
		if !got.IsNumber() || got.AsNumber() != want {
			t.Errorf("Pop() = %s, want %g", got.Inspect(), want)
		}
	}

	if s.Len() != 0 {
		t.Errorf("Len() after draining = %d, want 0", s.Len())
	}
}

func TestStackGrowth(t *testing.T) {
	s := NewStack(2)
	initialCap := s.Cap()

	// Push well past the initial capacity
	const n = 100
	for i := 0; i < n; i++ {
		s.Push(NumberVal(float64(i)))
	}

	if s.Cap() < n {
		t.Fatalf("Cap() = %d, want >= %d", s.Cap(), n)
	}
	if s.Cap() < initialCap {
		t.Errorf("capacity shrank from %d to %d", initialCap, s.Cap())
	}

	// Earlier entries survive reallocation, in order
	for i := n - 1; i >= 0; i-- {
		got := s.Pop()
		if got.AsNumber() != float64(i) {
			t.Fatalf("Pop() = %g, want %d", got.AsNumber(), i)
		}
	}
}

func TestStackPeek(t *testing.T) {
	s := NewStack(4)
	s.Push(NumberVal(10))
	s.Push(NumberVal(20))

	if got := s.Peek(0); got.AsNumber() != 20 {
		t.Errorf("Peek(0) = %s, want 20", got.Inspect())
	}
	if got := s.Peek(1); got.AsNumber() != 10 {
		t.Errorf("Peek(1) = %s, want 10", got.Inspect())
	}
	if s.Len() != 2 {
		t.Errorf("Peek must not remove entries, Len() = %d", s.Len())
	}
}

func TestStackPeekRef(t *testing.T) {
	s := NewStack(4)
	s.Push(NumberVal(5))

	slot := s.PeekRef(0)
	*slot = NumberVal(6)

	if got := s.Pop(); got.AsNumber() != 6 {
		t.Errorf("in-place mutation lost: Pop() = %s, want 6", got.Inspect())
	}
}

func TestStackReset(t *testing.T) {
	s := NewStack(4)
	s.Push(NumberVal(1))
	s.Push(NumberVal(2))

	capBefore := s.Cap()
	s.Reset()

	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
	if s.Cap() != capBefore {
		t.Errorf("Reset must keep the buffer, Cap() = %d, want %d", s.Cap(), capBefore)
	}
}

func TestStackUnderflowPanics(t *testing.T) {
	tests := []struct {
		name string
		op   func(s *Stack)
	}{
		{"pop empty", func(s *Stack) { s.Pop() }},
		{"peek empty", func(s *Stack) { s.Peek(0) }},
		{"peek past bottom", func(s *Stack) { s.Push(NumberVal(1)); s.Peek(1) }},
		{"peekref empty", func(s *Stack) { s.PeekRef(0) }},
		{"peekref past bottom", func(s *Stack) { s.Push(NumberVal(1)); s.PeekRef(1) }},
		// Negative distances address slots above the live top; they must
		// trip the same guard, never expose a stale slot.
		{"peek negative distance", func(s *Stack) { s.Push(NumberVal(1)); s.Peek(-1) }},
		{"peekref negative distance", func(s *Stack) { s.Push(NumberVal(1)); s.PeekRef(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("expected panic")
				}
				if r != errStackUnderflow {
					t.Fatalf("panic value = %v, want errStackUnderflow", r)
				}
			}()
			tt.op(NewStack(4))
		})
	}
}

func TestStackDefaultCapacity(t *testing.T) {
	if got := NewStack(0).Cap(); got != DefaultStackCapacity {
		t.Errorf("NewStack(0).Cap() = %d, want %d", got, DefaultStackCapacity)
	}
	if got := NewStack(-3).Cap(); got != DefaultStackCapacity {
		t.Errorf("NewStack(-3).Cap() = %d, want %d", got, DefaultStackCapacity)
	}
}
