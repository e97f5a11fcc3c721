package vm

import "errors"

// Sentinel panics raised by the stack and cursor accessors. They are
// recovered at the Run boundary and surfaced as an InternalError.
var (
	errStackUnderflow       = errors.New("stack underflow")
	errTruncatedBytecode    = errors.New("truncated bytecode")
	errInvalidConstantIndex = errors.New("invalid constant index")
)

// RuntimeError is a user-facing operand type violation. It aborts the
// current run, not the process; the VM stays reusable afterwards.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// InternalError reports a malformed instruction stream: stack underflow,
// truncated bytecode, a constant index past the pool, or an opcode byte
// the dispatcher does not recognize. These indicate a front-end or
// encoding bug rather than a user-program error.
type InternalError struct {
	Message string
	Line    int
}

func (e *InternalError) Error() string {
	return e.Message
}
