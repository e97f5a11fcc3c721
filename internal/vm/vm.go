package vm

import (
	"fmt"
	"io"
	"os"
)

// VM executes one chunk at a time over an owned operand stack.
// It holds no process-wide state: independent instances may run
// concurrently on separate goroutines without coordination.
type VM struct {
	chunk *Chunk
	ip    int
	stack *Stack

	// Trace enables the per-instruction stack/instruction dump on the
	// error writer. Checked once at run start; never affects results.
	Trace bool

	out    io.Writer
	errOut io.Writer
}

// New creates a new VM instance writing to stdout/stderr
func New() *VM {
	return &VM{
		stack:  NewStack(DefaultStackCapacity),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetOutput sets the writer the return instruction prints results to
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

// SetErrOutput sets the writer diagnostics and traces go to
func (vm *VM) SetErrOutput(w io.Writer) {
	vm.errOut = w
}

// SetStackCapacity replaces the operand stack with a fresh one of the
// given initial capacity. Only meaningful between runs.
func (vm *VM) SetStackCapacity(capacity int) {
	vm.stack = NewStack(capacity)
}

// Run executes the chunk until its return instruction or the first
// error. On error the diagnostic has already been written to the error
// writer and the stack has been reset, so the same VM can serve a
// subsequent, independent run.
func (vm *VM) Run(chunk *Chunk) (result Value, err error) {
	vm.chunk = chunk
	vm.ip = 0

	// Stack underflow and cursor violations panic with sentinels deep in
	// the accessors; surface them as internal errors here.
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || (e != errStackUnderflow && e != errTruncatedBytecode && e != errInvalidConstantIndex) {
				panic(r)
			}
			result = NilVal()
			err = vm.internalError("%s", e)
		}
	}()

	trace := vm.Trace

	for {
		if trace {
			vm.traceInstruction()
		}

		op := Opcode(vm.readByte())

		switch op {
		case OP_RETURN:
			ret := vm.stack.Pop()
			vm.printValue(ret)
			return ret, nil

		case OP_CONST:
			constant := vm.readConstant()
			// The constant pool is numeric-only in this core.
			if !constant.IsNumber() {
				return NilVal(), vm.runtimeError("Operand must be a number.")
			}
			vm.stack.Push(constant)

		case OP_NIL:
			vm.stack.Push(NilVal())
		case OP_TRUE:
			vm.stack.Push(BoolVal(true))
		case OP_FALSE:
			vm.stack.Push(BoolVal(false))

		case OP_NEG, OP_INC, OP_DEC:
			slot := vm.stack.PeekRef(0)
			if !slot.IsNumber() {
				return NilVal(), vm.runtimeError("Operand must be a number.")
			}
			switch op {
			case OP_NEG:
				*slot = NumberVal(-slot.AsNumber())
			case OP_INC:
				*slot = NumberVal(slot.AsNumber() + 1)
			case OP_DEC:
				*slot = NumberVal(slot.AsNumber() - 1)
			}

		case OP_NOT:
			v := vm.stack.Pop()
			vm.stack.Push(BoolVal(v.IsFalsey()))

		case OP_AND, OP_OR, OP_XOR:
			vm.logicOp(op)

		case OP_EQ:
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			vm.stack.Push(BoolVal(a.Equals(b)))
		case OP_NE:
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			vm.stack.Push(BoolVal(!a.Equals(b)))

		case OP_GT, OP_GE, OP_LT, OP_LE:
			if err := vm.comparisonOp(op); err != nil {
				return NilVal(), err
			}

		case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
			if err := vm.binaryOp(op); err != nil {
				return NilVal(), err
			}

		default:
			return NilVal(), vm.internalError("unknown opcode 0x%02x", byte(op))
		}
	}
}

// binaryOp implements the numeric arithmetic instructions. Operands are
// checked via Peek before anything is popped, so a failing instruction
// does not mutate the stack ahead of the error report.
func (vm *VM) binaryOp(op Opcode) error {
	if !vm.stack.Peek(0).IsNumber() || !vm.stack.Peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}

	b := vm.stack.Pop().AsNumber()
	a := vm.stack.Pop().AsNumber()

	var result float64
	switch op {
	case OP_ADD:
		result = a + b
	case OP_SUB:
		result = a - b
	case OP_MUL:
		result = a * b
	case OP_DIV:
		// IEEE semantics, no zero check
		result = a / b
	}
	vm.stack.Push(NumberVal(result))
	return nil
}

// comparisonOp implements the numeric ordering instructions
func (vm *VM) comparisonOp(op Opcode) error {
	if !vm.stack.Peek(0).IsNumber() || !vm.stack.Peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}

	b := vm.stack.Pop().AsNumber()
	a := vm.stack.Pop().AsNumber()

	var result bool
	switch op {
	case OP_GT:
		result = a > b
	case OP_GE:
		result = a >= b
	case OP_LT:
		result = a < b
	case OP_LE:
		result = a <= b
	}
	vm.stack.Push(BoolVal(result))
	return nil
}

// logicOp implements the logical binary instructions. Any operand types
// are legal here; they coerce through truthiness, not a numeric cast.
func (vm *VM) logicOp(op Opcode) {
	b := vm.stack.Pop()
	a := vm.stack.Pop()

	at := !a.IsFalsey()
	bt := !b.IsFalsey()

	var result bool
	switch op {
	case OP_AND:
		result = at && bt
	case OP_OR:
		result = at || bt
	case OP_XOR:
		result = at != bt
	}
	vm.stack.Push(BoolVal(result))
}

// printValue renders the run's result the way the return instruction
// defines it: numbers in fixed-point decimal, booleans and nil literally.
func (vm *VM) printValue(v Value) {
	switch v.Type {
	case ValBool:
		if v.AsBool() {
			fmt.Fprintln(vm.out, "true")
		} else {
			fmt.Fprintln(vm.out, "false")
		}
	case ValNil:
		fmt.Fprintln(vm.out, "nil")
	default:
		fmt.Fprintf(vm.out, "%f\n", v.AsNumber())
	}
}

// Read helpers

func (vm *VM) readByte() byte {
	if vm.ip >= len(vm.chunk.Code) {
		panic(errTruncatedBytecode)
	}
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() Value {
	idx := int(vm.readByte())
	if idx >= len(vm.chunk.Constants) {
		panic(errInvalidConstantIndex)
	}
	return vm.chunk.Constants[idx]
}

// currentLine resolves the cursor to the source line of the faulting
// instruction. The cursor sits just past the fully consumed instruction,
// so back up one byte; operand bytes share their opcode's line.
func (vm *VM) currentLine() int {
	idx := vm.ip - 1
	if idx < 0 || idx >= len(vm.chunk.Lines) {
		return 0
	}
	return vm.chunk.Lines[idx]
}

// runtimeError writes the diagnostic plus its source location to the
// error writer, resets the stack and returns a *RuntimeError. No partial
// stack state survives past this point.
func (vm *VM) runtimeError(format string, args ...interface{}) error {
	line := vm.currentLine()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(vm.errOut, msg)
	fmt.Fprintf(vm.errOut, "[line %d] in script\n", line)
	vm.stack.Reset()
	return &RuntimeError{Message: msg, Line: line}
}

// internalError reports a malformed instruction stream the same way but
// as the distinguishable *InternalError kind.
func (vm *VM) internalError(format string, args ...interface{}) error {
	line := vm.currentLine()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(vm.errOut, msg)
	fmt.Fprintf(vm.errOut, "[line %d] in script\n", line)
	vm.stack.Reset()
	return &InternalError{Message: msg, Line: line}
}

// StackDepth reports the number of live operand slots. Zero after any
// completed or failed run.
func (vm *VM) StackDepth() int {
	return vm.stack.Len()
}
