// Package vm implements the Orion bytecode virtual machine
package vm

// Opcode represents a single VM instruction
type Opcode byte

const (
	// Stack manipulation
	OP_CONST Opcode = iota // Push constant from pool (one-byte index operand)

	// Literals
	OP_NIL   // Push nil
	OP_TRUE  // Push true
	OP_FALSE // Push false

	// In-place unary arithmetic
	OP_NEG // Unary minus
	OP_INC // ++
	OP_DEC // --

	// Logic
	OP_NOT // !
	OP_AND // &&
	OP_OR  // ||
	OP_XOR // ^

	// Equality and comparison
	OP_EQ // ==
	OP_NE // !=
	OP_GT // >
	OP_GE // >=
	OP_LT // <
	OP_LE // <=

	// Arithmetic
	OP_ADD // +
	OP_SUB // -
	OP_MUL // *
	OP_DIV // /

	// Return
	OP_RETURN // Pop result, print it, stop execution
)

// OpcodeNames maps opcodes to their string names (for debugging)
var OpcodeNames = map[Opcode]string{
	OP_CONST: "CONST",

	OP_NIL:   "NIL",
	OP_TRUE:  "TRUE",
	OP_FALSE: "FALSE",

	OP_NEG: "NEG",
	OP_INC: "INC",
	OP_DEC: "DEC",

	OP_NOT: "NOT",
	OP_AND: "AND",
	OP_OR:  "OR",
	OP_XOR: "XOR",

	OP_EQ: "EQ",
	OP_NE: "NE",
	OP_GT: "GT",
	OP_GE: "GE",
	OP_LT: "LT",
	OP_LE: "LE",

	OP_ADD: "ADD",
	OP_SUB: "SUB",
	OP_MUL: "MUL",
	OP_DIV: "DIV",

	OP_RETURN: "RETURN",
}

// OperandBytes returns how many inline operand bytes follow the opcode.
// Every opcode except OP_CONST is a bare byte.
func (op Opcode) OperandBytes() int {
	if op == OP_CONST {
		return 1
	}
	return 0
}
