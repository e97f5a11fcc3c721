package vm

import "fmt"

// MaxConstants is the constant pool limit imposed by the one-byte index
// operand of OP_CONST.
const MaxConstants = 256

// Chunk represents a compiled unit: a sequence of bytecode instructions,
// the constant pool they index, and a source line per code byte.
// Produced by the front end, read-only during execution.
type Chunk struct {
	// Code is the bytecode instructions (opcodes and inline operand bytes)
	Code []byte

	// Constants pool, referenced by one-byte index operands
	Constants []Value

	// Lines maps bytecode offset to source line number (for errors)
	Lines []int
}

// NewChunk creates a new empty chunk
func NewChunk() *Chunk {
	return &Chunk{
		Code:      make([]byte, 0, 64),
		Constants: make([]Value, 0, 8),
		Lines:     make([]int, 0, 64),
	}
}

// Write adds a byte to the chunk with line info
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp writes an opcode to the chunk
func (c *Chunk) WriteOp(op Opcode, line int) {
	c.Write(byte(op), line)
}

// AddConstant adds a constant to the pool and returns its index
func (c *Chunk) AddConstant(value Value) int {
	c.Constants = append(c.Constants, value)
	return len(c.Constants) - 1
}

// WriteConstant writes OP_CONST followed by the constant index.
// Fails once the pool exceeds the one-byte index range.
func (c *Chunk) WriteConstant(value Value, line int) error {
	idx := c.AddConstant(value)
	if idx >= MaxConstants {
		return fmt.Errorf("too many constants in one chunk (max %d)", MaxConstants)
	}
	c.WriteOp(OP_CONST, line)
	c.Write(byte(idx), line)
	return nil
}

// Len returns the number of bytes in the chunk
func (c *Chunk) Len() int {
	return len(c.Code)
}
