package vm

import (
	"strings"
	"testing"
)

func TestDisassembleChunk(t *testing.T) {
	chunk := NewChunk()
	writeNumber(t, chunk, 1.5, 1)
	chunk.WriteOp(OP_TRUE, 1)
	chunk.WriteOp(OP_EQ, 2)
	chunk.WriteOp(OP_RETURN, 2)

	got := Disassemble(chunk, "test")

	want := strings.Join([]string{
		"== test ==",
		"0000    1 CONST               0 '1.5'",
		"0002    | TRUE",
		"0003    2 EQ",
		"0004    | RETURN",
		"",
	}, "\n")
	if got != want {
		t.Errorf("disassembly mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	chunk := NewChunk()
	chunk.Write(0xFF, 1)

	got := Disassemble(chunk, "bad")
	if !strings.Contains(got, "Unknown opcode 255") {
		t.Errorf("disassembly = %q, want unknown opcode marker", got)
	}
}

func TestDisassembleTruncatedConstant(t *testing.T) {
	chunk := NewChunk()
	chunk.WriteOp(OP_CONST, 1)

	// Must not panic on a missing operand byte
	got := Disassemble(chunk, "trunc")
	if !strings.Contains(got, "truncated") {
		t.Errorf("disassembly = %q, want truncated marker", got)
	}
}

func TestDisassembleInvalidConstantIndex(t *testing.T) {
	chunk := NewChunk()
	chunk.WriteOp(OP_CONST, 1)
	chunk.Write(9, 1)

	got := Disassemble(chunk, "bad")
	if !strings.Contains(got, "invalid") {
		t.Errorf("disassembly = %q, want invalid marker", got)
	}
}

func TestOpcodeNamesCoverAllOpcodes(t *testing.T) {
	for op := OP_CONST; op <= OP_RETURN; op++ {
		if _, ok := OpcodeNames[op]; !ok {
			t.Errorf("opcode %d has no name", op)
		}
	}
}

func TestOperandBytes(t *testing.T) {
	if got := OP_CONST.OperandBytes(); got != 1 {
		t.Errorf("OP_CONST.OperandBytes() = %d, want 1", got)
	}
	for op := OP_NIL; op <= OP_RETURN; op++ {
		if got := op.OperandBytes(); got != 0 {
			t.Errorf("%s.OperandBytes() = %d, want 0", OpcodeNames[op], got)
		}
	}
}

// TestDisassembleWalksOperandWidths checks the two walkers agree: the
// disassembler must advance past exactly the bytes OperandBytes declares.
func TestDisassembleWalksOperandWidths(t *testing.T) {
	chunk := NewChunk()
	writeNumber(t, chunk, 1, 1)
	chunk.WriteOp(OP_NEG, 1)
	writeNumber(t, chunk, 2, 1)
	chunk.WriteOp(OP_ADD, 1)
	chunk.WriteOp(OP_RETURN, 1)

	got := Disassemble(chunk, "walk")

	instructions := 0
	for offset := 0; offset < chunk.Len(); {
		op := Opcode(chunk.Code[offset])
		offset += 1 + op.OperandBytes()
		instructions++
	}

	lines := strings.Count(got, "\n") - 1 // minus the header
	if lines != instructions {
		t.Errorf("disassembly has %d instruction lines, walker counted %d", lines, instructions)
	}
}
