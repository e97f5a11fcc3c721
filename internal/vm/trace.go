package vm

import (
	"fmt"
	"strings"
)

// traceInstruction dumps the live stack slots and the instruction at the
// cursor to the error writer. Pure rendering; execution is unaffected.
func (vm *VM) traceInstruction() {
	var sb strings.Builder

	sb.WriteString("          ")
	for i := 0; i < vm.stack.count; i++ {
		sb.WriteString(fmt.Sprintf("[ %s ]", vm.stack.values[i].Inspect()))
	}
	sb.WriteString("\n")

	if vm.ip < len(vm.chunk.Code) {
		disassembleInstruction(&sb, vm.chunk, vm.ip)
	}

	fmt.Fprint(vm.errOut, sb.String())
}
