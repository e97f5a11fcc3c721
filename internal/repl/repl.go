// Package repl implements the interactive line loop
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/orion-lang/orion/internal/compiler"
	"github.com/orion-lang/orion/internal/diagnostics"
	"github.com/orion-lang/orion/internal/vm"
)

const prompt = "orion> "

// Options tunes the REPL's VM
type Options struct {
	Trace         bool
	Disasm        bool
	StackCapacity int
}

// Start runs the read-compile-execute loop until in is exhausted.
// One VM serves the whole session: the engine resets its stack after
// every error, so a failed line cannot poison the next one.
func Start(in io.Reader, out, errOut io.Writer, opts Options) {
	printer := diagnostics.NewPrinter(errOut)

	machine := vm.New()
	machine.SetOutput(out)
	// Runtime diagnostics go through the printer's writer so both error
	// classes get the same terminal treatment.
	machine.SetErrOutput(printer.Writer())
	machine.Trace = opts.Trace
	if opts.StackCapacity > 0 {
		machine.SetStackCapacity(opts.StackCapacity)
	}
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, "Orion REPL (Ctrl+D to exit)\n")

	for {
		fmt.Fprint(out, prompt)

		if !scanner.Scan() {
			fmt.Fprint(out, "\n")
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		chunk, err := compiler.Compile(line)
		if err != nil {
			printer.Errorf("compile error: %s", err)
			continue
		}

		if opts.Disasm {
			fmt.Fprint(errOut, vm.Disassemble(chunk, "repl"))
		}

		// The VM reports runtime errors on its error writer itself;
		// nothing more to print here.
		_, _ = machine.Run(chunk)
	}
}
