// Orion CLI - the main entry point for compiling and running Orion programs
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/orion-lang/orion/internal/compiler"
	"github.com/orion-lang/orion/internal/config"
	"github.com/orion-lang/orion/internal/diagnostics"
	"github.com/orion-lang/orion/internal/repl"
	"github.com/orion-lang/orion/internal/vm"

	_ "github.com/tliron/commonlog/simple"
)

// Exit codes follow the sysexits convention: 65 for bad input
// (compile/decode errors), 70 for runtime errors.
const (
	exitUsage   = 64
	exitCompile = 65
	exitRuntime = 70
)

var log = commonlog.GetLogger("orion")

func main() {
	trace := flag.Bool("trace", false, "Dump stack and instruction before every dispatch step")
	disasm := flag.Bool("disasm", false, "Print disassembly before running")
	stackCap := flag.Int("stack-capacity", 0, "Initial operand stack capacity (0 = default)")
	output := flag.String("o", "", "Output path for build (default: source path with "+config.CompiledFileExt+")")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: orion [options] [command] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  run FILE      Compile (or load %s) and execute\n", config.CompiledFileExt)
		fmt.Fprintf(os.Stderr, "  build FILE    Compile to a %s chunk file\n", config.CompiledFileExt)
		fmt.Fprintf(os.Stderr, "  disasm FILE   Print the disassembly without executing\n\n")
		fmt.Fprintf(os.Stderr, "With no arguments, starts the REPL.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  orion                      # Start REPL\n")
		fmt.Fprintf(os.Stderr, "  orion run prog%s          # Compile and run\n", config.SourceFileExt)
		fmt.Fprintf(os.Stderr, "  orion build prog%s -o p%s\n", config.SourceFileExt, config.CompiledFileExt)
		fmt.Fprintf(os.Stderr, "  orion -trace run prog%s   # Run with execution trace\n", config.SourceFileExt)
	}
	flag.Parse()

	if *verbose {
		commonlog.Configure(1, nil)
	}

	printer := diagnostics.NewPrinter(os.Stderr)

	opts, err := config.Load(".")
	if err != nil {
		printer.Errorf("%s", err)
		os.Exit(exitUsage)
	}
	// Flags override the config file
	if *trace {
		opts.Trace = true
	}
	if *disasm {
		opts.Disasm = true
	}
	if *stackCap > 0 {
		opts.StackCapacity = *stackCap
	}

	args := flag.Args()
	if len(args) == 0 {
		repl.Start(os.Stdin, os.Stdout, os.Stderr, repl.Options{
			Trace:         opts.Trace,
			Disasm:        opts.Disasm,
			StackCapacity: opts.StackCapacity,
		})
		return
	}

	command, file := args[0], ""
	switch command {
	case "run", "build", "disasm":
		if len(args) < 2 {
			printer.Errorf("%s: missing file argument", command)
			os.Exit(exitUsage)
		}
		file = args[1]
	default:
		// Bare file argument means run
		command, file = "run", args[0]
	}

	switch command {
	case "run":
		runFile(file, opts, printer)
	case "build":
		buildFile(file, *output, printer)
	case "disasm":
		disasmFile(file, printer)
	}
}

// loadChunk compiles a source file or decodes a compiled one
func loadChunk(path string) (*vm.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, config.CompiledFileExt) {
		chunk, err := vm.UnmarshalChunk(data)
		if err != nil {
			return nil, err
		}
		log.Infof("loaded %d bytecode bytes from %s", chunk.Len(), path)
		return chunk, nil
	}

	chunk, err := compiler.Compile(string(data))
	if err != nil {
		return nil, err
	}
	log.Infof("compiled %s to %d bytecode bytes", path, chunk.Len())
	return chunk, nil
}

func runFile(path string, opts *config.Options, printer *diagnostics.Printer) {
	chunk, err := loadChunk(path)
	if err != nil {
		printer.Errorf("%s", err)
		os.Exit(exitCompile)
	}

	if opts.Disasm {
		fmt.Fprint(os.Stderr, vm.Disassemble(chunk, path))
	}

	machine := vm.New()
	machine.SetErrOutput(printer.Writer())
	machine.Trace = opts.Trace
	if opts.StackCapacity > 0 {
		machine.SetStackCapacity(opts.StackCapacity)
	}

	// The VM writes its own diagnostic lines through the printer; only
	// the exit code is decided here.
	if _, err := machine.Run(chunk); err != nil {
		var internal *vm.InternalError
		if errors.As(err, &internal) {
			printer.Errorf("internal error: malformed bytecode")
		}
		os.Exit(exitRuntime)
	}
}

func buildFile(path, out string, printer *diagnostics.Printer) {
	data, err := os.ReadFile(path)
	if err != nil {
		printer.Errorf("%s", err)
		os.Exit(exitCompile)
	}

	chunk, err := compiler.Compile(string(data))
	if err != nil {
		printer.Errorf("%s", err)
		os.Exit(exitCompile)
	}

	encoded, err := vm.MarshalChunk(chunk)
	if err != nil {
		printer.Errorf("%s", err)
		os.Exit(exitCompile)
	}

	if out == "" {
		out = strings.TrimSuffix(path, config.SourceFileExt) + config.CompiledFileExt
	}
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		printer.Errorf("%s", err)
		os.Exit(exitUsage)
	}
	log.Infof("wrote %s (%d bytes)", out, len(encoded))
}

func disasmFile(path string, printer *diagnostics.Printer) {
	chunk, err := loadChunk(path)
	if err != nil {
		printer.Errorf("%s", err)
		os.Exit(exitCompile)
	}
	fmt.Print(vm.Disassemble(chunk, path))
}
