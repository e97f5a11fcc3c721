// Package config holds Orion's constants and per-project options.
//
// Options come from orion.yaml in the working directory. The file is
// optional; a missing file yields the zero Options. CLI flags override
// whatever the file says.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options represents the top-level orion.yaml configuration.
type Options struct {
	// Trace dumps the stack and the decoded instruction before every
	// dispatch step. Diagnostic only; results are unaffected.
	Trace bool `yaml:"trace,omitempty"`

	// Disasm prints the chunk's disassembly before running it.
	Disasm bool `yaml:"disasm,omitempty"`

	// StackCapacity is the initial operand stack size in slots.
	// Zero means the VM default. The stack grows on demand either way.
	StackCapacity int `yaml:"stack-capacity,omitempty"`
}

// Load reads orion.yaml from dir. A missing file is not an error.
func Load(dir string) (*Options, error) {
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Options{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if opts.StackCapacity < 0 {
		return nil, fmt.Errorf("config: stack-capacity must not be negative (got %d)", opts.StackCapacity)
	}

	return &opts, nil
}
