// Package diagnostics prints error-channel output, colored when the
// destination is a real terminal.
package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Printer writes diagnostics to a single destination
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a printer for w. Color is enabled only when w is
// os.Stderr or os.Stdout attached to a terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w, color: colorEnabled(w)}
}

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// Errorf prints a formatted diagnostic line
func (p *Printer) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if p.color {
		fmt.Fprintf(p.out, "%s%s%s\n", ansiRed, msg, ansiReset)
		return
	}
	fmt.Fprintln(p.out, msg)
}

// Writer exposes the destination as an io.Writer with the same coloring
// Errorf applies, so components that write their own diagnostic lines
// share one consistent error channel.
func (p *Printer) Writer() io.Writer {
	if !p.color {
		return p.out
	}
	return &colorWriter{out: p.out}
}

// colorWriter wraps each written line in the diagnostic color, keeping
// newlines outside the escape sequences.
type colorWriter struct {
	out io.Writer
}

func (w *colorWriter) Write(b []byte) (int, error) {
	var sb strings.Builder

	rest := b
	for len(rest) > 0 {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			sb.WriteString(ansiRed)
			sb.Write(rest)
			sb.WriteString(ansiReset)
			break
		}
		if i > 0 {
			sb.WriteString(ansiRed)
			sb.Write(rest[:i])
			sb.WriteString(ansiReset)
		}
		sb.WriteByte('\n')
		rest = rest[i+1:]
	}

	if _, err := io.WriteString(w.out, sb.String()); err != nil {
		return 0, err
	}
	return len(b), nil
}
