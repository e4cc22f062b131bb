// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller requested examples.
// Apps should catch this and exit 0 after printing examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples prints a quickstart header, the body lines, and a tip
// pointing at --help.
func PrintExamples(out io.Writer, name string, lines ...string) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	for _, l := range lines {
		_, _ = fmt.Fprintln(out, "  "+l)
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
