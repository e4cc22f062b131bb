// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
)

// Common holds CLI fields shared by faidx and faidx-bgzip.
type Common struct {
	// Companion index paths; empty means "<input>.fai" / "<input>.gzi".
	FAIPath string
	GZIPath string

	Quiet    bool
	Version  bool
	Examples bool
}

// Register wires shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.FAIPath, "fai-idx", "", "path of the .fai index [<input>.fai]")
	fs.StringVar(&c.GZIPath, "gzi-idx", "", "path of the .gzi block index [<input>.gzi]")

	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Examples, "examples", false, "print quickstart examples and exit [false]")
}

// Validate applies shared CLI checks; input is the FASTA path.
func Validate(c *Common, input string) error {
	switch {
	case input == "":
		return errors.New("a FASTA file is required")
	case input == "-":
		return errors.New("random access needs a file; stdin is not supported")
	case c.FAIPath != "" && c.FAIPath == input:
		return errors.New("--fai-idx must differ from the input file")
	case c.GZIPath != "" && c.GZIPath == input:
		return errors.New("--gzi-idx must differ from the input file")
	}
	return nil
}
