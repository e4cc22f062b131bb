// internal/cli/options.go
package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"faidx/core/fasta"
	"faidx/internal/clibase"
	"faidx/internal/writers"
)

// Options holds all faidx flags and arguments.
type Options struct {
	clibase.Common

	Input      string   // FASTA file (first positional)
	Regions    []string // remaining positionals plus --region-file entries
	RegionFile string

	List     bool // print index records instead of fetching
	Rebuild  bool // ignore persisted indexes
	NoWrite  bool // do not persist a freshly built index
	Continue bool // warn and skip regions that fail to resolve

	Threads int

	Output          string
	Width           int
	Header          bool // true unless --no-header
	NoMatchExitCode int
}

// IndexOnly reports whether the run only builds and writes the index.
func (o Options) IndexOnly() bool { return !o.List && len(o.Regions) == 0 }

// ParseArgs registers and parses all flags, returns an Options struct.
// Flags and positionals may be interleaved.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	clibase.Register(fs, &opt.Common)

	fs.StringVar(&opt.RegionFile, "region-file", "", "file with one region per line")
	fs.StringVar(&opt.RegionFile, "r", "", "alias of --region-file")

	fs.BoolVar(&opt.List, "list", false, "list index records [false]")
	fs.BoolVar(&opt.List, "l", false, "alias of --list")
	fs.BoolVar(&opt.Rebuild, "rebuild", false, "rebuild the index even if one exists [false]")
	fs.BoolVar(&opt.NoWrite, "no-write", false, "do not write a freshly built index next to the input [false]")
	fs.BoolVar(&opt.Continue, "continue", false, "warn and skip regions that cannot be fetched [false]")

	fs.IntVar(&opt.Threads, "threads", 1, "regions fetched in parallel [1]")
	fs.IntVar(&opt.Threads, "t", 1, "alias of --threads")

	fs.StringVar(&opt.Output, "output", "fasta", "output: "+strings.Join(writers.Formats(), " | ")+" [fasta]")
	fs.StringVar(&opt.Output, "o", "fasta", "alias of --output")
	fs.IntVar(&opt.Width, "width", fasta.DefaultWidth, "FASTA line width (0 = no wrapping) [60]")
	fs.IntVar(&opt.Width, "w", fasta.DefaultWidth, "alias of --width")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when a region is not found [1]")

	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")
	fs.BoolVar(&help, "help", false, "show this help message [false]")

	flagArgs, pos := SplitArgs(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Examples {
		return opt, clibase.ErrPrintedAndExitOK
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	if len(pos) > 0 {
		opt.Input, opt.Regions = pos[0], pos[1:]
	}
	if err := clibase.Validate(&opt.Common, opt.Input); err != nil {
		return opt, err
	}
	if opt.RegionFile != "" {
		extra, err := readRegionFile(opt.RegionFile)
		if err != nil {
			return opt, err
		}
		opt.Regions = append(opt.Regions, extra...)
		if len(opt.Regions) == 0 {
			return opt, fmt.Errorf("--region-file %s lists no regions", opt.RegionFile)
		}
	}

	if opt.List && len(opt.Regions) > 0 {
		return opt, errors.New("--list conflicts with regions")
	}
	if opt.Threads < 1 {
		return opt, errors.New("--threads must be ≥ 1")
	}
	if opt.Width < 0 {
		return opt, errors.New("--width must be ≥ 0")
	}
	valid := false
	for _, f := range writers.Formats() {
		valid = valid || f == opt.Output
	}
	if !valid {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.NoMatchExitCode < 0 || opt.NoMatchExitCode > 255 {
		return opt, errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return opt, nil
}

// readRegionFile reads one region per line; blank lines and '#' comments
// are skipped.
func readRegionFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scanRegions(f)
}

func scanRegions(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
