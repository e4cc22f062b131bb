// internal/bgzipcli/options.go
package bgzipcli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/biogo/hts/bgzf"

	"faidx/internal/cli"
	"faidx/internal/clibase"
)

type Options struct {
	clibase.Common

	Input     string
	Output    string // defaults to Input + ".gz"
	BlockSize int
	Force     bool
	NoIndex   bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "BGZF-compress a FASTA for random access", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] ref.fa            # writes ref.fa.gz, .gz.fai and .gz.gzi\n", name)
		_, _ = fmt.Fprintf(out, "  %s [options] -o out.fa.gz ref.fa\n", name)

		_, _ = fmt.Fprintln(out, "\nCompression:")
		_, _ = fmt.Fprintln(out, "  -o, --output file           Output path [<input>.gz]")
		_, _ = fmt.Fprintf(out, "      --block-size int        Uncompressed bytes per block (max %d) [%s]\n", bgzf.BlockSize, def("block-size"))
		_, _ = fmt.Fprintf(out, "  -f, --force                 Overwrite an existing output [%s]\n", def("force"))
		_, _ = fmt.Fprintf(out, "      --no-index              Skip writing .fai/.gzi [%s]\n", def("no-index"))
	})
	return fs
}

var Examples = []string{
	"faidx-bgzip ref.fa                    # ref.fa.gz + ref.fa.gz.fai + ref.fa.gz.gzi",
	"faidx-bgzip -o small.fa.gz --block-size 16384 ref.fa",
	"faidx ref.fa.gz chr1:1-100            # fetch from the result",
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	clibase.Register(fs, &opt.Common)
	fs.StringVar(&opt.Output, "output", "", "output path [<input>.gz]")
	fs.StringVar(&opt.Output, "o", "", "alias of --output")
	fs.IntVar(&opt.BlockSize, "block-size", bgzf.BlockSize, fmt.Sprintf("uncompressed bytes per block [%d]", bgzf.BlockSize))
	fs.BoolVar(&opt.Force, "force", false, "overwrite an existing output [false]")
	fs.BoolVar(&opt.Force, "f", false, "alias of --force")
	fs.BoolVar(&opt.NoIndex, "no-index", false, "skip writing .fai/.gzi [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")
	fs.BoolVar(&help, "help", false, "show this help message [false]")

	flagArgs, pos := cli.SplitArgs(fs, argv)
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
	switch len(pos) {
	case 0:
	case 1:
		opt.Input = pos[0]
	default:
		return opt, fmt.Errorf("expected one input file, got %d", len(pos))
	}
	if err := clibase.Validate(&opt.Common, opt.Input); err != nil {
		return opt, err
	}
	if opt.Output == "" {
		opt.Output = opt.Input + ".gz"
	}
	if opt.Output == opt.Input {
		return opt, errors.New("--output must differ from the input file")
	}
	if opt.BlockSize < 1 || opt.BlockSize > bgzf.BlockSize {
		return opt, fmt.Errorf("--block-size must be between 1 and %d", bgzf.BlockSize)
	}
	return opt, nil
}
