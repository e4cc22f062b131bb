// internal/cli/flagset.go
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"faidx/internal/clibase"
	"faidx/internal/writers"
)

// NewFlagSet returns a ContinueOnError FlagSet with the faidx usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "random access to plain and BGZF-compressed FASTA", func(out io.Writer, def func(string) string) {
		fmt.Fprintf(out, "Usage:\n  %s [flags] <file.fa[.gz]> [region ...]\n\n", name)
		fmt.Fprintln(out, "Without regions the index is built and written (<input>.fai, plus <input>.gzi for BGZF).")
		fmt.Fprintln(out, "Regions are name, name:start or name:start-end (1-based, inclusive).")

		fmt.Fprintln(out, "\nFetch:")
		fmt.Fprintln(out, "  -r, --region-file file      Read regions from file, one per line")
		fmt.Fprintf(out, "  -l, --list                  List index records [%s]\n", def("list"))
		fmt.Fprintf(out, "      --continue              Warn and skip regions that cannot be fetched [%s]\n", def("continue"))
		fmt.Fprintf(out, "  -t, --threads int           Regions fetched in parallel [%s]\n", def("threads"))
		fmt.Fprintf(out, "      --rebuild               Rebuild the index even if one exists [%s]\n", def("rebuild"))
		fmt.Fprintf(out, "      --no-write              Do not write a freshly built index [%s]\n", def("no-write"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output: %s [%s]\n", strings.Join(writers.Formats(), " | "), def("output"))
		fmt.Fprintf(out, "  -w, --width int             FASTA line width (0 = no wrapping) [%s]\n", def("width"))
		fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --no-match-exit-code int  Exit code when a region is not found [%s]\n", def("no-match-exit-code"))
	})
	return fs
}

// Examples lists the quickstart lines printed by --examples.
var Examples = []string{
	"faidx ref.fa                          # build and write ref.fa.fai",
	"faidx ref.fa chr1:1001-2000           # fetch a region as FASTA",
	"faidx ref.fa.gz chr2 -o jsonl         # BGZF input, JSONL output",
	"faidx --list -o tsv ref.fa            # names, lengths and offsets",
	"faidx -r regions.txt -t 4 ref.fa      # many regions in parallel",
}
