// internal/bgzipapp/app.go
package bgzipapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"faidx/core/bgzi"
	"faidx/core/fasta"
	"faidx/core/storage"
	"faidx/internal/bgzipcli"
	"faidx/internal/clibase"
	"faidx/internal/cmdutil"
	"faidx/internal/version"
	"faidx/internal/writers"
)

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := bgzipcli.NewFlagSet("faidx-bgzip")
	fs.SetOutput(io.Discard)

	opts, err := bgzipcli.ParseArgs(fs, argv)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr)
	case errors.Is(err, clibase.ErrPrintedAndExitOK):
		clibase.PrintExamples(outw, "faidx-bgzip", bgzipcli.Examples...)
		return flush(outw, stderr)
	case err != nil:
		cmdutil.Errorf(stderr, "%v", err)
		_, _ = fmt.Fprintln(stderr, "run 'faidx-bgzip --help' for usage")
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "faidx-bgzip version %s\n", version.Version)
		return flush(outw, stderr)
	}

	if err := compress(ctx, opts); err != nil {
		return fail(stderr, err)
	}
	if opts.NoIndex {
		return 0
	}

	f, err := fasta.Open(ctx, opts.Output, fasta.Options{
		IndexName: opts.FAIPath,
		GZIName:   opts.GZIPath,
		Rebuild:   true,
	})
	if err != nil {
		return fail(stderr, err)
	}
	defer f.Close()
	ix, err := f.Index(ctx)
	if err != nil {
		return fail(stderr, err)
	}
	for _, name := range ix.Duplicates() {
		cmdutil.Warnf(stderr, opts.Quiet, "duplicate sequence name %q: only the last record is reachable by name", name)
	}
	if _, err := cmdutil.PersistIndexes(ctx, f); err != nil {
		return fail(stderr, err)
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// compress streams opts.Input into a BGZF file at opts.Output.
func compress(ctx context.Context, opts bgzipcli.Options) error {
	if _, err := os.Stat(opts.Output); err == nil && !opts.Force {
		return fmt.Errorf("%s exists (use --force to overwrite)", opts.Output)
	}
	src, err := storage.OpenLocal(opts.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	head, err := src.ReadRange(ctx, 0, int(min(src.Size(), 2)))
	if err != nil {
		return err
	}
	if len(head) == 2 && head[0] == 0x1f && head[1] == 0x8b {
		return fmt.Errorf("%s is already gzip compressed", opts.Input)
	}

	in, err := src.Stream(ctx)
	if err != nil {
		return err
	}
	defer in.Close()
	return cmdutil.WriteFileAtomic(opts.Output, func(w io.Writer) error {
		return bgzi.Compress(w, in, opts.BlockSize)
	})
}

func fail(stderr io.Writer, err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	cmdutil.Errorf(stderr, "%v", err)
	return 3
}

func flush(outw *bufio.Writer, stderr io.Writer) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return 3
	}
	return 0
}
