// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"faidx/core/fasta"
	"faidx/core/index"
	"faidx/internal/cli"
	"faidx/internal/clibase"
	"faidx/internal/cmdutil"
	"faidx/internal/region"
	"faidx/internal/version"
	"faidx/internal/writers"
	"faidx/pkg/api"
)

// errBadRegion marks region strings that do not parse.
var errBadRegion = errors.New("bad region")

// target is a region resolved against the index.
type target struct {
	text       string
	rec        *index.Record
	start, end int
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("faidx")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 0)
	case errors.Is(err, clibase.ErrPrintedAndExitOK):
		clibase.PrintExamples(outw, "faidx", cli.Examples...)
		return flush(outw, stderr, 0)
	case err != nil:
		cmdutil.Errorf(stderr, "%v", err)
		_, _ = fmt.Fprintln(stderr, "run 'faidx --help' for usage")
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "faidx version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	f, err := fasta.Open(ctx, opts.Input, fasta.Options{
		IndexName: opts.FAIPath,
		GZIName:   opts.GZIPath,
		Rebuild:   opts.Rebuild,
	})
	if err != nil {
		return fail(stderr, err, opts)
	}
	defer f.Close()

	ix, err := f.Index(ctx)
	if err != nil {
		return fail(stderr, err, opts)
	}
	for _, name := range ix.Duplicates() {
		cmdutil.Warnf(stderr, opts.Quiet, "duplicate sequence name %q: only the last record is reachable by name", name)
	}
	if !opts.NoWrite {
		if _, err := cmdutil.PersistIndexes(ctx, f); err != nil {
			if opts.IndexOnly() {
				return fail(stderr, err, opts)
			}
			cmdutil.Warnf(stderr, opts.Quiet, "%v", err)
		}
	}

	switch {
	case opts.IndexOnly():
		return 0
	case opts.List:
		if err := writers.WriteRecords(opts.Output, outw, records(ix), writers.Options{Header: opts.Header}); err != nil {
			return fail(stderr, err, opts)
		}
		return flush(outw, stderr, 0)
	}
	return fetch(ctx, outw, stderr, f, ix, opts)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func fetch(ctx context.Context, outw *bufio.Writer, stderr io.Writer, f *fasta.File, ix *index.Index, opts cli.Options) int {
	var (
		targets []target
		missed  int
	)
	for _, s := range opts.Regions {
		t, err := resolve(ix, s)
		if err != nil {
			if opts.Continue {
				cmdutil.Warnf(stderr, opts.Quiet, "skipping %v", err)
				missed++
				continue
			}
			return fail(stderr, err, opts)
		}
		if t.end > t.rec.Length {
			cmdutil.Warnf(stderr, opts.Quiet, "region %q extends past the end of %s (%d); truncated", s, t.rec.Name, t.rec.Length)
			t.end = t.rec.Length
		}
		targets = append(targets, t)
	}

	in, writeErr, err := writers.StartRegions(opts.Output, outw, writers.Options{Width: opts.Width, Header: opts.Header}, opts.Threads*4)
	if err != nil {
		return fail(stderr, err, opts)
	}

	_, ferr := cmdutil.RunOrdered(ctx, opts.Threads, targets,
		func(ctx context.Context, t target) (api.RegionV1, error) {
			seq, err := f.FetchID(ctx, t.rec.ID, t.start, t.end)
			if err != nil {
				return api.RegionV1{}, fmt.Errorf("%s: %w", t.text, err)
			}
			return api.RegionV1{
				Region: t.text, Name: t.rec.Name,
				Start: t.start, End: t.end, Length: t.end - t.start,
				Seq: seq, SourceFile: opts.Input,
			}, nil
		},
		func(r api.RegionV1) error {
			select {
			case in <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	close(in)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		cmdutil.Errorf(stderr, "%v", werr)
		return 3
	}
	if code := flush(outw, stderr, 0); code != 0 {
		return code
	}
	if ferr != nil {
		return fail(stderr, ferr, opts)
	}
	if missed > 0 {
		return opts.NoMatchExitCode
	}
	return 0
}

// resolve parses s and checks it against the index. Names are matched
// exactly; numeric ids are not accepted here.
func resolve(ix *index.Index, s string) (target, error) {
	r, err := region.Parse(s, func(name string) bool {
		_, ok := ix.ByName(name)
		return ok
	})
	if err != nil {
		return target{}, fmt.Errorf("%w: %v", errBadRegion, err)
	}
	rec, ok := ix.ByName(r.Name)
	if !ok {
		return target{}, &index.NotFoundError{Key: r.Name}
	}
	start, end := r.Bounds(rec.Length)
	if rec.Length > 0 && start >= rec.Length {
		return target{}, &index.RangeError{Name: rec.Name, Start: start, End: end, Length: rec.Length}
	}
	return target{text: r.Text, rec: rec, start: start, end: end}, nil
}

func records(ix *index.Index) []api.RecordV1 {
	recs := ix.Records()
	out := make([]api.RecordV1, len(recs))
	for i, r := range recs {
		out[i] = api.RecordV1{
			ID: r.ID, Name: r.Name, Length: r.Length, Offset: r.Offset,
			LineBases: r.LineLength, LineBytes: r.LineBytes, Description: r.Description,
		}
	}
	return out
}

// fail reports err and maps it to an exit code.
func fail(stderr io.Writer, err error, opts cli.Options) int {
	switch {
	case errors.Is(err, context.Canceled):
		return 130
	case writers.IsBrokenPipe(err):
		return 0
	}
	cmdutil.Errorf(stderr, "%v", err)
	switch {
	case errors.Is(err, index.ErrNotFound), errors.Is(err, index.ErrRange):
		return opts.NoMatchExitCode
	case errors.Is(err, errBadRegion):
		return 2
	}
	return 3
}

func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return 3
	}
	return code
}
