// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"faidx/pkg/api"
)

// Options shared by region writers.
type Options struct {
	Width  int  // FASTA line width (0 = single line)
	Header bool // TSV header row
}

// RegionFactory starts a writer goroutine: values sent on the returned
// channel are written to out; the error channel yields once after the
// input channel is closed.
type RegionFactory func(out io.Writer, o Options, bufSize int) (chan<- api.RegionV1, <-chan error)

// RecordWriter writes a full listing of index records.
type RecordWriter func(w io.Writer, recs []api.RecordV1, o Options) error

// Writer registries (format → handler). Registered in init() blocks of the
// format files; last registration wins.
var (
	regionWriters = map[string]RegionFactory{}
	recordWriters = map[string]RecordWriter{}
)

func RegisterRegion(format string, fn RegionFactory) { regionWriters[format] = fn }
func RegisterRecords(format string, fn RecordWriter) { recordWriters[format] = fn }

// Formats lists formats that have both a region and a record writer.
func Formats() []string {
	var out []string
	for f := range regionWriters {
		if _, ok := recordWriters[f]; ok {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// StartRegions dispatches to the registered region writer.
func StartRegions(format string, out io.Writer, o Options, bufSize int) (chan<- api.RegionV1, <-chan error, error) {
	fn, ok := regionWriters[format]
	if !ok {
		return nil, nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	in, errCh := fn(out, o, bufSize)
	return in, errCh, nil
}

// WriteRecords dispatches to the registered record writer.
func WriteRecords(format string, w io.Writer, recs []api.RecordV1, o Options) error {
	fn, ok := recordWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, recs, o)
}

// startLoop runs write over the input channel in a goroutine. If write
// stops early the rest of the input is drained so senders never block.
func startLoop(bufSize int, write func(in <-chan api.RegionV1) error) (chan<- api.RegionV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.RegionV1, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := write(in)
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
