package storage

import (
	"context"
	"io"
	"os"
)

// File wraps an already open *os.File. Close closes it.
type File struct {
	f    *os.File
	size int64
}

// FromFile stats f and returns a RangeReader over it.
func FromFile(f *os.File) (*File, error) {
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &File{f: f, size: st.Size()}, nil
}

func (f *File) Size() int64 { return f.size }

func (f *File) ReadRange(ctx context.Context, off int64, n int) ([]byte, error) {
	return readRange(ctx, f.f, f.size, off, n)
}

// Stream reads through a section so concurrent ReadRange calls are unaffected.
// Closing the stream leaves f open.
func (f *File) Stream(ctx context.Context) (io.ReadCloser, error) {
	return &ctxReader{ctx: ctx, r: io.NewSectionReader(f.f, 0, f.size)}, nil
}

func (f *File) Close() error { return f.f.Close() }
