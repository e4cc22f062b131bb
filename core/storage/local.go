package storage

import (
	"context"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Local is a file on disk accessed through a read-only memory map.
type Local struct {
	path string
	ra   *mmap.ReaderAt
}

// OpenLocal maps the file at path.
func OpenLocal(path string) (*Local, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &Local{path: path, ra: ra}, nil
}

// LocalProvider opens names as local paths.
var LocalProvider Provider = ProviderFunc(func(_ context.Context, name string) (RangeReader, error) {
	return OpenLocal(name)
})

func (l *Local) Path() string { return l.path }
func (l *Local) Size() int64  { return int64(l.ra.Len()) }

func (l *Local) ReadRange(ctx context.Context, off int64, n int) ([]byte, error) {
	return readRange(ctx, l.ra, l.Size(), off, n)
}

// Stream reads through a regular file handle so a build scan does not
// fault the whole mapping in at once.
func (l *Local) Stream(ctx context.Context) (io.ReadCloser, error) {
	fh, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	return &ctxReader{ctx: ctx, r: fh, c: fh}, nil
}

func (l *Local) Close() error { return l.ra.Close() }
