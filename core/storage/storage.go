// Package storage provides the byte-addressable files the FASTA accessors
// read from: a ranged read for fetches and a full stream for index builds.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrShortRange is returned when a requested range runs past the end of the file.
var ErrShortRange = errors.New("range past end of file")

// RangeReader is a random-access view of one file.
type RangeReader interface {
	// ReadRange returns exactly n bytes starting at off.
	ReadRange(ctx context.Context, off int64, n int) ([]byte, error)
	// Stream returns the whole file from offset 0.
	Stream(ctx context.Context) (io.ReadCloser, error)
	Size() int64
	Close() error
}

// Provider opens RangeReaders by name.
type Provider interface {
	Open(ctx context.Context, name string) (RangeReader, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, name string) (RangeReader, error)

func (f ProviderFunc) Open(ctx context.Context, name string) (RangeReader, error) { return f(ctx, name) }

// readRange is the shared ReadRange over an io.ReaderAt of known size.
func readRange(ctx context.Context, ra io.ReaderAt, size, off int64, n int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if off < 0 || n < 0 {
		return nil, fmt.Errorf("invalid range %d+%d", off, n)
	}
	if off+int64(n) > size {
		return nil, fmt.Errorf("read %d+%d of %d: %w", off, n, size, ErrShortRange)
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := ra.ReadAt(buf, off); err != nil && !(errors.Is(err, io.EOF) && off+int64(n) == size) {
		return nil, err
	}
	return buf, nil
}

// ctxReader stops a stream once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
	c   io.Closer
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func (c *ctxReader) Close() error {
	if c.c == nil {
		return nil
	}
	return c.c.Close()
}
