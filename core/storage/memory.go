package storage

import (
	"bytes"
	"context"
	"io"
	"os"
)

// Memory serves a byte slice. Useful for tests and for data that arrived
// over the network in one piece.
type Memory struct {
	data []byte
}

func NewMemory(data []byte) *Memory { return &Memory{data: data} }

func (m *Memory) Size() int64 { return int64(len(m.data)) }

func (m *Memory) ReadRange(ctx context.Context, off int64, n int) ([]byte, error) {
	return readRange(ctx, bytes.NewReader(m.data), m.Size(), off, n)
}

func (m *Memory) Stream(ctx context.Context) (io.ReadCloser, error) {
	return &ctxReader{ctx: ctx, r: bytes.NewReader(m.data)}, nil
}

func (m *Memory) Close() error { return nil }

// MemoryFS is a Provider over named in-memory files.
type MemoryFS map[string][]byte

func (fs MemoryFS) Open(_ context.Context, name string) (RangeReader, error) {
	data, ok := fs[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return NewMemory(data), nil
}
