// core/fasta/source.go
package fasta

import (
	"context"
	"io"

	"faidx/core/bgzi"
	"faidx/core/storage"
)

// Source turns positions of the (decompressed) FASTA text into bytes.
type Source interface {
	// Span returns text bytes [start, end).
	Span(ctx context.Context, rr storage.RangeReader, start, end int64) ([]byte, error)
	// Stream returns the whole text from the beginning.
	Stream(ctx context.Context, rr storage.RangeReader) (io.ReadCloser, error)
}

// Plain reads uncompressed files: text positions are file offsets.
type Plain struct{}

func (Plain) Span(ctx context.Context, rr storage.RangeReader, start, end int64) ([]byte, error) {
	return rr.ReadRange(ctx, start, int(end-start))
}

func (Plain) Stream(ctx context.Context, rr storage.RangeReader) (io.ReadCloser, error) {
	return rr.Stream(ctx)
}

// BGZF reads block-compressed files. Text positions are translated to
// virtual offsets through the block map, which is loaded on first use.
type BGZF struct {
	Blocks *Once[*bgzi.BlockMap]
}

// NewBGZF wraps a block map loader (ScanBlocks or LoadBlocks).
func NewBGZF(load func(context.Context) (*bgzi.BlockMap, error)) *BGZF {
	return &BGZF{Blocks: NewOnce(load)}
}

func (b *BGZF) Span(ctx context.Context, rr storage.RangeReader, start, end int64) ([]byte, error) {
	m, err := b.Blocks.Get(ctx)
	if err != nil {
		return nil, err
	}
	return bgzi.ReadSpan(ctx, rr, m, start, end)
}

func (b *BGZF) Stream(ctx context.Context, rr storage.RangeReader) (io.ReadCloser, error) {
	return bgzi.Stream(ctx, rr)
}
