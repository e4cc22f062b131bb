package bgzi

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/biogo/hts/bgzf"

	"faidx/core/storage"
)

// ReadSpan returns decompressed bytes [start, end). Only the compressed
// blocks from the one holding start to the one holding end-1 are read
// from rr and inflated.
func ReadSpan(ctx context.Context, rr storage.RangeReader, m *BlockMap, start, end int64) ([]byte, error) {
	if end <= start {
		return []byte{}, nil
	}
	first, err := m.Virtual(start)
	if err != nil {
		return nil, err
	}
	last, err := m.Virtual(end - 1)
	if err != nil {
		return nil, err
	}
	stop := m.next(last, rr.Size())
	raw, err := rr.ReadRange(ctx, first.File, int(stop-first.File))
	if err != nil {
		return nil, err
	}

	bg, err := bgzf.NewReader(bytes.NewReader(raw), 1)
	if err != nil {
		return nil, fmt.Errorf("inflate block at %d: %w", first.File, err)
	}
	defer bg.Close()
	if _, err := io.CopyN(io.Discard, bg, int64(first.Block)); err != nil {
		return nil, fmt.Errorf("inflate block at %d: %w", first.File, err)
	}
	out := make([]byte, end-start)
	if _, err := io.ReadFull(bg, out); err != nil {
		return nil, fmt.Errorf("inflate blocks %d-%d: %w", first.File, last.File, err)
	}
	return out, nil
}

// Stream decompresses the whole file, for index builds.
func Stream(ctx context.Context, rr storage.RangeReader) (io.ReadCloser, error) {
	rc, err := rr.Stream(ctx)
	if err != nil {
		return nil, err
	}
	bg, err := bgzf.NewReader(rc, 1)
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return &stream{Reader: bg, src: rc}, nil
}

type stream struct {
	*bgzf.Reader
	src io.Closer
}

func (s *stream) Close() error {
	err := s.Reader.Close()
	if cerr := s.src.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
