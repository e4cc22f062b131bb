// core/fasta/provider.go
package fasta

import (
	"context"

	"faidx/core/bgzi"
	"faidx/core/index"
	"faidx/core/storage"
)

// IndexProvider supplies the index an Accessor resolves records against.
type IndexProvider interface {
	Index(ctx context.Context) (*index.Index, error)
}

// IndexFunc adapts a function to IndexProvider.
type IndexFunc func(ctx context.Context) (*index.Index, error)

func (f IndexFunc) Index(ctx context.Context) (*index.Index, error) { return f(ctx) }

// Prebuilt serves an index that already exists in memory.
type Prebuilt struct{ Ix *index.Index }

func (p Prebuilt) Index(context.Context) (*index.Index, error) { return p.Ix, nil }

// Lazy produces its index on first use (by scanning or loading) and
// serves the cached copy afterwards. See Once for the coordination rules.
type Lazy struct {
	*Once[*index.Index]
}

func NewLazy(fn IndexFunc) *Lazy {
	return &Lazy{Once: NewOnce[*index.Index](fn)}
}

func (l *Lazy) Index(ctx context.Context) (*index.Index, error) { return l.Get(ctx) }

// ScanIndex returns an IndexFunc that streams rr through src and builds
// the index in one pass.
func ScanIndex(rr storage.RangeReader, src Source) IndexFunc {
	return func(ctx context.Context) (*index.Index, error) {
		rc, err := src.Stream(ctx, rr)
		if err != nil {
			return nil, index.WrapIO("open stream", err)
		}
		defer rc.Close()
		ix, err := index.Build(ctx, index.NewScanner(rc))
		if err != nil {
			return nil, index.WrapIO("build index", err)
		}
		return ix, nil
	}
}

// LoadIndex returns an IndexFunc that reads a persisted .fai.
func LoadIndex(rr storage.RangeReader) IndexFunc {
	return func(ctx context.Context) (*index.Index, error) {
		rc, err := rr.Stream(ctx)
		if err != nil {
			return nil, index.WrapIO("open index", err)
		}
		defer rc.Close()
		return index.ReadFAI(rc)
	}
}

// ScanBlocks returns a loader that walks the BGZF block headers of rr.
func ScanBlocks(rr storage.RangeReader) func(context.Context) (*bgzi.BlockMap, error) {
	return func(ctx context.Context) (*bgzi.BlockMap, error) {
		m, err := bgzi.Scan(ctx, rr)
		if err != nil {
			return nil, index.WrapIO("scan blocks", err)
		}
		return m, nil
	}
}

// LoadBlocks returns a loader that reads a persisted .gzi.
func LoadBlocks(rr storage.RangeReader) func(context.Context) (*bgzi.BlockMap, error) {
	return func(ctx context.Context) (*bgzi.BlockMap, error) {
		rc, err := rr.Stream(ctx)
		if err != nil {
			return nil, index.WrapIO("open gzi", err)
		}
		defer rc.Close()
		m, err := bgzi.ReadGZI(rc)
		if err != nil {
			return nil, &index.ParseError{Reason: err.Error()}
		}
		return m, nil
	}
}
