// core/fasta/accessor.go
package fasta

import (
	"context"
	"fmt"

	"faidx/core/index"
	"faidx/core/storage"
)

// Accessor fetches subsequences from one FASTA file. How the index is
// obtained (IndexProvider) and how bytes are read (Source) are chosen at
// construction. Safe for concurrent use.
type Accessor struct {
	rr  storage.RangeReader
	idx IndexProvider
	src Source
}

// New composes an Accessor. A nil src means Plain.
func New(rr storage.RangeReader, idx IndexProvider, src Source) *Accessor {
	if src == nil {
		src = Plain{}
	}
	return &Accessor{rr: rr, idx: idx, src: src}
}

// NewLazyAccessor returns an Accessor that scans rr for its index on first
// use, along with the Lazy provider so callers can observe its state.
func NewLazyAccessor(rr storage.RangeReader, src Source) (*Accessor, *Lazy) {
	if src == nil {
		src = Plain{}
	}
	lz := NewLazy(ScanIndex(rr, src))
	return New(rr, lz, src), lz
}

// Index returns the index, building or loading it if needed.
func (a *Accessor) Index(ctx context.Context) (*index.Index, error) {
	return a.idx.Index(ctx)
}

// Record resolves key as a name, then as a numeric id.
func (a *Accessor) Record(ctx context.Context, key string) (index.Record, error) {
	ix, err := a.idx.Index(ctx)
	if err != nil {
		return index.Record{}, err
	}
	r, err := ix.Lookup(key)
	if err != nil {
		return index.Record{}, err
	}
	return *r, nil
}

// Names lists sequence names in file order.
func (a *Accessor) Names(ctx context.Context) ([]string, error) {
	ix, err := a.idx.Index(ctx)
	if err != nil {
		return nil, err
	}
	return ix.Names(), nil
}

// Length returns the sequence length of key.
func (a *Accessor) Length(ctx context.Context, key string) (int, error) {
	r, err := a.Record(ctx, key)
	if err != nil {
		return 0, err
	}
	return r.Length, nil
}

// Fetch returns bases [start, end) of the sequence named (or numbered) key.
func (a *Accessor) Fetch(ctx context.Context, key string, start, end int) (string, error) {
	ix, err := a.idx.Index(ctx)
	if err != nil {
		return "", err
	}
	rec, err := ix.Lookup(key)
	if err != nil {
		return "", err
	}
	return a.fetch(ctx, rec, start, end)
}

// FetchID is Fetch by record id.
func (a *Accessor) FetchID(ctx context.Context, id, start, end int) (string, error) {
	ix, err := a.idx.Index(ctx)
	if err != nil {
		return "", err
	}
	rec, ok := ix.ByID(id)
	if !ok {
		return "", &index.NotFoundError{Key: fmt.Sprint(id)}
	}
	return a.fetch(ctx, rec, start, end)
}

func (a *Accessor) fetch(ctx context.Context, rec *index.Record, start, end int) (string, error) {
	if start < 0 || end > rec.Length || start > end {
		return "", &index.RangeError{Name: rec.Name, Start: start, End: end, Length: rec.Length}
	}
	if start == end || rec.LineLength == 0 {
		return "", nil
	}
	first := rec.Position(start)
	last := rec.Position(end-1) + 1
	raw, err := a.src.Span(ctx, a.rr, first, last)
	if err != nil {
		return "", index.WrapIO("read "+rec.Name, err)
	}
	seq := unwrap(raw, rec, first, end-start)
	if len(seq) != end-start {
		return "", &index.ParseError{Reason: fmt.Sprintf("index does not match file: %s:%d-%d gave %d bases", rec.Name, start, end, len(seq))}
	}
	return string(seq), nil
}

// unwrap drops the terminator bytes of each wrapped line: every byte whose
// column within the record is LineLength or beyond.
func unwrap(raw []byte, rec *index.Record, first int64, want int) []byte {
	l, b := rec.LineLength, rec.LineBytes
	out := make([]byte, 0, want)
	col := int((first - rec.Offset) % int64(b))
	for _, c := range raw {
		if col < l {
			out = append(out, c)
		}
		if col++; col == b {
			col = 0
		}
	}
	return out
}

// Close releases the underlying file.
func (a *Accessor) Close() error { return a.rr.Close() }
