// core/fasta/open.go
package fasta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"faidx/core/bgzi"
	"faidx/core/index"
	"faidx/core/storage"
)

// ErrPlainGzip is returned for gzip input that is not BGZF: it cannot be
// read at random offsets.
var ErrPlainGzip = errors.New("gzip input is not block-compressed (BGZF); recompress it with faidx-bgzip")

// Options control Open.
type Options struct {
	// Provider resolves the data file and its companions. Defaults to
	// storage.LocalProvider.
	Provider storage.Provider
	// IndexName and GZIName default to name+".fai" and name+".gzi".
	IndexName string
	GZIName   string
	// Rebuild ignores persisted .fai/.gzi files and scans the data instead.
	Rebuild bool
}

// File is an Accessor opened by name, with the companions it was wired to.
type File struct {
	*Accessor
	Name       string
	Compressed bool

	// IndexPath and GZIPath are where the companions were looked up.
	IndexPath string
	GZIPath   string

	// IndexLoaded and BlocksLoaded tell whether persisted files were used.
	IndexLoaded  bool
	BlocksLoaded bool

	lazy    *Lazy
	bgzf    *BGZF
	closers []io.Closer
}

// Open wires an Accessor for name. BGZF input is detected from its first
// block header. A persisted .fai (and .gzi) next to the data is used when
// present; otherwise the index is built on first use.
func Open(ctx context.Context, name string, opts Options) (*File, error) {
	p := opts.Provider
	if p == nil {
		p = storage.LocalProvider
	}
	if opts.IndexName == "" {
		opts.IndexName = name + ".fai"
	}
	if opts.GZIName == "" {
		opts.GZIName = name + ".gzi"
	}

	rr, err := p.Open(ctx, name)
	if err != nil {
		return nil, index.WrapIO("open "+name, err)
	}
	f := &File{Name: name, IndexPath: opts.IndexName, GZIPath: opts.GZIName, closers: []io.Closer{rr}}

	compressed, err := sniff(ctx, rr)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	var src Source = Plain{}
	if compressed {
		f.Compressed = true
		load := ScanBlocks(rr)
		if gzi, ok, err := f.companion(ctx, p, opts.GZIName, opts.Rebuild); err != nil {
			_ = f.Close()
			return nil, err
		} else if ok {
			load, f.BlocksLoaded = LoadBlocks(gzi), true
		}
		f.bgzf = NewBGZF(load)
		src = f.bgzf
	}

	build := ScanIndex(rr, src)
	if fai, ok, err := f.companion(ctx, p, opts.IndexName, opts.Rebuild); err != nil {
		_ = f.Close()
		return nil, err
	} else if ok {
		build, f.IndexLoaded = LoadIndex(fai), true
	}
	f.lazy = NewLazy(build)
	f.Accessor = New(rr, f.lazy, src)
	return f, nil
}

// OpenFile wires a lazily indexed Accessor over an already open file.
func OpenFile(ctx context.Context, fh *os.File) (*File, error) {
	rr, err := storage.FromFile(fh)
	if err != nil {
		return nil, index.WrapIO("stat "+fh.Name(), err)
	}
	f := &File{Name: fh.Name(), IndexPath: fh.Name() + ".fai", GZIPath: fh.Name() + ".gzi", closers: []io.Closer{rr}}
	compressed, err := sniff(ctx, rr)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	var src Source = Plain{}
	if compressed {
		f.Compressed = true
		f.bgzf = NewBGZF(ScanBlocks(rr))
		src = f.bgzf
	}
	f.lazy = NewLazy(ScanIndex(rr, src))
	f.Accessor = New(rr, f.lazy, src)
	return f, nil
}

// companion opens an optional side file. A missing file is not an error.
func (f *File) companion(ctx context.Context, p storage.Provider, name string, skip bool) (storage.RangeReader, bool, error) {
	if skip {
		return nil, false, nil
	}
	rr, err := p.Open(ctx, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, index.WrapIO("open "+name, err)
	}
	f.closers = append(f.closers, rr)
	return rr, true, nil
}

// sniff detects gzip by magic number (1F 8B), then BGZF by its BC subfield.
func sniff(ctx context.Context, rr storage.RangeReader) (bool, error) {
	n := 16
	if rr.Size() < int64(n) {
		n = int(rr.Size())
	}
	head, err := rr.ReadRange(ctx, 0, n)
	if err != nil {
		return false, index.WrapIO("read header", err)
	}
	if len(head) >= 2 && head[0] == 0x1f && head[1] == 0x8b {
		if !bgzi.IsBGZF(head) {
			return false, ErrPlainGzip
		}
		return true, nil
	}
	return false, nil
}

// State reports whether the index has been built or loaded yet.
func (f *File) State() State { return f.lazy.State() }

// IndexRuns reports how many index builds or loads have been started.
func (f *File) IndexRuns() int64 { return f.lazy.Runs() }

// WriteIndex writes the index in .fai layout.
func (f *File) WriteIndex(ctx context.Context, w io.Writer) error {
	ix, err := f.Index(ctx)
	if err != nil {
		return err
	}
	return index.WriteFAI(w, ix)
}

// WriteBlocks writes the block map in .gzi layout. Only valid for BGZF input.
func (f *File) WriteBlocks(ctx context.Context, w io.Writer) error {
	if f.bgzf == nil {
		return fmt.Errorf("%s is not BGZF compressed", f.Name)
	}
	m, err := f.bgzf.Blocks.Get(ctx)
	if err != nil {
		return err
	}
	return bgzi.WriteGZI(w, m)
}

// Close closes the data file and any companions.
func (f *File) Close() error {
	var err error
	for _, c := range f.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
