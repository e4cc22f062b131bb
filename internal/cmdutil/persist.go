// internal/cmdutil/persist.go
package cmdutil

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"faidx/core/fasta"
)

// WriteFileAtomic writes path through a temp file in the same directory and
// renames it into place, so readers never observe a partial index.
func WriteFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// PersistIndexes writes the .fai (and .gzi for BGZF) of f for every
// companion that was built rather than loaded. It returns the paths written.
func PersistIndexes(ctx context.Context, f *fasta.File) ([]string, error) {
	var wrote []string
	if !f.IndexLoaded {
		err := WriteFileAtomic(f.IndexPath, func(w io.Writer) error { return f.WriteIndex(ctx, w) })
		if err != nil {
			return wrote, fmt.Errorf("write %s: %w", f.IndexPath, err)
		}
		wrote = append(wrote, f.IndexPath)
	}
	if f.Compressed && !f.BlocksLoaded {
		err := WriteFileAtomic(f.GZIPath, func(w io.Writer) error { return f.WriteBlocks(ctx, w) })
		if err != nil {
			return wrote, fmt.Errorf("write %s: %w", f.GZIPath, err)
		}
		wrote = append(wrote, f.GZIPath)
	}
	return wrote, nil
}
