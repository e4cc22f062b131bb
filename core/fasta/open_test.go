package fasta

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faidx/core/bgzi"
	"faidx/core/storage"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, data, 0o644))
	return fn
}

func persist(t *testing.T, fn string, write func(*bytes.Buffer) error) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, write(&buf))
	require.NoError(t, os.WriteFile(fn, buf.Bytes(), 0o644))
}

func TestOpenPlainThenPersisted(t *testing.T) {
	ctx := context.Background()
	fn := writeFile(t, "x.fa", []byte(scenario))

	f, err := Open(ctx, fn, Options{})
	require.NoError(t, err)
	assert.False(t, f.Compressed)
	assert.False(t, f.IndexLoaded)
	assert.Equal(t, Unbuilt, f.State())
	s, err := f.Fetch(ctx, "seq1", 4, 10)
	require.NoError(t, err)
	assert.Equal(t, "ACGTAC", s)
	persist(t, fn+".fai", func(b *bytes.Buffer) error { return f.WriteIndex(ctx, b) })
	require.Error(t, f.WriteBlocks(ctx, &bytes.Buffer{}))
	require.NoError(t, f.Close())

	f, err = Open(ctx, fn, Options{})
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, f.IndexLoaded)
	s, err = f.Fetch(ctx, "seq2", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, "TTTT", s)
	assert.Equal(t, int64(1), f.IndexRuns())
}

func TestOpenRebuildIgnoresPersisted(t *testing.T) {
	ctx := context.Background()
	fn := writeFile(t, "x.fa", []byte(scenario))
	require.NoError(t, os.WriteFile(fn+".fai", []byte("garbage\n"), 0o644))

	_, err := func() (string, error) {
		f, err := Open(ctx, fn, Options{})
		require.NoError(t, err)
		defer f.Close()
		return f.Fetch(ctx, "seq1", 0, 1)
	}()
	require.Error(t, err)

	f, err := Open(ctx, fn, Options{Rebuild: true})
	require.NoError(t, err)
	defer f.Close()
	s, err := f.Fetch(ctx, "seq1", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", s)
}

func TestOpenBGZF(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	require.NoError(t, bgzi.Compress(&buf, strings.NewReader(scenario), 10))
	fn := writeFile(t, "x.fa.gz", buf.Bytes())

	f, err := Open(ctx, fn, Options{})
	require.NoError(t, err)
	assert.True(t, f.Compressed)
	assert.False(t, f.BlocksLoaded)
	s, err := f.Fetch(ctx, "seq1", 0, 12)
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGTACGT", s)
	persist(t, fn+".fai", func(b *bytes.Buffer) error { return f.WriteIndex(ctx, b) })
	persist(t, fn+".gzi", func(b *bytes.Buffer) error { return f.WriteBlocks(ctx, b) })
	require.NoError(t, f.Close())

	f, err = Open(ctx, fn, Options{})
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, f.IndexLoaded)
	assert.True(t, f.BlocksLoaded)
	s, err = f.Fetch(ctx, "seq1", 4, 10)
	require.NoError(t, err)
	assert.Equal(t, "ACGTAC", s)
}

func TestOpenPlainGzipRejected(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(scenario))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	fn := writeFile(t, "x.fa.gz", buf.Bytes())

	_, err = Open(context.Background(), fn, Options{})
	assert.ErrorIs(t, err, ErrPlainGzip)
}

func TestOpenWithProvider(t *testing.T) {
	ctx := context.Background()
	fs := storage.MemoryFS{
		"ref.fa":     []byte(scenario),
		"ref.fa.fai": []byte("seq1\t12\t11\t8\t9\nseq2\t4\t31\t4\t5\n"),
	}
	f, err := Open(ctx, "ref.fa", Options{Provider: fs})
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, f.IndexLoaded)
	s, err := f.Fetch(ctx, "1", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "TT", s)

	_, err = Open(ctx, "missing.fa", Options{Provider: fs})
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	fn := writeFile(t, "x.fa", []byte(scenario))
	fh, err := os.Open(fn)
	require.NoError(t, err)
	f, err := OpenFile(context.Background(), fh)
	require.NoError(t, err)
	defer f.Close()
	s, err := f.Fetch(context.Background(), "seq1", 6, 12)
	require.NoError(t, err)
	assert.Equal(t, "GTACGT", s)
}
