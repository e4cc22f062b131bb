package bgzi

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faidx/core/storage"
)

func compressed(t *testing.T, data string, blockSize int) *storage.Memory {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Compress(&buf, strings.NewReader(data), blockSize))
	return storage.NewMemory(buf.Bytes())
}

func TestScanBlocks(t *testing.T) {
	data := strings.Repeat("ACGTACGTAC", 10) // 100 bytes
	rr := compressed(t, data, 30)

	m, err := Scan(context.Background(), rr)
	require.NoError(t, err)
	blocks := m.Blocks()
	require.Len(t, blocks, 4)
	for i, b := range blocks {
		assert.Equal(t, int64(30*i), b.Uncompressed)
	}
	assert.Equal(t, int64(0), blocks[0].Compressed)
	assert.True(t, IsBGZF(mustRead(t, rr, 0, 16)))
}

func TestReadSpanMatchesSource(t *testing.T) {
	data := strings.Repeat("ACGTTGCAAN", 25)
	rr := compressed(t, data, 17)
	m, err := Scan(context.Background(), rr)
	require.NoError(t, err)

	ctx := context.Background()
	for _, c := range [][2]int64{{0, 0}, {0, 1}, {0, 17}, {16, 18}, {17, 34}, {5, 200}, {0, 250}, {249, 250}} {
		got, err := ReadSpan(ctx, rr, m, c[0], c[1])
		require.NoError(t, err)
		assert.Equal(t, data[c[0]:c[1]], string(got), "span %v", c)
	}
}

func TestReadSpanTouchesOnlySpannedBlocks(t *testing.T) {
	data := strings.Repeat("A", 100)
	rr := &countingReader{Memory: compressed(t, data, 10)}
	m, err := Scan(context.Background(), rr)
	require.NoError(t, err)
	blocks := m.Blocks()

	rr.reads = nil
	_, err = ReadSpan(context.Background(), rr, m, 25, 35)
	require.NoError(t, err)
	require.Len(t, rr.reads, 1)
	assert.Equal(t, [2]int64{blocks[2].Compressed, blocks[4].Compressed - blocks[2].Compressed}, rr.reads[0])
}

func TestVirtual(t *testing.T) {
	m, err := New([]Block{{Compressed: 40, Uncompressed: 100}, {Compressed: 90, Uncompressed: 200}})
	require.NoError(t, err)

	vo, err := m.Virtual(150)
	require.NoError(t, err)
	assert.Equal(t, int64(40), vo.File)
	assert.Equal(t, uint16(50), vo.Block)

	vo, err = m.Virtual(99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), vo.File)
	assert.Equal(t, uint16(99), vo.Block)

	_, err = m.Virtual(200 + 0x10000)
	assert.ErrorIs(t, err, ErrNotBGZF)
}

func TestGZIRoundTrip(t *testing.T) {
	rr := compressed(t, strings.Repeat("ACGT", 100), 64)
	m, err := Scan(context.Background(), rr)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGZI(&buf, m))
	assert.Equal(t, 8+16*(m.Len()-1), buf.Len())

	got, err := ReadGZI(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Blocks(), got.Blocks())
}

func TestReadGZITruncated(t *testing.T) {
	_, err := ReadGZI(bytes.NewReader([]byte{2, 0, 0, 0, 0, 0, 0, 0, 1}))
	assert.Error(t, err)
}

func TestNewRejectsUnordered(t *testing.T) {
	_, err := New([]Block{{Compressed: 50, Uncompressed: 100}, {Compressed: 40, Uncompressed: 200}})
	assert.Error(t, err)
}

func TestScanPlainTextFails(t *testing.T) {
	for _, data := range []string{">s\nACGT\n", ">seq1\nACGTACGTACGT\n"} {
		_, err := Scan(context.Background(), storage.NewMemory([]byte(data)))
		assert.ErrorIs(t, err, ErrNotBGZF, "%d bytes", len(data))
	}
}

func TestScanPlainGzipFails(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(strings.Repeat("ACGT", 1000)))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Scan(context.Background(), storage.NewMemory(buf.Bytes()))
	assert.ErrorIs(t, err, ErrNotBGZF)
}

func TestScanTruncatedExtraFails(t *testing.T) {
	// gzip magic with FEXTRA set and XLEN pointing past the end.
	head := []byte{0x1f, 0x8b, 8, 4, 0, 0, 0, 0, 0, 0xff, 6, 0, 'B', 'C'}
	_, err := Scan(context.Background(), storage.NewMemory(head))
	assert.ErrorIs(t, err, ErrNotBGZF)
}

func TestStream(t *testing.T) {
	data := strings.Repeat("ACGT\n", 40)
	rc, err := Stream(context.Background(), compressed(t, data, 33))
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, string(got))
}

func mustRead(t *testing.T, rr storage.RangeReader, off int64, n int) []byte {
	t.Helper()
	b, err := rr.ReadRange(context.Background(), off, n)
	require.NoError(t, err)
	return b
}

type countingReader struct {
	*storage.Memory
	reads [][2]int64
}

func (c *countingReader) ReadRange(ctx context.Context, off int64, n int) ([]byte, error) {
	c.reads = append(c.reads, [2]int64{off, int64(n)})
	return c.Memory.ReadRange(ctx, off, n)
}
