// Package bgzi maps positions in the decompressed stream of a BGZF file to
// the compressed blocks that hold them, and reads decompressed spans by
// touching only those blocks. The on-disk form is the samtools .gzi file.
package bgzi

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/biogo/hts/bgzf"

	"faidx/core/storage"
)

// ErrNotBGZF is returned when a block header lacks the BGZF BC subfield.
var ErrNotBGZF = errors.New("not a BGZF file")

// Block is one compression block: where it starts in the file and where
// its data starts in the decompressed stream.
type Block struct {
	Compressed   int64
	Uncompressed int64
}

// BlockMap is ordered by both fields; the first entry is always {0, 0}.
type BlockMap struct {
	blocks []Block
}

// New builds a map from blocks, adding the implicit first block if absent.
func New(blocks []Block) (*BlockMap, error) {
	bs := make([]Block, 0, len(blocks)+1)
	if len(blocks) == 0 || blocks[0] != (Block{}) {
		bs = append(bs, Block{})
	}
	bs = append(bs, blocks...)
	for i := 1; i < len(bs); i++ {
		if bs[i].Compressed <= bs[i-1].Compressed || bs[i].Uncompressed < bs[i-1].Uncompressed {
			return nil, fmt.Errorf("block %d out of order: %+v after %+v", i, bs[i], bs[i-1])
		}
	}
	return &BlockMap{blocks: bs}, nil
}

func (m *BlockMap) Len() int { return len(m.blocks) }

func (m *BlockMap) Blocks() []Block {
	out := make([]Block, len(m.blocks))
	copy(out, m.blocks)
	return out
}

// Locate returns the index of the block holding decompressed position pos.
func (m *BlockMap) Locate(pos int64) int {
	i := sort.Search(len(m.blocks), func(i int) bool { return m.blocks[i].Uncompressed > pos })
	return i - 1
}

// Virtual translates a decompressed position into a BGZF virtual offset.
func (m *BlockMap) Virtual(pos int64) (bgzf.Offset, error) {
	if pos < 0 {
		return bgzf.Offset{}, fmt.Errorf("negative position %d", pos)
	}
	b := m.blocks[m.Locate(pos)]
	within := pos - b.Uncompressed
	if within > 0xffff {
		return bgzf.Offset{}, fmt.Errorf("position %d is %d bytes into block at %d: %w", pos, within, b.Compressed, ErrNotBGZF)
	}
	return bgzf.Offset{File: b.Compressed, Block: uint16(within)}, nil
}

// next returns the compressed start of the block after the one at vo, or
// size when vo lies in the last block.
func (m *BlockMap) next(vo bgzf.Offset, size int64) int64 {
	i := sort.Search(len(m.blocks), func(i int) bool { return m.blocks[i].Compressed > vo.File })
	if i < len(m.blocks) {
		return m.blocks[i].Compressed
	}
	return size
}

// Scan walks the block headers of a BGZF file and records every block
// that carries data.
func Scan(ctx context.Context, rr storage.RangeReader) (*BlockMap, error) {
	var (
		blocks []Block
		pos    int64
		upos   int64
		size   = rr.Size()
	)
	for pos < size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bsize, err := blockSize(ctx, rr, pos)
		if err != nil {
			return nil, err
		}
		if pos+bsize > size {
			return nil, fmt.Errorf("block at %d overruns file: %w", pos, io.ErrUnexpectedEOF)
		}
		tail, err := rr.ReadRange(ctx, pos+bsize-4, 4)
		if err != nil {
			return nil, err
		}
		isize := int64(binary.LittleEndian.Uint32(tail))
		if isize > 0 || pos == 0 {
			blocks = append(blocks, Block{Compressed: pos, Uncompressed: upos})
		}
		pos += bsize
		upos += isize
	}
	return New(blocks)
}

// blockSize reads the gzip member header at pos and returns BSIZE+1.
func blockSize(ctx context.Context, rr storage.RangeReader, pos int64) (int64, error) {
	if pos+12 > rr.Size() {
		return 0, fmt.Errorf("block at %d: truncated header: %w", pos, ErrNotBGZF)
	}
	h, err := rr.ReadRange(ctx, pos, 12)
	if err != nil {
		return 0, err
	}
	if h[0] != 0x1f || h[1] != 0x8b || h[2] != 8 || h[3]&4 == 0 {
		return 0, fmt.Errorf("block at %d: bad gzip header: %w", pos, ErrNotBGZF)
	}
	xlen := int(binary.LittleEndian.Uint16(h[10:12]))
	if pos+12+int64(xlen) > rr.Size() {
		return 0, fmt.Errorf("block at %d: truncated header: %w", pos, ErrNotBGZF)
	}
	extra, err := rr.ReadRange(ctx, pos+12, xlen)
	if err != nil {
		return 0, err
	}
	for i := 0; i+4 <= len(extra); {
		slen := int(binary.LittleEndian.Uint16(extra[i+2 : i+4]))
		if extra[i] == 'B' && extra[i+1] == 'C' && slen == 2 && i+6 <= len(extra) {
			return int64(binary.LittleEndian.Uint16(extra[i+4:i+6])) + 1, nil
		}
		i += 4 + slen
	}
	return 0, fmt.Errorf("block at %d: no BC subfield: %w", pos, ErrNotBGZF)
}

// IsBGZF reports whether head starts with a BGZF block header.
func IsBGZF(head []byte) bool {
	return len(head) >= 16 &&
		head[0] == 0x1f && head[1] == 0x8b && head[2] == 8 && head[3]&4 != 0 &&
		head[12] == 'B' && head[13] == 'C'
}

// WriteGZI writes m in samtools .gzi layout: a little-endian uint64 entry
// count followed by (compressed, uncompressed) uint64 pairs. The first
// block is implicit.
func WriteGZI(w io.Writer, m *BlockMap) error {
	rest := m.blocks[1:]
	buf := make([]byte, 8+16*len(rest))
	binary.LittleEndian.PutUint64(buf, uint64(len(rest)))
	for i, b := range rest {
		binary.LittleEndian.PutUint64(buf[8+16*i:], uint64(b.Compressed))
		binary.LittleEndian.PutUint64(buf[16+16*i:], uint64(b.Uncompressed))
	}
	_, err := w.Write(buf)
	return err
}

// ReadGZI loads a .gzi file.
func ReadGZI(r io.Reader) (*BlockMap, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("gzi count: %w", err)
	}
	if n > 1<<40 {
		return nil, fmt.Errorf("gzi count %d implausible", n)
	}
	blocks := make([]Block, 0, min(n, 1<<16))
	var pair [2]uint64
	for i := uint64(0); i < n; i++ {
		if err := binary.Read(r, binary.LittleEndian, &pair); err != nil {
			return nil, fmt.Errorf("gzi entry %d: %w", i, err)
		}
		blocks = append(blocks, Block{Compressed: int64(pair[0]), Uncompressed: int64(pair[1])})
	}
	return New(blocks)
}
