package bgzi

import (
	"io"

	"github.com/biogo/hts/bgzf"
)

// Compress writes r to w as BGZF, closing a block every blockSize
// uncompressed bytes. blockSize <= 0 or above bgzf.BlockSize uses
// bgzf.BlockSize. The EOF marker block is written last.
func Compress(w io.Writer, r io.Reader, blockSize int) error {
	if blockSize <= 0 || blockSize > bgzf.BlockSize {
		blockSize = bgzf.BlockSize
	}
	bg := bgzf.NewWriter(w, 1)
	buf := make([]byte, blockSize)
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if _, werr := bg.Write(buf[:n]); werr != nil {
				_ = bg.Close()
				return werr
			}
			if ferr := bg.Flush(); ferr != nil {
				_ = bg.Close()
				return ferr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			_ = bg.Close()
			return err
		}
	}
	return bg.Close()
}
