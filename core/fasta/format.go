// core/fasta/format.go
package fasta

import (
	"bufio"
	"io"
)

// DefaultWidth is the line width Writer uses when none is given.
const DefaultWidth = 60

// Writer serializes Items back to FASTA, wrapping sequence at a fixed
// width. Pieces of a split record (Offset > 0) continue the open record.
type Writer struct {
	w     *bufio.Writer
	width int
	col   int
	open  bool
}

// NewWriter returns a Writer wrapping at width (<= 0 means one line per record).
func NewWriter(w io.Writer, width int) *Writer {
	return &Writer{w: bufio.NewWriter(w), width: width}
}

func (fw *Writer) Write(it Item) error {
	if it.Kind == CommentItem {
		if err := fw.endLine(); err != nil {
			return err
		}
		_, err := fw.w.WriteString(";" + it.Text + "\n")
		return err
	}
	if it.Offset == 0 || !fw.open {
		if err := fw.endLine(); err != nil {
			return err
		}
		hdr := ">" + it.ID
		if it.Description != "" {
			hdr += " " + it.Description
		}
		if _, err := fw.w.WriteString(hdr + "\n"); err != nil {
			return err
		}
		fw.open = true
	}
	if err := fw.wrap(it.Seq); err != nil {
		return err
	}
	if it.IsLast {
		fw.open = false
		return fw.endLine()
	}
	return nil
}

func (fw *Writer) wrap(seq []byte) error {
	for len(seq) > 0 {
		n := len(seq)
		if fw.width > 0 && fw.col+n > fw.width {
			n = fw.width - fw.col
		}
		if _, err := fw.w.Write(seq[:n]); err != nil {
			return err
		}
		seq = seq[n:]
		fw.col += n
		if fw.width > 0 && fw.col == fw.width {
			if err := fw.w.WriteByte('\n'); err != nil {
				return err
			}
			fw.col = 0
		}
	}
	return nil
}

func (fw *Writer) endLine() error {
	if fw.col == 0 {
		return nil
	}
	fw.col = 0
	return fw.w.WriteByte('\n')
}

// Flush terminates any open line and flushes buffered output.
func (fw *Writer) Flush() error {
	if err := fw.endLine(); err != nil {
		return err
	}
	return fw.w.Flush()
}

// Format writes items as FASTA text.
func Format(w io.Writer, width int, items []Item) error {
	fw := NewWriter(w, width)
	for _, it := range items {
		if err := fw.Write(it); err != nil {
			return err
		}
	}
	return fw.Flush()
}
