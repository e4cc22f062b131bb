// core/fasta/stream.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Kind tells sequence items from comments.
type Kind int

const (
	SequenceItem Kind = iota
	CommentItem
)

// Item is one parsed unit of a FASTA stream: a whole record, a piece of
// one, or a ';' comment line.
//
// Offset is 0-based within the record's unwrapped sequence. A record
// split by ParseOptions.MaxBufferedLines arrives as several items with
// increasing Offset; only the final one has IsLast set.
type Item struct {
	Kind        Kind
	ID          string
	Description string
	Offset      int
	Seq         []byte
	IsLast      bool
	Text        string
}

// ParseOptions tune Parse.
type ParseOptions struct {
	// MaxBufferedLines bounds how many sequence lines are held before a
	// partial item is emitted. 0 means whole records.
	MaxBufferedLines int
	// Comments emits ';' lines as CommentItem instead of dropping them.
	Comments bool
}

// Parse reads FASTA text from r and pushes items to emit in file order.
// Returning an error from emit stops the parse with that error.
// It is cancelable: returning promptly when ctx is Done, even mid-record.
//
// CRLF line endings are accepted here since streaming does not depend on
// byte offsets. index.Build rejects the same input because .fai line
// lengths would be wrong for it.
func Parse(ctx context.Context, r io.Reader, opts ParseOptions, emit func(Item) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		cur      *Item
		seq      = make([]byte, 0, 1<<16)
		buffered int
		emitted  int
	)

	flush := func(last bool) error {
		if cur == nil {
			return nil
		}
		it := *cur
		it.Offset = emitted
		it.Seq = append([]byte(nil), seq...)
		it.IsLast = last
		emitted += len(seq)
		seq = seq[:0]
		buffered = 0
		return emit(it)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimRight(sc.Bytes(), "\r")
		switch {
		case len(line) == 0:
			continue
		case line[0] == ';':
			if opts.Comments {
				if err := emit(Item{Kind: CommentItem, Text: string(bytes.TrimSpace(line[1:]))}); err != nil {
					return err
				}
			}
		case line[0] == '>':
			if err := flush(true); err != nil {
				return err
			}
			id, desc := parseHeader(line[1:])
			cur = &Item{Kind: SequenceItem, ID: id, Description: desc}
			emitted = 0
		default:
			if cur == nil {
				return fmt.Errorf("fasta: sequence data before first header")
			}
			seq = append(seq, bytes.TrimSpace(line)...)
			buffered++
			if opts.MaxBufferedLines > 0 && buffered >= opts.MaxBufferedLines {
				if err := flush(false); err != nil {
					return err
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush(true)
}

// ParseAll collects whole records.
func ParseAll(ctx context.Context, r io.Reader) ([]Item, error) {
	var out []Item
	err := Parse(ctx, r, ParseOptions{}, func(it Item) error {
		out = append(out, it)
		return nil
	})
	return out, err
}

func parseHeader(hdr []byte) (string, string) {
	f := bytes.Fields(hdr)
	if len(f) == 0 {
		return "", ""
	}
	return string(f[0]), string(bytes.Join(f[1:], []byte(" ")))
}
