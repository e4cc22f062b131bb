// core/index/builder.go
package index

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
)

// LineScanner is the lazy line sequence consumed by Build. *bufio.Scanner
// satisfies it; Bytes must not include the '\n' terminator.
type LineScanner interface {
	Scan() bool
	Bytes() []byte
	Err() error
}

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// NewScanner returns a scanner that splits r on '\n' only, keeping any
// '\r' so Build can reject CRLF input instead of miscounting offsets.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	sc.Split(scanLF)
	return sc
}

func scanLF(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// builder is the fold state of a single forward scan.
type builder struct {
	ix      *Index
	cur     *Record
	offset  int64
	length  int
	fresh   bool // header seen, no sequence line yet
	short   bool // a line narrower than LineLength was seen in cur
	lineNum int
}

// Build scans FASTA lines once and returns the index. Each consumed line,
// header or sequence, advances the running offset by len(line)+1.
//
// A header with an empty name, a CRLF terminator, or a sequence whose line
// width changes before its last line is a *ParseError. Scanner failures are
// returned as *IOError. Ctx is checked periodically.
func Build(ctx context.Context, lines LineScanner) (*Index, error) {
	b := &builder{ix: newIndex()}
	for lines.Scan() {
		b.lineNum++
		if b.lineNum%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := lines.Bytes()
		if n := len(line); n > 0 && line[n-1] == '\r' {
			return nil, &ParseError{Line: b.lineNum, Reason: "CRLF line terminator"}
		}
		var err error
		if len(line) > 0 && line[0] == '>' {
			err = b.header(line)
		} else {
			err = b.sequence(line)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, WrapIO("scan", err)
	}
	b.finalize()
	return b.ix, nil
}

func (b *builder) header(line []byte) error {
	b.finalize()
	fields := strings.Fields(string(line[1:]))
	if len(fields) == 0 {
		return &ParseError{Line: b.lineNum, Reason: "header without a name"}
	}
	b.cur = &Record{
		ID:          b.ix.Len(),
		Name:        fields[0],
		Description: strings.Join(fields[1:], " "),
	}
	b.ix.add(b.cur)
	b.fresh = true
	b.short = false
	b.length = 0
	b.offset += int64(len(line)) + 1
	return nil
}

func (b *builder) sequence(line []byte) error {
	n := len(line)
	switch {
	case b.cur == nil:
		if n > 0 {
			return &ParseError{Line: b.lineNum, Reason: "sequence data before first header"}
		}
	case b.fresh:
		b.cur.Offset = b.offset
		b.cur.LineLength = n
		b.cur.LineBytes = n + 1
		b.fresh = false
	case n > b.cur.LineLength || (b.short && n > 0):
		return &ParseError{Line: b.lineNum, Reason: "inconsistent line width in " + b.cur.Name}
	case n < b.cur.LineLength:
		b.short = true
	}
	b.length += n
	b.offset += int64(n) + 1
	return nil
}

func (b *builder) finalize() {
	if b.cur != nil {
		b.cur.Length = b.length
	}
}
