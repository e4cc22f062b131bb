// core/index/fai.go
package index

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteFAI writes ix in samtools .fai layout:
// name, length, offset, line bases, line bytes (tab separated).
// Descriptions are not part of the format and are dropped.
func WriteFAI(w io.Writer, ix *Index) error {
	bw := bufio.NewWriter(w)
	for _, r := range ix.byID {
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%d\n",
			r.Name, r.Length, r.Offset, r.LineLength, r.LineBytes); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFAI loads a persisted index. Fields may be tab or space delimited;
// columns beyond the fifth (FASTQ .fai) are ignored. Ids follow line order.
func ReadFAI(r io.Reader) (*Index, error) {
	ix := newIndex()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	n := 0
	for sc.Scan() {
		n++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) < 5 {
			return nil, &ParseError{Line: n, Reason: fmt.Sprintf("index line has %d fields, want 5", len(f))}
		}
		var nums [4]int64
		for i := range nums {
			v, err := strconv.ParseInt(f[i+1], 10, 64)
			if err != nil || v < 0 {
				return nil, &ParseError{Line: n, Reason: fmt.Sprintf("bad index field %q", f[i+1])}
			}
			nums[i] = v
		}
		rec := &Record{
			ID:         ix.Len(),
			Name:       f[0],
			Length:     int(nums[0]),
			Offset:     nums[1],
			LineLength: int(nums[2]),
			LineBytes:  int(nums[3]),
		}
		if rec.Length > 0 && (rec.LineLength == 0 || rec.LineBytes <= rec.LineLength) {
			return nil, &ParseError{Line: n, Reason: "line bytes must exceed line bases for " + rec.Name}
		}
		ix.add(rec)
	}
	if err := sc.Err(); err != nil {
		return nil, WrapIO("read index", err)
	}
	return ix, nil
}
