// core/index/index.go
package index

import "strconv"

// Record describes one sequence of a FASTA file.
//
// Offset is the position of the first sequence byte. For BGZF files it is
// the position in the decompressed stream; see package bgzi for translating
// it into a virtual offset. A record without sequence lines has Length 0
// and LineLength 0.
type Record struct {
	ID          int
	Name        string
	Description string
	Offset      int64
	LineLength  int
	LineBytes   int
	Length      int
}

// Position returns the byte position of sequence coordinate pos. The
// caller guarantees LineLength > 0.
func (r *Record) Position(pos int) int64 {
	l, b := int64(r.LineLength), int64(r.LineBytes)
	p := int64(pos)
	return r.Offset + (p/l)*b + p%l
}

// Index maps names and ids onto the same Record values.
// It is never modified after Build or ReadFAI returns it.
type Index struct {
	byName map[string]*Record
	byID   []*Record
}

func newIndex() *Index {
	return &Index{byName: make(map[string]*Record)}
}

// add registers rec under both keys. A later record with the same name
// replaces the earlier one in the name mapping only.
func (ix *Index) add(rec *Record) {
	ix.byID = append(ix.byID, rec)
	ix.byName[rec.Name] = rec
}

// Len is the number of records, duplicates included.
func (ix *Index) Len() int { return len(ix.byID) }

// ByName looks a record up by sequence name.
func (ix *Index) ByName(name string) (*Record, bool) {
	r, ok := ix.byName[name]
	return r, ok
}

// ByID looks a record up by its file-order id.
func (ix *Index) ByID(id int) (*Record, bool) {
	if id < 0 || id >= len(ix.byID) {
		return nil, false
	}
	return ix.byID[id], true
}

// Lookup resolves a name first and falls back to a decimal id.
func (ix *Index) Lookup(key string) (*Record, error) {
	if r, ok := ix.byName[key]; ok {
		return r, nil
	}
	if id, err := strconv.Atoi(key); err == nil {
		if r, ok := ix.ByID(id); ok {
			return r, nil
		}
	}
	return nil, &NotFoundError{Key: key}
}

// Records returns the records in file order.
func (ix *Index) Records() []*Record {
	out := make([]*Record, len(ix.byID))
	copy(out, ix.byID)
	return out
}

// Names returns sequence names in file order.
func (ix *Index) Names() []string {
	out := make([]string, 0, len(ix.byID))
	for _, r := range ix.byID {
		out = append(out, r.Name)
	}
	return out
}

// Duplicates lists names shadowed by a later record of the same name.
func (ix *Index) Duplicates() []string {
	var out []string
	for _, r := range ix.byID {
		if ix.byName[r.Name] != r {
			out = append(out, r.Name)
		}
	}
	return out
}
