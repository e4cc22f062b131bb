// internal/region/region.go
package region

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is a request in 0-based half-open coordinates. End < 0 means
// "to the end of the sequence".
type Region struct {
	Text  string
	Name  string
	Start int
	End   int
}

// Bounds clamps an open end to length.
func (r Region) Bounds(length int) (int, int) {
	if r.End < 0 {
		return r.Start, length
	}
	return r.Start, r.End
}

// Parse reads "name", "name:start", "name:start-" or "name:start-end" with
// 1-based inclusive coordinates (samtools style; commas in numbers are ignored).
// If the whole string is a known sequence name it is taken verbatim, so
// names containing ':' still work.
func Parse(s string, known func(string) bool) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Region{}, fmt.Errorf("empty region")
	}
	whole := Region{Text: s, Name: s, End: -1}
	if known != nil && known(s) {
		return whole, nil
	}
	colon := strings.LastIndex(s, ":")
	if colon == -1 || colon == len(s)-1 {
		return whole, nil
	}
	name, suffix := s[:colon], strings.ReplaceAll(s[colon+1:], ",", "")
	startStr, endStr, ranged := strings.Cut(suffix, "-")
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return whole, nil
	}
	if start < 1 {
		return Region{}, fmt.Errorf("region %q: start must be ≥ 1", s)
	}
	r := Region{Text: s, Name: name, Start: start - 1, End: -1}
	if ranged && endStr != "" {
		end, err := strconv.Atoi(endStr)
		if err != nil {
			return Region{}, fmt.Errorf("region %q: bad end %q", s, endStr)
		}
		if end < start {
			return Region{}, fmt.Errorf("region %q: end before start", s)
		}
		r.End = end
	}
	return r, nil
}
