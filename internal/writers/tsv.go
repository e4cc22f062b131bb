// internal/writers/tsv.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	"faidx/pkg/api"
)

const (
	RegionHeader = "region\tname\tstart\tend\tlength\tsequence\tsource_file"
	RecordHeader = "id\tname\tlength\toffset\tline_bases\tline_bytes\tdescription"
)

func init() {
	RegisterRegion("text", startTSV)
	RegisterRegion("tsv", startTSV)
	RegisterRecords("text", writeRecordsTSV)
	RegisterRecords("tsv", writeRecordsTSV)
}

// startTSV writes one row per region. Coordinates are 0-based half-open,
// matching the JSON output.
func startTSV(out io.Writer, o Options, bufSize int) (chan<- api.RegionV1, <-chan error) {
	return startLoop(bufSize, func(in <-chan api.RegionV1) error {
		bw := bufio.NewWriter(out)
		if o.Header {
			if _, err := fmt.Fprintln(bw, RegionHeader); err != nil {
				return err
			}
		}
		for r := range in {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
				r.Region, r.Name, r.Start, r.End, r.Length, r.Seq, r.SourceFile); err != nil {
				return err
			}
		}
		return bw.Flush()
	})
}

func writeRecordsTSV(w io.Writer, recs []api.RecordV1, o Options) error {
	bw := bufio.NewWriter(w)
	if o.Header {
		if _, err := fmt.Fprintln(bw, RecordHeader); err != nil {
			return err
		}
	}
	for _, r := range recs {
		if _, err := fmt.Fprintf(bw, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.Name, r.Length, r.Offset, r.LineBases, r.LineBytes, r.Description); err != nil {
			return err
		}
	}
	return bw.Flush()
}
