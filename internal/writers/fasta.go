// internal/writers/fasta.go
package writers

import (
	"fmt"
	"io"

	"faidx/core/fasta"
	"faidx/pkg/api"
)

func init() {
	RegisterRegion("fasta", startFASTA)
	RegisterRecords("fasta", writeRecordNames)
}

// startFASTA writes each region as its own record, header set to the
// region text the user asked for.
func startFASTA(out io.Writer, o Options, bufSize int) (chan<- api.RegionV1, <-chan error) {
	return startLoop(bufSize, func(in <-chan api.RegionV1) error {
		fw := fasta.NewWriter(out, o.Width)
		for r := range in {
			it := fasta.Item{ID: r.Region, Seq: []byte(r.Seq), IsLast: true}
			if err := fw.Write(it); err != nil {
				return err
			}
		}
		return fw.Flush()
	})
}

// writeRecordNames lists one name per line.
func writeRecordNames(w io.Writer, recs []api.RecordV1, _ Options) error {
	for _, r := range recs {
		if _, err := fmt.Fprintln(w, r.Name); err != nil {
			return err
		}
	}
	return nil
}
