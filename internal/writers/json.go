// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"

	"faidx/internal/jsonlutil"
	"faidx/pkg/api"
)

func init() {
	RegisterRegion("json", startJSON)
	RegisterRegion("jsonl", startJSONL)
	RegisterRecords("json", func(w io.Writer, recs []api.RecordV1, _ Options) error {
		if recs == nil {
			recs = []api.RecordV1{}
		}
		return encodePretty(w, recs)
	})
	RegisterRecords("jsonl", writeRecordsJSONL)
}

// startJSON buffers every region and emits one pretty array at the end.
func startJSON(out io.Writer, _ Options, bufSize int) (chan<- api.RegionV1, <-chan error) {
	return startLoop(bufSize, func(in <-chan api.RegionV1) error {
		list := []api.RegionV1{}
		for r := range in {
			list = append(list, r)
		}
		return encodePretty(out, list)
	})
}

func startJSONL(out io.Writer, _ Options, bufSize int) (chan<- api.RegionV1, <-chan error) {
	return jsonlutil.Start(out, bufSize, func(enc *json.Encoder, r api.RegionV1) error {
		return enc.Encode(r)
	}, IsBrokenPipe)
}

func writeRecordsJSONL(w io.Writer, recs []api.RecordV1, _ Options) error {
	in, done := jsonlutil.Start(w, len(recs), func(enc *json.Encoder, r api.RecordV1) error {
		return enc.Encode(r)
	}, IsBrokenPipe)
	for _, r := range recs {
		in <- r
	}
	close(in)
	return <-done
}

func encodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
