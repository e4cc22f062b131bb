// pkg/api/regions_v1.go
package api

// RegionV1 is the stable JSON/JSONL schema for a fetched region.
// Coordinates are 0-based, half-open. Keep fields, names, and types stable.
// Add new fields only with ",omitempty".
type RegionV1 struct {
	Region     string `json:"region"`
	Name       string `json:"name"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Length     int    `json:"length"`
	Seq        string `json:"seq"`
	SourceFile string `json:"source_file,omitempty"`
}

// RecordV1 is the stable schema for one index record.
type RecordV1 struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Length      int    `json:"length"`
	Offset      int64  `json:"offset"`
	LineBases   int    `json:"line_bases"`
	LineBytes   int    `json:"line_bytes"`
	Description string `json:"description,omitempty"`
}
