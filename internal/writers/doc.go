// Package writers turns fetched regions and index records into serialized
// outputs.
//
// Design:
//   • Writers own all presentation knowledge (FASTA wrapping, TSV, JSON/JSONL).
//   • The fetch loop stays format-agnostic; it only sends api.RegionV1 values.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
