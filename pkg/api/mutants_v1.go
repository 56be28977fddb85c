// pkg/api/mutants_v1.go
package api

// MutantV1 is the stable JSON/JSONL schema for mutated records.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type MutantV1 struct {
	ID        string `json:"id"`
	SourceID  string `json:"source_id"`
	Cycle     int    `json:"cycle"`
	Replicate int    `json:"replicate"`
	NSub      int    `json:"n_sub"`
	NIns      int    `json:"n_ins"`
	NDel      int    `json:"n_del"`
	Length    int    `json:"length"`
	Seq       string `json:"seq"`
}

// RecordV1 is the stable schema for parsed input records (server parse
// endpoint). Quality is empty for FASTA-origin records.
type RecordV1 struct {
	ID      string `json:"id"`
	Seq     string `json:"seq"`
	Quality string `json:"quality,omitempty"`
}
