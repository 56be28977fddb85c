// core/seqio/record.go
package seqio

// Record is one sequence record parsed from a FASTA or FASTQ stream.
// Qual is non-empty only for FASTQ-origin records; when present it has
// the same length as Seq. Records are never edited in place — every
// transformation downstream produces a fresh Record.
type Record struct {
	ID   string
	Seq  []byte
	Qual []byte
}

// FASTQOrigin reports whether the record was parsed from FASTQ framing.
func (r Record) FASTQOrigin() bool { return len(r.Qual) > 0 }
