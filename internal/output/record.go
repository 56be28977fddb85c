// internal/output/record.go
package output

import (
	"fmt"
	"io"

	"mutsim-core/seqio"
)

// Output format names accepted by --output.
const (
	FormatFASTA = "fasta"
	FormatJSONL = "jsonl"
)

// WriteRecord emits rec in the framing of its origin: a 4-line FASTQ block
// with the quality copied verbatim when the record still carries one,
// otherwise FASTA with the body wrapped at wrap columns (wrap <= 0 means a
// single body line). Mutated records never carry quality, so they always
// come out as FASTA.
func WriteRecord(w io.Writer, rec seqio.Record, wrap int) error {
	if rec.FASTQOrigin() {
		_, err := fmt.Fprintf(w, "@%s\n%s\n+\n%s\n", rec.ID, rec.Seq, rec.Qual)
		return err
	}
	if _, err := fmt.Fprintf(w, ">%s\n", rec.ID); err != nil {
		return err
	}
	return writeWrapped(w, rec.Seq, wrap)
}

func writeWrapped(w io.Writer, seq []byte, wrap int) error {
	if wrap <= 0 || wrap >= len(seq) {
		_, err := fmt.Fprintf(w, "%s\n", seq)
		return err
	}
	for off := 0; off < len(seq); off += wrap {
		end := off + wrap
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := fmt.Fprintf(w, "%s\n", seq[off:end]); err != nil {
			return err
		}
	}
	return nil
}
