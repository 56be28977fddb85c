// internal/writers/mutant.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"mutsim/internal/jsonlutil"
	"mutsim/internal/output"
	"mutsim/internal/simulate"
)

// StartMutantWriter spins up a writer goroutine for mutated records in the
// requested format. Close the returned channel when done; the error
// channel yields the first write error (nil on success).
func StartMutantWriter(out io.Writer, format string, wrap, bufSize int) (chan<- simulate.Mutant, <-chan error) {
	switch format {
	case output.FormatJSONL:
		return jsonlutil.Start[simulate.Mutant](out, bufSize,
			func(enc *json.Encoder, m simulate.Mutant) error {
				return enc.Encode(output.ToAPIMutant(m))
			},
			IsBrokenPipe,
		)
	case output.FormatFASTA:
		return startFASTAWriter(out, wrap, bufSize)
	default:
		in := make(chan simulate.Mutant, 1)
		errCh := make(chan error, 1)
		go func() {
			for range in {
			}
			errCh <- fmt.Errorf("unsupported output %q", format)
		}()
		return in, errCh
	}
}

func startFASTAWriter(out io.Writer, wrap, bufSize int) (chan<- simulate.Mutant, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan simulate.Mutant, bufSize)
	errCh := make(chan error, 1)
	go func() {
		var err error
		for m := range in {
			if err != nil {
				continue // drain so the producer never blocks
			}
			err = output.WriteRecord(out, m.Record, wrap)
		}
		errCh <- err
	}()
	return in, errCh
}
