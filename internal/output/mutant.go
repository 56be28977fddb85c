// internal/output/mutant.go
package output

import (
	"mutsim/internal/simulate"
	"mutsim/pkg/api"
)

// ToAPIMutant converts a driver Mutant to the stable wire schema (v1).
func ToAPIMutant(m simulate.Mutant) api.MutantV1 {
	return api.MutantV1{
		ID:        m.Record.ID,
		SourceID:  m.SourceID,
		Cycle:     m.Cycle,
		Replicate: m.Replicate,
		NSub:      m.NSub,
		NIns:      m.NIns,
		NDel:      m.NDel,
		Length:    len(m.Record.Seq),
		Seq:       string(m.Record.Seq),
	}
}
