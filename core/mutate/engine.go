// core/mutate/engine.go
package mutate

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"mutsim-core/sample"
)

// ErrInvalidEditCount reports a programming or configuration error:
// negative edit counts, or positive counts against a sequence with no
// valid edit position. It is propagated, never recovered.
var ErrInvalidEditCount = errors.New("mutate: invalid edit count")

type editKind uint8

const (
	editSub editKind = iota
	editIns
	editDel
)

// Engine applies substitution and indel edits to nucleotide sequences.
// All randomness flows from the source supplied at construction, so a
// seeded source makes runs reproducible.
type Engine struct {
	rng   *rand.Rand
	indel *sample.IndelModel
}

// New builds an Engine drawing from src, with indel lengths capped at
// maxIndel. maxIndel < 1 is a configuration error.
func New(src rand.Source, maxIndel int) (*Engine, error) {
	model, err := sample.NewIndelModel(maxIndel, src)
	if err != nil {
		return nil, err
	}
	return &Engine{rng: rand.New(src), indel: model}, nil
}

// Mutate returns a copy of seq with nSub substitutions, nIns insertions
// and nDel deletions applied in uniformly random order. The input is never
// modified.
//
// Each edit draws its position against the current, already-edited
// sequence, so later edits can land inside or next to earlier indels.
// That compounding is the defined semantics (it models accumulated
// mutation), which makes results sensitive to edit order when counts are
// large relative to the sequence length.
func (e *Engine) Mutate(seq []byte, nSub, nIns, nDel int) ([]byte, error) {
	if nSub < 0 || nIns < 0 || nDel < 0 {
		return nil, fmt.Errorf("%w: (%d, %d, %d)", ErrInvalidEditCount, nSub, nIns, nDel)
	}
	out := append([]byte(nil), seq...)
	total := nSub + nIns + nDel
	if total == 0 {
		return out, nil
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %d edits requested against an empty sequence", ErrInvalidEditCount, total)
	}

	tags := make([]editKind, 0, total)
	for i := 0; i < nSub; i++ {
		tags = append(tags, editSub)
	}
	for i := 0; i < nIns; i++ {
		tags = append(tags, editIns)
	}
	for i := 0; i < nDel; i++ {
		tags = append(tags, editDel)
	}
	e.rng.Shuffle(len(tags), func(i, j int) { tags[i], tags[j] = tags[j], tags[i] })

	for _, tag := range tags {
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: deletions exhausted the sequence with edits pending", ErrInvalidEditCount)
		}
		loc := e.rng.Intn(len(out))
		switch tag {
		case editSub:
			pool := candidates(out[loc])
			out[loc] = pool[e.rng.Intn(len(pool))]
		case editIns:
			out = e.insertAfter(out, loc)
		case editDel:
			n := e.indel.Sample()
			end := loc + n
			if end > len(out) {
				end = len(out) // deleting past the end truncates
			}
			out = append(out[:loc], out[end:]...)
		}
	}
	return out, nil
}

// insertAfter splices a run of uniformly random canonical nucleotides
// immediately after position loc.
func (e *Engine) insertAfter(seq []byte, loc int) []byte {
	n := e.indel.Sample()
	ins := make([]byte, n)
	for i := range ins {
		ins[i] = canonical[e.rng.Intn(len(canonical))]
	}
	// The inner append reallocates (ins is at capacity), so the tail is
	// copied before the outer append can overwrite it.
	return append(seq[:loc+1], append(ins, seq[loc+1:]...)...)
}
