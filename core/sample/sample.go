// core/sample/sample.go
package sample

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidMaxIndel reports a non-positive maximum indel length. Callers
// validate configuration before any record is processed.
var ErrInvalidMaxIndel = errors.New("sample: maximum indel length must be >= 1")

// indelExponent shapes the power-law indel length distribution: short
// indels dominate, matching observed biological length spectra.
const indelExponent = -1.8797

// maxIndelTable bounds the shared precomputed weight table.
const maxIndelTable = 999

// indelWeights[k-1] = k^indelExponent for k in [1, maxIndelTable].
// Read-only after init.
var indelWeights [maxIndelTable]float64

func init() {
	for k := 1; k <= maxIndelTable; k++ {
		indelWeights[k-1] = math.Pow(float64(k), indelExponent)
	}
}

// Sampler draws mutation event counts. Accrual over cycles is modeled as a
// memoryless counting process, so the count for one sequence is Poisson
// with mean rate x cycles x length.
type Sampler struct {
	src rand.Source
}

// NewSampler returns a Sampler drawing from src. Pass a seeded source for
// reproducible runs.
func NewSampler(src rand.Source) *Sampler { return &Sampler{src: src} }

// Count draws the number of mutation events to apply to a sequence of the
// given length over the given number of cycles. A rate of exactly zero
// (disabled mutation class) returns 0 without touching the random source.
func (s *Sampler) Count(rate float64, cycles, length int) int {
	if rate == 0 {
		return 0
	}
	lambda := rate * float64(cycles) * float64(length)
	if lambda <= 0 {
		return 0
	}
	p := distuv.Poisson{Lambda: lambda, Src: s.src}
	return int(p.Rand())
}

// IndelModel draws single indel lengths from the truncated power-law
// categorical distribution. The model is immutable once built.
type IndelModel struct {
	dist distuv.Categorical
	max  int
}

// NewIndelModel truncates the shared weight table to maxLen entries and
// wraps it in a categorical distribution drawing from src.
func NewIndelModel(maxLen int, src rand.Source) (*IndelModel, error) {
	if maxLen < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxIndel, maxLen)
	}
	if maxLen > maxIndelTable {
		maxLen = maxIndelTable
	}
	w := make([]float64, maxLen)
	copy(w, indelWeights[:maxLen])
	return &IndelModel{dist: distuv.NewCategorical(w, src), max: maxLen}, nil
}

// Sample returns one indel length in [1, Max()].
func (m *IndelModel) Sample() int { return int(m.dist.Rand()) + 1 }

// Max returns the model's maximum indel length.
func (m *IndelModel) Max() int { return m.max }
