// internal/simulate/driver.go
package simulate

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/exp/rand"

	"mutsim-core/mutate"
	"mutsim-core/sample"
	"mutsim-core/seqio"
)

// Config controls one simulation run.
type Config struct {
	Cycles     []int // ascending
	Replicates int   // >= 1
	SubRate    float64
	InsRate    float64 // 0 = disabled
	DelRate    float64 // 0 = disabled
	MaxIndel   int
	RNAToDNA   bool
}

// Mutant is one mutated record plus its provenance.
type Mutant struct {
	Record    seqio.Record
	SourceID  string
	Cycle     int
	Replicate int
	NSub      int
	NIns      int
	NDel      int
}

// ForEachMutant streams mutated records to visit: input files in argument
// order, records in reader order, cycles ascending, replicates 1..N. Each
// (record, cycle, replicate) triple draws its three edit counts
// independently. The walk is single-threaded, so emission order is
// deterministic for a fixed random source.
//
// Each file is fully drained and closed before the next one is opened. A
// malformed record aborts its stream after every preceding record was
// visited; records already emitted are not retracted.
func ForEachMutant(ctx context.Context, cfg Config, paths []string, src rand.Source, visit func(Mutant) error) (int, error) {
	eng, err := mutate.New(src, cfg.MaxIndel)
	if err != nil {
		return 0, err
	}
	smp := sample.NewSampler(src)

	total := 0
	for _, path := range paths {
		if err := drainFile(ctx, cfg, path, eng, smp, visit, &total); err != nil {
			return total, err
		}
	}
	return total, nil
}

func drainFile(
	ctx context.Context,
	cfg Config,
	path string,
	eng *mutate.Engine,
	smp *sample.Sampler,
	visit func(Mutant) error,
	total *int,
) error {
	rc, err := seqio.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	var opts []seqio.Option
	if cfg.RNAToDNA {
		opts = append(opts, seqio.RNAToDNA())
	}
	rd := seqio.NewReader(rc, opts...)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, err := rd.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := mutateRecord(cfg, rec, eng, smp, visit, total); err != nil {
			return err
		}
	}
}

func mutateRecord(
	cfg Config,
	rec seqio.Record,
	eng *mutate.Engine,
	smp *sample.Sampler,
	visit func(Mutant) error,
	total *int,
) error {
	for _, cycle := range cfg.Cycles {
		for rep := 1; rep <= cfg.Replicates; rep++ {
			nSub := smp.Count(cfg.SubRate, cycle, len(rec.Seq))
			nIns := smp.Count(cfg.InsRate, cycle, len(rec.Seq))
			nDel := smp.Count(cfg.DelRate, cycle, len(rec.Seq))

			mutated, err := eng.Mutate(rec.Seq, nSub, nIns, nDel)
			if err != nil {
				return fmt.Errorf("record %q: %w", rec.ID, err)
			}

			m := Mutant{
				// Machine-parseable provenance trailer. Mutated records
				// drop quality: indels shift positions, so a stored
				// quality string would be meaningless.
				Record: seqio.Record{
					ID: fmt.Sprintf("%s cycle:%d replicate:%d n_sub:%d n_ins:%d n_del:%d",
						rec.ID, cycle, rep, nSub, nIns, nDel),
					Seq: mutated,
				},
				SourceID:  rec.ID,
				Cycle:     cycle,
				Replicate: rep,
				NSub:      nSub,
				NIns:      nIns,
				NDel:      nDel,
			}
			if err := visit(m); err != nil {
				return err
			}
			*total++
		}
	}
	return nil
}
