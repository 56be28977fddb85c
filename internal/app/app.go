// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"

	"mutsim/internal/cli"
	"mutsim/internal/simulate"
	"mutsim/internal/version"
	"mutsim/internal/writers"
)

// RunContext parses argv, runs the simulation, and writes mutated records
// to stdout. Exit codes: 0 ok, 2 usage/config error, 3 runtime error,
// 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("mutsim")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "mutsim version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	logger := log.New(stderr)
	switch {
	case opts.Verbose:
		logger.SetLevel(log.DebugLevel)
	case opts.Quiet:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		logger.Debug("derived seed from wall clock", "seed", seed)
	} else {
		logger.Debug("using explicit seed", "seed", seed)
	}
	src := rand.NewSource(seed)

	cfg := simulate.Config{
		Cycles:     opts.Cycles,
		Replicates: opts.Replicates,
		SubRate:    opts.SubRate,
		InsRate:    opts.InsRate,
		DelRate:    opts.DelRate,
		MaxIndel:   opts.MaxIndel,
		RNAToDNA:   opts.RNAToDNA,
	}

	inCh, writeErr := writers.StartMutantWriter(outw, opts.Output, opts.Wrap, 64)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	start := time.Now()
	total, perr := simulate.ForEachMutant(ctx, cfg, opts.SeqFiles, src, func(m simulate.Mutant) error {
		select {
		case inCh <- m:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		logger.Error("simulation aborted", "err", perr, "emitted", total)
		return 3
	}

	logger.Info("simulation complete",
		"records", total,
		"cycles", len(opts.Cycles),
		"replicates", opts.Replicates,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
