// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"mutsim/internal/output"
	"mutsim/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFiles []string
	RNAToDNA bool

	// Mutation model
	Cycles     []int
	SubRate    float64
	InsRate    float64
	DelRate    float64
	Replicates int
	MaxIndel   int

	// Randomness
	Seed uint64

	// Output
	Output string
	Wrap   int

	Quiet   bool
	Verbose bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: mutation-accumulation simulator for nucleotide sequences

Reads FASTA/FASTQ records and emits independently mutated copies per
cycle count and replicate, with Poisson-distributed edit counts.
Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	var seq stringSlice
	fs.Var(&seq, "sequences", "FASTA/FASTQ file(s), gzip ok (repeatable or '-') [*]")
	fs.BoolVar(&opt.RNAToDNA, "rna-to-dna", false, "rewrite U to T on input [false]")

	// Mutation model
	var cycles string
	fs.StringVar(&cycles, "cycles", "1", "comma-separated ascending cycle counts [1]")
	fs.Float64Var(&opt.SubRate, "sub-rate", 1.16e-8, "substitution rate per base per cycle [1.16e-8]")
	fs.Float64Var(&opt.InsRate, "ins-rate", 0, "insertion rate per base per cycle (0 = disabled) [0]")
	fs.Float64Var(&opt.DelRate, "del-rate", 0, "deletion rate per base per cycle (0 = disabled) [0]")
	fs.IntVar(&opt.Replicates, "replicates", 1, "independent replicates per record and cycle [1]")
	fs.IntVar(&opt.MaxIndel, "max-indel", 20, "maximum indel length [20]")

	// Randomness
	fs.Uint64Var(&opt.Seed, "seed", 0, "random seed (0 = derive from wall clock) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", output.FormatFASTA, "output format: fasta | jsonl [fasta]")
	fs.IntVar(&opt.Wrap, "wrap", 0, "wrap FASTA output at N columns (0 = no wrapping) [0]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress logging [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "enable debug logging [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.SeqFiles = seq

	// Validation: configuration errors are reported here, before any
	// record is processed.
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	var err error
	if opt.Cycles, err = parseCycles(cycles); err != nil {
		return opt, err
	}
	if opt.SubRate < 0 || opt.InsRate < 0 || opt.DelRate < 0 {
		return opt, errors.New("mutation rates must be >= 0")
	}
	if opt.Replicates < 1 {
		return opt, errors.New("--replicates must be >= 1")
	}
	if opt.MaxIndel < 1 {
		return opt, errors.New("--max-indel must be >= 1")
	}
	if opt.Wrap < 0 {
		return opt, errors.New("--wrap must be >= 0")
	}
	if opt.Output != output.FormatFASTA && opt.Output != output.FormatJSONL {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.Quiet && opt.Verbose {
		return opt, errors.New("--quiet conflicts with --verbose")
	}
	return opt, nil
}

// parseCycles parses a comma-separated list of strictly ascending positive
// cycle counts.
func parseCycles(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	prev := 0
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid --cycles value %q", p)
		}
		if n < 1 {
			return nil, fmt.Errorf("--cycles values must be >= 1, got %d", n)
		}
		if n <= prev {
			return nil, errors.New("--cycles must be strictly ascending")
		}
		out = append(out, n)
		prev = n
	}
	if len(out) == 0 {
		return nil, errors.New("--cycles must name at least one cycle count")
	}
	return out, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
