// Package seqio streams sequence records from FASTA/FASTQ input.
//
// The reader is a small lookahead state machine: it buffers at most one
// line to decide where the current record ends, detects framing per record
// by the leading sentinel, and latches hard on malformed input. Parsing is
// lazy and single-pass; a consumed stream cannot be re-read.
package seqio
