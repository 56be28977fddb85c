// core/seqio/reader.go
package seqio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedRecord signals truncated or corrupt input: an empty sequence
// or quality after a detected header, a missing FASTQ '+' separator, or a
// non-sentinel line where a header is expected. Once raised the reader
// yields no further records; records already returned remain valid.
var ErrMalformedRecord = errors.New("seqio: malformed record")

type readerState uint8

const (
	stateScanning readerState = iota
	stateExhausted
	stateFailed
)

// Reader incrementally parses FASTA and FASTQ records from a stream,
// auto-detecting framing per record by the leading sentinel ('>' FASTA,
// '@' FASTQ). Mixed streams are accepted record-by-record. The reader is
// forward-only and single-pass; re-reading requires a fresh Reader.
type Reader struct {
	br    *bufio.Reader
	state readerState
	err   error

	// one line of lookahead, held between FASTA body scans
	peek   []byte
	peeked bool

	rnaToDNA bool
}

// Option configures a Reader.
type Option func(*Reader)

// RNAToDNA rewrites U to T on read (RNA-to-DNA normalization).
func RNAToDNA() Option { return func(r *Reader) { r.rnaToDNA = true } }

// NewReader wraps r. The stream is consumed lazily, one record per Next.
func NewReader(r io.Reader, opts ...Option) *Reader {
	rd := &Reader{br: bufio.NewReaderSize(r, 64*1024)}
	for _, o := range opts {
		o(rd)
	}
	return rd
}

// Next returns the next record, io.EOF at clean end of stream, or an
// ErrMalformedRecord-wrapping error on corrupt input.
func (r *Reader) Next() (Record, error) {
	switch r.state {
	case stateExhausted:
		return Record{}, io.EOF
	case stateFailed:
		return Record{}, r.err
	}

	line, err := r.nextNonBlank()
	if err == io.EOF {
		r.state = stateExhausted
		return Record{}, io.EOF
	}
	if err != nil {
		return Record{}, r.fail(err)
	}

	switch line[0] {
	case '>':
		return r.readFASTA(line)
	case '@':
		return r.readFASTQ(line)
	default:
		return Record{}, r.fail(fmt.Errorf("%w: expected '>' or '@' header, got %q", ErrMalformedRecord, line[0]))
	}
}

func (r *Reader) readFASTA(header []byte) (Record, error) {
	id := headerID(header)
	var seq []byte
	for {
		line, err := r.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Record{}, r.fail(err)
		}
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] == '>' || trimmed[0] == '@' {
			r.unread(line)
			break
		}
		seq = append(seq, trimmed...)
	}
	if len(seq) == 0 {
		return Record{}, r.fail(fmt.Errorf("%w: record %q has an empty sequence", ErrMalformedRecord, id))
	}
	return Record{ID: id, Seq: r.normalize(seq)}, nil
}

func (r *Reader) readFASTQ(header []byte) (Record, error) {
	id := headerID(header)

	seq, err := r.readLine()
	if err != nil {
		return Record{}, r.fail(fmt.Errorf("%w: record %q has an empty sequence", ErrMalformedRecord, id))
	}
	seq = bytes.TrimSpace(seq)
	if len(seq) == 0 {
		return Record{}, r.fail(fmt.Errorf("%w: record %q has an empty sequence", ErrMalformedRecord, id))
	}

	sep, err := r.readLine()
	if err != nil || len(sep) == 0 || sep[0] != '+' {
		return Record{}, r.fail(fmt.Errorf("%w: record %q is missing the '+' separator", ErrMalformedRecord, id))
	}

	qual, err := r.readLine()
	if err != nil {
		return Record{}, r.fail(fmt.Errorf("%w: record %q has an empty quality", ErrMalformedRecord, id))
	}
	qual = bytes.TrimSpace(qual)
	if len(qual) == 0 {
		return Record{}, r.fail(fmt.Errorf("%w: record %q has an empty quality", ErrMalformedRecord, id))
	}
	if len(qual) != len(seq) {
		return Record{}, r.fail(fmt.Errorf("%w: record %q sequence/quality length mismatch (%d vs %d)", ErrMalformedRecord, id, len(seq), len(qual)))
	}

	return Record{ID: id, Seq: r.normalize(seq), Qual: append([]byte(nil), qual...)}, nil
}

// readLine returns the buffered lookahead line if present, otherwise the
// next line from the stream with the terminator stripped. io.EOF only when
// no bytes remain.
func (r *Reader) readLine() ([]byte, error) {
	if r.peeked {
		r.peeked = false
		return r.peek, nil
	}
	line, err := r.br.ReadBytes('\n')
	if len(line) == 0 && err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("seqio: read: %w", err)
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

func (r *Reader) unread(line []byte) {
	r.peek = line
	r.peeked = true
}

func (r *Reader) nextNonBlank() ([]byte, error) {
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		return bytes.TrimSpace(line), nil
	}
}

func (r *Reader) fail(err error) error {
	r.state = stateFailed
	r.err = err
	return err
}

func (r *Reader) normalize(seq []byte) []byte {
	out := bytes.ToUpper(seq)
	if r.rnaToDNA {
		for i, b := range out {
			if b == 'U' {
				out[i] = 'T'
			}
		}
	}
	return out
}

// headerID returns the identifier verbatim from the framing line, minus
// the sentinel and surrounding whitespace.
func headerID(header []byte) string {
	return string(bytes.TrimSpace(header[1:]))
}
