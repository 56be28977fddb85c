package seqio

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, in string, opts ...Option) ([]Record, error) {
	t.Helper()
	rd := NewReader(strings.NewReader(in), opts...)
	var recs []Record
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

func TestFASTARoundTrip(t *testing.T) {
	recs, err := readAll(t, ">seq1\nACGT\n")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.ID != "seq1" || string(r.Seq) != "ACGT" || len(r.Qual) != 0 {
		t.Fatalf("bad record %+v", r)
	}
	if r.FASTQOrigin() {
		t.Fatalf("FASTA record flagged as FASTQ origin")
	}
}

func TestFASTAMultiLineBody(t *testing.T) {
	recs, err := readAll(t, ">wrapped desc here\nACGT\nacgt\n\nTTTT\n>next\nGG\n")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "wrapped desc here" {
		t.Errorf("header not taken verbatim: %q", recs[0].ID)
	}
	if string(recs[0].Seq) != "ACGTACGTTTTT" {
		t.Errorf("body not concatenated/uppercased: %q", recs[0].Seq)
	}
	if recs[1].ID != "next" || string(recs[1].Seq) != "GG" {
		t.Errorf("second record wrong: %+v", recs[1])
	}
}

func TestFASTQRoundTrip(t *testing.T) {
	recs, err := readAll(t, "@r1\nACGT\n+\n!!!!\n")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.ID != "r1" || string(r.Seq) != "ACGT" || string(r.Qual) != "!!!!" {
		t.Fatalf("bad record %+v", r)
	}
	if !r.FASTQOrigin() {
		t.Fatalf("FASTQ record not flagged as FASTQ origin")
	}
}

func TestMixedFramingPerRecord(t *testing.T) {
	recs, err := readAll(t, ">a\nAAAA\n@b\nCCCC\n+\nIIII\n>c\nGGGG\n")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[0].FASTQOrigin() || !recs[1].FASTQOrigin() || recs[2].FASTQOrigin() {
		t.Fatalf("origin flags wrong: %+v", recs)
	}
}

func TestRNAToDNANormalization(t *testing.T) {
	recs, err := readAll(t, ">rna\nacgu\n", RNAToDNA())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(recs[0].Seq) != "ACGT" {
		t.Fatalf("U not rewritten to T: %q", recs[0].Seq)
	}

	recs, err = readAll(t, ">rna\nACGU\n")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(recs[0].Seq) != "ACGU" {
		t.Fatalf("U rewritten without the option: %q", recs[0].Seq)
	}
}

func TestEmptyFASTASequenceIsMalformed(t *testing.T) {
	_, err := readAll(t, ">a\n>b\nACGT\n")
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("want ErrMalformedRecord, got %v", err)
	}
}

func TestTruncatedFASTQIsMalformed(t *testing.T) {
	for _, in := range []string{
		"@r1\n",
		"@r1\nACGT\n",
		"@r1\nACGT\nnot-a-separator\n!!!!\n",
		"@r1\nACGT\n+\n",
		"@r1\nACGT\n+\n!!!\n", // quality shorter than sequence
	} {
		if _, err := readAll(t, in); !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("input %q: want ErrMalformedRecord, got %v", in, err)
		}
	}
}

func TestGarbageHeaderIsMalformed(t *testing.T) {
	_, err := readAll(t, "ACGT\n")
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("want ErrMalformedRecord, got %v", err)
	}
}

func TestReaderLatchesFailure(t *testing.T) {
	rd := NewReader(strings.NewReader(">ok\nACGT\n>bad\n>after\nGGGG\n"))

	rec, err := rd.Next()
	if err != nil || string(rec.Seq) != "ACGT" {
		t.Fatalf("first record should parse: %v %+v", err, rec)
	}

	if _, err = rd.Next(); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("want ErrMalformedRecord, got %v", err)
	}
	// Same error again; the reader must not resume.
	if _, err2 := rd.Next(); !errors.Is(err2, ErrMalformedRecord) {
		t.Fatalf("failure not latched, got %v", err2)
	}
}

func TestCleanEOF(t *testing.T) {
	rd := NewReader(strings.NewReader("\n\n"))
	if _, err := rd.Next(); err != io.EOF {
		t.Fatalf("blank stream should be clean EOF, got %v", err)
	}
	if _, err := rd.Next(); err != io.EOF {
		t.Fatalf("EOF should be sticky, got %v", err)
	}
}

func TestCRLFInput(t *testing.T) {
	recs, err := readAll(t, ">a\r\nACGT\r\n@b\r\nTTTT\r\n+\r\nIIII\r\n")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(recs[0].Seq) != "ACGT" || string(recs[1].Qual) != "IIII" {
		t.Fatalf("CRLF not stripped: %+v", recs)
	}
}

func TestNoTrailingNewline(t *testing.T) {
	recs, err := readAll(t, ">a\nACGT")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(recs[0].Seq) != "ACGT" {
		t.Fatalf("final unterminated line lost: %+v", recs)
	}
}
