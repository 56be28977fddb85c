package seqio

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const plain = ">seq1\nACGT\n>seq2\nNNnn\n"

// writeGz creates a gzipped FASTA file with provided data, returns the file path.
func writeGz(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.fa.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestOpenGzip(t *testing.T) {
	path := writeGz(t, plain)
	rc, err := Open(path)
	if err != nil {
		t.Fatalf("open gz: %v", err)
	}
	defer func() { _ = rc.Close() }()

	rd := NewReader(rc)
	var ids []string
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		ids = append(ids, rec.ID)
	}
	if len(ids) != 2 || ids[0] != "seq1" || ids[1] != "seq2" {
		t.Fatalf("gzip parse failed, ids=%v", ids)
	}
}

func TestOpenPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fa")
	if err := os.WriteFile(path, []byte(plain), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	rc, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = rc.Close() }()

	rec, err := NewReader(rc).Next()
	if err != nil || rec.ID != "seq1" {
		t.Fatalf("plain open failed: %v %+v", err, rec)
	}
}

func TestOpenStdin(t *testing.T) {
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	rc, err := Open("-")
	if err != nil {
		t.Fatalf("open stdin: %v", err)
	}
	rd := NewReader(rc)
	count := 0
	for {
		if _, err := rd.Next(); err != nil {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 records from stdin, got %d", count)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.fa")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
