package dupescan

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestStreamNames(t *testing.T) {
	tests := []struct {
		path   string
		reader string
		writer string
	}{
		{"", "stdin", "stdout"},
		{"-", "stdin", "stdout"},
		{"/tmp/index", "/tmp/index", "/tmp/index"},
	}

	for _, tc := range tests {
		if got := ReaderName(tc.path); got != tc.reader {
			t.Errorf("ReaderName(%q) = %q, want %q", tc.path, got, tc.reader)
		}
		if got := WriterName(tc.path); got != tc.writer {
			t.Errorf("WriterName(%q) = %q, want %q", tc.path, got, tc.writer)
		}
	}
}

func TestDirResolution(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	got, err := Dir("")
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if got != wd {
		t.Errorf("Dir(\"\") = %s, want %s", got, wd)
	}

	got, err = Dir("/some/dir")
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if got != "/some/dir" {
		t.Errorf("Dir(/some/dir) = %s", got)
	}

	if name := DirName(""); name != "pwd" {
		t.Errorf("DirName(\"\") = %q, want pwd", name)
	}
	if name := DirName("/x"); name != "/x" {
		t.Errorf("DirName(/x) = %q, want /x", name)
	}
}

func TestOpenWriterAndReaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")

	w, err := OpenWriter(path)
	if err != nil {
		t.Fatalf("OpenWriter failed: %v", err)
	}
	if _, err := io.WriteString(w, "round trip\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if string(data) != "round trip\n" {
		t.Errorf("read %q, want %q", data, "round trip\n")
	}
}

func TestOpenWriterAndReaderGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.gz")
	payload := "aaa 5 /one\n- /two\n"

	w, err := OpenWriter(path)
	if err != nil {
		t.Fatalf("OpenWriter failed: %v", err)
	}
	if _, err := io.WriteString(w, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Errorf("file does not start with the gzip magic: % x", raw[:2])
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if string(data) != payload {
		t.Errorf("read %q, want %q", data, payload)
	}
}

func TestOpenReaderMissingFile(t *testing.T) {
	if _, err := OpenReader(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpenReaderBadGzip(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "broken.gz", []byte("not gzip data"))
	if _, err := OpenReader(path); err == nil {
		t.Fatal("expected error for a corrupt gzip stream")
	}
}
