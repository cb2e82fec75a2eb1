package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "launch.dat")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file, got %d entries", len(entries))
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "launch.dat")
	if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	ok, err := Exists(path)
	if err != nil || ok {
		t.Fatalf("expected missing, got %v %v", ok, err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	ok, err = Exists(path)
	if err != nil || !ok {
		t.Fatalf("expected present, got %v %v", ok, err)
	}
}

func TestWriteStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launch01")
	n, err := WriteStream(path, strings.NewReader("png-bytes"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len("png-bytes")) {
		t.Fatalf("unexpected byte count %d", n)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "png-bytes" {
		t.Fatalf("content mismatch: %q", got)
	}
}
