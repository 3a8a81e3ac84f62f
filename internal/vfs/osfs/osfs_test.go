package osfs

import (
	"crypto/md5"
	"os"
	"path/filepath"
	"testing"

	"github.com/zwimer/smllr/internal/vfs"
)

func TestMetadataReportsLengthAndKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := New()
	meta, err := fs.Metadata(path)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if meta.Length != 5 {
		t.Errorf("Length = %d, want 5", meta.Length)
	}
	if meta.Kind != vfs.KindFile {
		t.Errorf("Kind = %s, want file", meta.Kind)
	}
}

func TestHardlinksShareID(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("same"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Link(a, b); err != nil {
		t.Fatalf("os.Link: %v", err)
	}

	fs := New()
	ma, err := fs.Metadata(a)
	if err != nil {
		t.Fatalf("Metadata(a): %v", err)
	}
	mb, err := fs.Metadata(b)
	if err != nil {
		t.Fatalf("Metadata(b): %v", err)
	}
	if ma.ID != mb.ID {
		t.Errorf("hardlinked files have different IDs: %+v vs %+v", ma.ID, mb.ID)
	}
}

func TestOpenFirstBytesAndHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	content := []byte("the quick brown fox")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := New()
	handle, err := fs.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer handle.Close()

	first, err := handle.FirstBytes()
	if err != nil {
		t.Fatalf("FirstBytes: %v", err)
	}
	if string(first[:len(content)]) != string(content) {
		t.Errorf("FirstBytes content mismatch: got %q", first[:len(content)])
	}

	digest, err := handle.Hash(md5.New())
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if len(digest) != 16 {
		t.Errorf("digest length = %d, want 16 for MD5", len(digest))
	}
}

func TestRemoveDeletesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := New()
	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, stat err = %v", err)
	}
}

func TestMetadataNotFound(t *testing.T) {
	fs := New()
	if _, err := fs.Metadata(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}
