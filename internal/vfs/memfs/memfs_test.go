package memfs

import (
	"testing"

	"github.com/zwimer/smllr/internal/vfs"
)

func TestCreateFileAssignsDenseInodes(t *testing.T) {
	m := New().CreateFile("/a").CreateFile("/b").CreateFile("/c")

	cases := []struct {
		path string
		want vfs.Inode
	}{
		{"/a", 0},
		{"/b", 1},
		{"/c", 2},
	}
	for _, c := range cases {
		meta, err := m.Metadata(c.path)
		if err != nil {
			t.Fatalf("Metadata(%s): %v", c.path, err)
		}
		if meta.ID.Inode != c.want {
			t.Errorf("Metadata(%s).ID.Inode = %d, want %d", c.path, meta.ID.Inode, c.want)
		}
	}
}

func TestAddWithExplicitInodeSharesIdentity(t *testing.T) {
	m := New()
	m.Add(NewFile("/a").WithContents([]byte("x")).WithInode(0, 7))
	m.Add(NewFile("/b").WithContents([]byte("x")).WithInode(0, 7))

	ma, err := m.Metadata("/a")
	if err != nil {
		t.Fatalf("Metadata(/a): %v", err)
	}
	mb, err := m.Metadata("/b")
	if err != nil {
		t.Fatalf("Metadata(/b): %v", err)
	}
	if ma.ID != mb.ID {
		t.Errorf("expected /a and /b to share an ID, got %+v and %+v", ma.ID, mb.ID)
	}
}

func TestWithLengthOverridesContentlessLength(t *testing.T) {
	m := New()
	m.Add(NewFile("/a").WithLength(1024))

	meta, err := m.Metadata("/a")
	if err != nil {
		t.Fatalf("Metadata(/a): %v", err)
	}
	if meta.Length != 1024 {
		t.Errorf("Length = %d, want 1024", meta.Length)
	}
}

func TestSymlinkResolvesToTargetMetadata(t *testing.T) {
	m := New()
	m.Add(NewFile("/a").WithContents([]byte("hello")))
	m.CreateSymlink("/link", "/a")

	meta, err := m.Metadata("/link")
	if err != nil {
		t.Fatalf("Metadata(/link): %v", err)
	}
	target, err := m.Metadata("/a")
	if err != nil {
		t.Fatalf("Metadata(/a): %v", err)
	}
	if meta.ID != target.ID {
		t.Errorf("symlink ID = %+v, want target ID %+v", meta.ID, target.ID)
	}
}

func TestSymlinkSelfCycleDetected(t *testing.T) {
	m := New()
	m.CreateSymlink("/loop", "/loop")

	if _, err := m.Metadata("/loop"); err == nil {
		t.Fatal("expected an error resolving a self-referential symlink, got nil")
	}
}

func TestBrokenSymlinkReportsNotFound(t *testing.T) {
	m := New()
	m.CreateSymlink("/broken", "/does-not-exist")

	if _, err := m.Metadata("/broken"); err == nil {
		t.Fatal("expected an error resolving a broken symlink, got nil")
	}
}

func TestWithoutMetadataFailsOpen(t *testing.T) {
	m := New()
	m.Add(NewFile("/a").WithContents([]byte("x")).WithoutMetadata())

	if _, err := m.Open("/a"); err == nil {
		t.Fatal("expected Open to fail for a file without metadata")
	}
}

func TestLinkSharesIdentityAndContent(t *testing.T) {
	m := New()
	m.Add(NewFile("/a").WithContents([]byte("payload")))

	if err := m.Link("/a", "/b"); err != nil {
		t.Fatalf("Link: %v", err)
	}

	ma, _ := m.Metadata("/a")
	mb, _ := m.Metadata("/b")
	if ma.ID != mb.ID {
		t.Errorf("linked paths have different IDs: %+v vs %+v", ma.ID, mb.ID)
	}
	if m.InodeCount() != 1 {
		t.Errorf("InodeCount() = %d, want 1", m.InodeCount())
	}
	if m.EntryCount() != 2 {
		t.Errorf("EntryCount() = %d, want 2", m.EntryCount())
	}
}

func TestRemoveDeletesEntry(t *testing.T) {
	m := New().CreateFile("/a")
	if err := m.Remove("/a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := m.Metadata("/a"); err == nil {
		t.Fatal("expected Metadata to fail after Remove")
	}
}

func TestListDirReturnsImmediateChildrenSorted(t *testing.T) {
	m := New().CreateDir("/root").CreateFile("/root/b").CreateFile("/root/a")
	m.CreateSymlink("/root/c", "/root/a")

	entries, err := m.ListDir("/root")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ListDir returned %d entries, want 3", len(entries))
	}
	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	want := []string{"a", "b", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entries[%d].Name = %s, want %s", i, names[i], want[i])
		}
	}
}
