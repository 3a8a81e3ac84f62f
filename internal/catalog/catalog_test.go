package catalog

import (
	"sort"
	"testing"

	"github.com/zwimer/smllr/internal/filehash"
	"github.com/zwimer/smllr/internal/logging"
	"github.com/zwimer/smllr/internal/vfs/memfs"
)

func insertAll(t *testing.T, c *FileCataloger, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := c.Insert(p); err != nil {
			t.Fatalf("Insert(%s): %v", p, err)
		}
	}
}

func pathSet(dups []*Duplicates) map[string]bool {
	set := make(map[string]bool)
	for _, d := range dups {
		for _, p := range d.Paths {
			set[p] = true
		}
	}
	return set
}

func TestNoRepeatsForDistinctSizes(t *testing.T) {
	m := memfs.New()
	m.Add(memfs.NewFile("/a").WithContents([]byte("x")))
	m.Add(memfs.NewFile("/b").WithContents([]byte("yy")))

	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))
	insertAll(t, c, "/a", "/b")

	if got := c.GetRepeats(); len(got) != 0 {
		t.Fatalf("GetRepeats() = %v, want empty", got)
	}
}

func TestSameSizeDifferentContentStaysPendingAtHashTier(t *testing.T) {
	m := memfs.New()
	m.Add(memfs.NewFile("/a").WithContents([]byte("aaaa")))
	m.Add(memfs.NewFile("/b").WithContents([]byte("bbbb")))

	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))
	insertAll(t, c, "/a", "/b")

	if got := c.GetRepeats(); len(got) != 0 {
		t.Fatalf("GetRepeats() = %v, want empty (same size, different content)", got)
	}
}

func TestIdenticalContentIsReportedAsARepeat(t *testing.T) {
	m := memfs.New()
	m.Add(memfs.NewFile("/a").WithContents([]byte("duplicate")))
	m.Add(memfs.NewFile("/b").WithContents([]byte("duplicate")))

	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))
	insertAll(t, c, "/a", "/b")

	groups := c.GetRepeatGroups()
	if len(groups) != 1 {
		t.Fatalf("GetRepeatGroups() returned %d groups, want 1", len(groups))
	}
	set := pathSet(groups[0])
	if !set["/a"] || !set["/b"] {
		t.Fatalf("group paths = %v, want both /a and /b", set)
	}
}

func TestThreeIdenticalFilesFormOneGroup(t *testing.T) {
	m := memfs.New()
	m.Add(memfs.NewFile("/a").WithContents([]byte("same")))
	m.Add(memfs.NewFile("/b").WithContents([]byte("same")))
	m.Add(memfs.NewFile("/c").WithContents([]byte("same")))

	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))
	insertAll(t, c, "/a", "/b", "/c")

	groups := c.GetRepeatGroups()
	if len(groups) != 1 {
		t.Fatalf("GetRepeatGroups() returned %d groups, want 1", len(groups))
	}
	total := 0
	for _, d := range groups[0] {
		total += len(d.Paths)
	}
	if total != 3 {
		t.Fatalf("group covers %d paths, want 3", total)
	}
}

func TestHardlinksToOneInodeAreNotARepeat(t *testing.T) {
	m := memfs.New()
	m.Add(memfs.NewFile("/a").WithContents([]byte("shared")).WithInode(0, 1))
	m.Add(memfs.NewFile("/b").WithContents([]byte("shared")).WithInode(0, 1))

	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))
	insertAll(t, c, "/a", "/b")

	if got := c.GetRepeats(); len(got) != 0 {
		t.Fatalf("GetRepeats() = %v, want empty: two names for one inode are not duplicates", got)
	}
}

func TestHardlinkPlusDistinctCopyCollapsesOneSideOnly(t *testing.T) {
	m := memfs.New()
	m.Add(memfs.NewFile("/a").WithContents([]byte("shared")).WithInode(0, 1))
	m.Add(memfs.NewFile("/b").WithContents([]byte("shared")).WithInode(0, 1))
	m.Add(memfs.NewFile("/c").WithContents([]byte("shared")).WithInode(0, 2))

	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))
	insertAll(t, c, "/a", "/b", "/c")

	groups := c.GetRepeatGroups()
	if len(groups) != 1 {
		t.Fatalf("GetRepeatGroups() returned %d groups, want 1", len(groups))
	}
	group := groups[0]
	if len(group) != 2 {
		t.Fatalf("group has %d Duplicates, want 2 distinct inodes", len(group))
	}
	var paths []string
	for _, d := range group {
		paths = append(paths, d.Paths...)
	}
	sort.Strings(paths)
	want := []string{"/a", "/b", "/c"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestFirstKBytesDifferenceAvoidsFullHash(t *testing.T) {
	m := memfs.New()
	longA := make([]byte, 8192)
	longB := make([]byte, 8192)
	longB[0] = 1 // differs in the first byte, so first-K-bytes differ
	m.Add(memfs.NewFile("/a").WithContents(longA))
	m.Add(memfs.NewFile("/b").WithContents(longB))

	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))
	insertAll(t, c, "/a", "/b")

	if got := c.GetRepeats(); len(got) != 0 {
		t.Fatalf("GetRepeats() = %v, want empty: first-K-bytes tier should have rejected these", got)
	}
}

func TestSingleFileAtASizeNeverPromotes(t *testing.T) {
	m := memfs.New()
	m.Add(memfs.NewFile("/a").WithContents([]byte("lonely")))

	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))
	insertAll(t, c, "/a")

	if got := c.GetRepeats(); len(got) != 0 {
		t.Fatalf("GetRepeats() = %v, want empty for a single file", got)
	}
}

func TestInsertSoftLogsAndSkipsOnStatFailure(t *testing.T) {
	m := memfs.New()
	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))

	// /missing was never added to the filesystem, so Insert would fail.
	c.InsertSoft("/missing")

	if got := c.GetRepeats(); len(got) != 0 {
		t.Fatalf("GetRepeats() = %v, want empty after a soft-skipped insert", got)
	}
}

func TestInsertPropagatesStatFailure(t *testing.T) {
	m := memfs.New()
	c := New(m, filehash.MD5, logging.NewRoot(logging.LevelDisabled))

	if err := c.Insert("/missing"); err == nil {
		t.Fatal("expected Insert to propagate a stat failure for a nonexistent path")
	}
}
