package actor

import (
	"github.com/zwimer/smllr/internal/catalog"
	"github.com/zwimer/smllr/internal/vfs"
)

// Actor commits a selection over every duplicate group to the filesystem (or
// to a report sink, for Printer). Act runs synchronously, single-threaded,
// with no cancellation: the single-threaded contract means no locking is
// required between the catalog and actor phases, since cataloging is
// finalized before acting begins.
type Actor interface {
	Act(fs vfs.VFS, groups [][]*catalog.Duplicates) Report
}

// nonKeeperPaths returns every path in every Duplicates in group other than
// the keeper, preserving the hardlink-safety invariant: a non-keeper
// Duplicates may still have several paths (additional hardlinks of the same
// non-keeper inode), and all of them are covered.
func nonKeeperPaths(group []*catalog.Duplicates, keeper *catalog.Duplicates) []string {
	var paths []string
	for _, dup := range group {
		if dup == keeper {
			continue
		}
		paths = append(paths, dup.Paths...)
	}
	return paths
}
