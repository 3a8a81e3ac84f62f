// Package actor implements the selector and actor pipeline that commits a
// deterministic, safe choice over each duplicate group surfaced by the
// catalog.
package actor

import (
	"path"
	"strings"
	"time"

	"github.com/zwimer/smllr/internal/catalog"
	"github.com/zwimer/smllr/internal/vfs"
)

// Selector picks the keeper Duplicates from a group of Duplicates sharing
// one content hash. Select is a pure function of the group and the VFS: it
// has no side effects and does not error, since a path surfaced by the
// catalog should always resolve via the VFS (a lookup failure here is a
// programmer error, not a runtime one, and panics accordingly).
type Selector interface {
	// Select returns the keeper among group.
	Select(fs vfs.VFS, group []*catalog.Duplicates) *catalog.Duplicates
	// Reversed returns a Selector with the opposite preference.
	Reversed() Selector
}

// pathDepth counts the path components of p, used by PathSelector.
func pathDepth(p string) int {
	clean := path.Clean(p)
	if clean == "/" || clean == "." {
		return 0
	}
	return len(strings.Split(strings.Trim(clean, "/"), "/"))
}

// PathSelector keeps the Duplicates whose first path has the fewest path
// components (the shallowest path). Reversed flips the preference to the
// most components. Tie-breaks among equal-depth paths are
// implementation-defined: the first minimal/maximal element encountered in
// group order wins, per the reference's unspecified tie-breaking rule.
type PathSelector struct {
	reverse bool
}

// NewPathSelector constructs a shortest-path-first PathSelector.
func NewPathSelector() *PathSelector {
	return &PathSelector{}
}

// Select implements Selector.Select.
func (s *PathSelector) Select(_ vfs.VFS, group []*catalog.Duplicates) *catalog.Duplicates {
	best := group[0]
	bestDepth := pathDepth(best.Paths[0])
	for _, candidate := range group[1:] {
		depth := pathDepth(candidate.Paths[0])
		if (!s.reverse && depth < bestDepth) || (s.reverse && depth > bestDepth) {
			best = candidate
			bestDepth = depth
		}
	}
	return best
}

// Reversed implements Selector.Reversed.
func (s *PathSelector) Reversed() Selector {
	return &PathSelector{reverse: !s.reverse}
}

// DateSelector keeps the Duplicates whose first path has the newest creation
// timestamp. Reversed flips the preference to oldest. This recovers the
// DateSelect behavior left commented out in the reference selector: compare
// creation timestamps, keep the maximum (or minimum when reversed).
type DateSelector struct {
	reverse bool
}

// NewDateSelector constructs a newest-first DateSelector.
func NewDateSelector() *DateSelector {
	return &DateSelector{}
}

// Select implements Selector.Select. A path whose metadata cannot be read is
// a programmer error under the reference contract and panics.
func (s *DateSelector) Select(fs vfs.VFS, group []*catalog.Duplicates) *catalog.Duplicates {
	best := group[0]
	bestTime := createdOf(fs, best)
	for _, candidate := range group[1:] {
		t := createdOf(fs, candidate)
		if (!s.reverse && t.After(bestTime)) || (s.reverse && t.Before(bestTime)) {
			best = candidate
			bestTime = t
		}
	}
	return best
}

// Reversed implements Selector.Reversed.
func (s *DateSelector) Reversed() Selector {
	return &DateSelector{reverse: !s.reverse}
}

func createdOf(fs vfs.VFS, dup *catalog.Duplicates) time.Time {
	meta, err := fs.Metadata(dup.Paths[0])
	if err != nil {
		panic("select: unable to read metadata for " + dup.Paths[0] + ": " + err.Error())
	}
	return meta.Created
}
