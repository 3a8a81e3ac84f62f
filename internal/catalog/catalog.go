// Package catalog implements the multi-stage duplicate classifier: a lazy,
// tiered partition of inserted paths by size, then leading bytes, then full
// content hash, respecting filesystem hardlink identity throughout. This is
// the hard core of the tool; every other package either feeds it paths
// (walk) or consumes its output (actor).
package catalog

import (
	"fmt"

	"github.com/zwimer/smllr/internal/filehash"
	"github.com/zwimer/smllr/internal/logging"
	"github.com/zwimer/smllr/internal/vfs"
)

// Duplicates is a non-empty ordered collection of paths all sharing one
// inode ID. Every Duplicates emitted by the catalog satisfies the invariant
// that all its paths resolve to the same vfs.ID.
type Duplicates struct {
	ID    vfs.ID
	Paths []string
}

// FileCataloger is the top-level classifier, keyed by byte length. Every
// inserted path is represented in exactly one length bucket.
type FileCataloger struct {
	buckets   map[uint64]*firstKBytesProxy
	vfs       vfs.VFS
	algorithm filehash.Algorithm
	logger    *logging.Logger
}

// New constructs an empty FileCataloger that reads through fs, hashing with
// algorithm when promotion requires a full digest.
func New(fs vfs.VFS, algorithm filehash.Algorithm, logger *logging.Logger) *FileCataloger {
	return &FileCataloger{
		buckets:   make(map[uint64]*firstKBytesProxy),
		vfs:       fs,
		algorithm: algorithm,
		logger:    logger,
	}
}

// Insert stats path, builds its vfs.ID, and either creates a new pending
// first-K-bytes bucket for its size or delegates to the existing one. Stat
// failures propagate to the caller: a path emitted by the walker should
// always be statable, so a failure here is a programmer error under the
// reference semantics.
func (c *FileCataloger) Insert(path string) error {
	meta, err := c.vfs.Metadata(path)
	if err != nil {
		return fmt.Errorf("unable to stat %s: %w", path, err)
	}
	id := meta.ID

	bucket, ok := c.buckets[meta.Length]
	if !ok {
		c.buckets[meta.Length] = newFirstKBytesProxy(id, path)
		return nil
	}
	return bucket.insert(c.vfs, c.algorithm, id, path)
}

// InsertSoft behaves like Insert but downgrades a per-file error to a logged
// warning and a skip instead of propagating it, exercising the error
// handling design's explicit allowance to "soften this to a skip with a
// warning."
func (c *FileCataloger) InsertSoft(path string) {
	if err := c.Insert(path); err != nil {
		c.logger.Warn(err)
	}
}

// GetRepeatGroups returns every duplicate group found across all size
// buckets. A group is the set of Duplicates sharing one content hash; a
// group is included only when it spans at least two distinct inode IDs.
// This is the grouping the actor pipeline acts on, since a Selector chooses
// its keeper from among the Duplicates within one group.
func (c *FileCataloger) GetRepeatGroups() [][]*Duplicates {
	var all [][]*Duplicates
	for _, bucket := range c.buckets {
		all = append(all, bucket.getRepeatGroups()...)
	}
	return all
}

// GetRepeats flattens every length bucket's duplicate groups into a single
// collection, the literal shape of the reference get_repeats operation.
func (c *FileCataloger) GetRepeats() []*Duplicates {
	var all []*Duplicates
	for _, group := range c.GetRepeatGroups() {
		all = append(all, group...)
	}
	return all
}
