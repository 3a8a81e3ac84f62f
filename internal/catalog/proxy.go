package catalog

import (
	"fmt"

	"github.com/zwimer/smllr/internal/filehash"
	"github.com/zwimer/smllr/internal/vfs"
)

// proxyState tags which variant of a proxy's tagged union is live. Avoiding
// a mutable "maybe-promoted" record in favor of exhaustive dispatch over
// this tag keeps the one-way pending-to-promoted transition explicit, per
// the catalog's design notes on tagged variants.
type proxyState uint8

const (
	statePendingSingle proxyState = iota
	statePromoted
)

// firstKBytesProxy is the second classification tier, one per size bucket,
// keyed by the first K bytes. It starts in pendingSingle, holding one deferred (ID, path) pair with no
// first-bytes read performed yet, and promotes to a map of FirstBytes to
// hashProxy on the second insert at that size.
type firstKBytesProxy struct {
	state proxyState

	// pendingSingle fields.
	pendingID   vfs.ID
	pendingPath string

	// promoted fields.
	byFirstBytes map[vfs.FirstBytes]*hashProxy
}

// newFirstKBytesProxy constructs a pendingSingle proxy holding one deferred
// entry.
func newFirstKBytesProxy(id vfs.ID, path string) *firstKBytesProxy {
	return &firstKBytesProxy{
		state:       statePendingSingle,
		pendingID:   id,
		pendingPath: path,
	}
}

// insert files a second (or later) path sharing this proxy's size. On the
// first call this triggers promotion: both the stored pending path and the
// new path have their first K bytes read, and both are filed into fresh
// hashProxy buckets.
func (p *firstKBytesProxy) insert(fs vfs.VFS, algorithm filehash.Algorithm, id vfs.ID, path string) error {
	if p.state == statePendingSingle {
		pendingBytes, err := firstBytesOf(fs, p.pendingPath)
		if err != nil {
			return err
		}
		p.byFirstBytes = make(map[vfs.FirstBytes]*hashProxy)
		p.byFirstBytes[pendingBytes] = newHashProxy(p.pendingID, p.pendingPath)
		p.state = statePromoted
		p.pendingPath = ""
	}

	bytes, err := firstBytesOf(fs, path)
	if err != nil {
		return err
	}
	bucket, ok := p.byFirstBytes[bytes]
	if !ok {
		p.byFirstBytes[bytes] = newHashProxy(id, path)
		return nil
	}
	return bucket.insert(fs, algorithm, id, path)
}

// getRepeatGroups returns nothing while pendingSingle (a single path at this
// size has no duplicates); once promoted it unions every child hashProxy's
// groups. Each returned group is the set of Duplicates sharing one content
// hash within this size bucket.
func (p *firstKBytesProxy) getRepeatGroups() [][]*Duplicates {
	if p.state == statePendingSingle {
		return nil
	}
	var all [][]*Duplicates
	for _, bucket := range p.byFirstBytes {
		all = append(all, bucket.getRepeatGroups()...)
	}
	return all
}

func firstBytesOf(fs vfs.VFS, path string) (vfs.FirstBytes, error) {
	handle, err := fs.Open(path)
	if err != nil {
		return vfs.FirstBytes{}, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer handle.Close()
	bytes, err := handle.FirstBytes()
	if err != nil {
		return vfs.FirstBytes{}, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return bytes, nil
}

// hashProxy is the third classification tier, keyed by full content digest.
// It mirrors firstKBytesProxy's pending/promoted structure, but its promoted
// map is keyed by Hash and each hash bucket is itself keyed by inode ID so
// that hardlinks to one inode collapse into a single Duplicates. This
// second-level keying by ID rather than path is the invariant that prevents
// an actor from destroying every name of a file that has several.
type hashProxy struct {
	state proxyState

	pendingID   vfs.ID
	pendingPath string

	byHash map[string]map[vfs.ID]*Duplicates
}

func newHashProxy(id vfs.ID, path string) *hashProxy {
	return &hashProxy{
		state:       statePendingSingle,
		pendingID:   id,
		pendingPath: path,
	}
}

// insert files a second (or later) path sharing this proxy's size and
// first-K-bytes bucket. On the first call this triggers promotion: both the
// stored pending path and the new path are hashed in full.
func (p *hashProxy) insert(fs vfs.VFS, algorithm filehash.Algorithm, id vfs.ID, path string) error {
	if p.state == statePendingSingle {
		pendingDigest, err := hashOf(fs, algorithm, p.pendingPath)
		if err != nil {
			return err
		}
		p.byHash = make(map[string]map[vfs.ID]*Duplicates)
		p.byHash[pendingDigest] = map[vfs.ID]*Duplicates{
			p.pendingID: {ID: p.pendingID, Paths: []string{p.pendingPath}},
		}
		p.state = statePromoted
		p.pendingPath = ""
	}

	digest, err := hashOf(fs, algorithm, path)
	if err != nil {
		return err
	}
	bucket, ok := p.byHash[digest]
	if !ok {
		bucket = make(map[vfs.ID]*Duplicates)
		p.byHash[digest] = bucket
	}
	if dup, ok := bucket[id]; ok {
		dup.Paths = append(dup.Paths, path)
	} else {
		bucket[id] = &Duplicates{ID: id, Paths: []string{path}}
	}
	return nil
}

// getRepeatGroups emits, for every hash bucket whose inode map has at least
// two entries, one group containing every Duplicates value in that bucket.
// A bucket with a single inode holds only hardlinks of one file and has
// nothing to dedup.
func (p *hashProxy) getRepeatGroups() [][]*Duplicates {
	if p.state == statePendingSingle {
		return nil
	}
	var groups [][]*Duplicates
	for _, bucket := range p.byHash {
		if len(bucket) < 2 {
			continue
		}
		group := make([]*Duplicates, 0, len(bucket))
		for _, dup := range bucket {
			group = append(group, dup)
		}
		groups = append(groups, group)
	}
	return groups
}

func hashOf(fs vfs.VFS, algorithm filehash.Algorithm, path string) (string, error) {
	handle, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer handle.Close()
	digest, err := handle.Hash(algorithm.New())
	if err != nil {
		return "", fmt.Errorf("unable to hash %s: %w", path, err)
	}
	return string(digest), nil
}
