// Package memfs is an in-memory vfs.VFS test double. It mirrors the shape of
// the reference implementation's mock filesystem: a flat map of paths to
// files plus a separate map of symlinks, dense inode assignment from 0 in
// insertion order, and explicit symlink-cycle detection on lookup.
package memfs

import (
	"path"
	"sort"
	"time"

	"github.com/zwimer/smllr/internal/vfs"
)

// entry is one file or directory in the mock filesystem.
type entry struct {
	path     string
	kind     vfs.FileKind
	id       vfs.ID
	created  time.Time
	contents []byte
	length   uint64
	hasMeta  bool
}

// symlink is one symbolic link in the mock filesystem, holding its own
// identity separate from whatever it points to.
type symlink struct {
	path   string
	target string
	id     vfs.ID
}

// MemFS is the in-memory vfs.VFS implementation used throughout this
// module's tests.
type MemFS struct {
	files    map[string]*entry
	symlinks map[string]*symlink
}

// New constructs an empty MemFS.
func New() *MemFS {
	return &MemFS{
		files:    make(map[string]*entry),
		symlinks: make(map[string]*symlink),
	}
}

// nextInode returns the next densely-assigned inode, numbering every file
// and symlink created so far starting from 0.
func (m *MemFS) nextInode() vfs.Inode {
	return vfs.Inode(len(m.files) + len(m.symlinks))
}

func (m *MemFS) createRegular(p string, kind vfs.FileKind) *entry {
	e := &entry{
		path:    p,
		kind:    kind,
		id:      vfs.ID{Device: 0, Inode: m.nextInode()},
		created: time.Unix(0, 0).UTC(),
		hasMeta: true,
	}
	m.files[p] = e
	return e
}

// CreateFile creates an empty regular file at path p, analogous to `touch`.
func (m *MemFS) CreateFile(p string) *MemFS {
	m.createRegular(p, vfs.KindFile)
	return m
}

// CreateDir creates a directory at path p, analogous to `mkdir`.
func (m *MemFS) CreateDir(p string) *MemFS {
	m.createRegular(p, vfs.KindDirectory)
	return m
}

// CreateSymlink creates a symlink at path p pointing at target, analogous to
// `ln -s target p`.
func (m *MemFS) CreateSymlink(p, target string) *MemFS {
	m.symlinks[p] = &symlink{
		path:   p,
		target: target,
		id:     vfs.ID{Device: 0, Inode: m.nextInode()},
	}
	return m
}

// Add inserts a File built via NewFile, assigning it a dense inode if one
// was not explicitly overridden with WithInode.
func (m *MemFS) Add(f *File) *MemFS {
	length := f.length
	if f.contents != nil {
		length = uint64(len(f.contents))
	}
	e := &entry{
		path:     f.path,
		kind:     f.kind,
		contents: f.contents,
		created:  f.created,
		length:   length,
		hasMeta:  f.hasMeta,
	}
	if f.inodeSet {
		e.id = vfs.ID{Device: f.device, Inode: f.inode}
	} else {
		e.id = vfs.ID{Device: 0, Inode: m.nextInode()}
	}
	m.files[f.path] = e
	return m
}

// resolve follows a symlink chain starting at p until it reaches a regular
// file or directory entry, detecting cycles along the way.
func (m *MemFS) resolve(p string) (*entry, error) {
	if e, ok := m.files[p]; ok {
		return e, nil
	}
	seen := make(map[string]bool)
	cur := p
	for {
		link, ok := m.symlinks[cur]
		if !ok {
			return nil, vfs.NewIoError(vfs.KindNotFound, p, errNotFound)
		}
		if seen[link.target] {
			return nil, vfs.NewIoError(vfs.KindOther, p, vfs.ErrSymlinkLoop)
		}
		seen[link.target] = true
		if e, ok := m.files[link.target]; ok {
			return e, nil
		}
		cur = link.target
	}
}

// ListDir implements vfs.VFS.ListDir.
func (m *MemFS) ListDir(p string) ([]vfs.DirEntry, error) {
	clean := path.Clean(p)
	var entries []vfs.DirEntry
	for child, e := range m.files {
		if path.Dir(path.Clean(child)) == clean && path.Clean(child) != clean {
			entries = append(entries, vfs.DirEntry{Name: path.Base(child), Kind: e.kind})
		}
	}
	for child := range m.symlinks {
		if path.Dir(path.Clean(child)) == clean && path.Clean(child) != clean {
			entries = append(entries, vfs.DirEntry{Name: path.Base(child), Kind: vfs.KindSymlink})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Metadata implements vfs.VFS.Metadata: it follows a terminal symlink.
func (m *MemFS) Metadata(p string) (*vfs.Metadata, error) {
	e, err := m.resolve(p)
	if err != nil {
		return nil, err
	}
	return metadataOf(p, e)
}

// SymlinkMetadata implements vfs.VFS.SymlinkMetadata: it does not follow a
// terminal symlink.
func (m *MemFS) SymlinkMetadata(p string) (*vfs.Metadata, error) {
	if e, ok := m.files[p]; ok {
		return metadataOf(p, e)
	}
	if link, ok := m.symlinks[p]; ok {
		return &vfs.Metadata{Length: 0, Created: time.Unix(0, 0).UTC(), Kind: vfs.KindSymlink, ID: link.id}, nil
	}
	return nil, vfs.NewIoError(vfs.KindNotFound, p, errNotFound)
}

// ReadLink implements vfs.VFS.ReadLink.
func (m *MemFS) ReadLink(p string) (string, error) {
	link, ok := m.symlinks[p]
	if !ok {
		return "", vfs.NewIoError(vfs.KindNotFound, p, errNotFound)
	}
	return link.target, nil
}

// Open implements vfs.VFS.Open.
func (m *MemFS) Open(p string) (vfs.Handle, error) {
	e, err := m.resolve(p)
	if err != nil {
		return nil, err
	}
	if !e.hasMeta {
		return nil, vfs.NewIoError(vfs.KindNoMetadata, p, errNoMetadata)
	}
	return &handle{path: p, entry: e}, nil
}

// Remove implements vfs.VFS.Remove.
func (m *MemFS) Remove(p string) error {
	if _, ok := m.files[p]; ok {
		delete(m.files, p)
		return nil
	}
	if _, ok := m.symlinks[p]; ok {
		delete(m.symlinks, p)
		return nil
	}
	return vfs.NewIoError(vfs.KindNotFound, p, errNotFound)
}

// Link implements vfs.VFS.Link: newPath becomes a new name for oldPath's
// inode, sharing its ID and contents.
func (m *MemFS) Link(oldPath, newPath string) error {
	e, err := m.resolve(oldPath)
	if err != nil {
		return err
	}
	m.files[newPath] = &entry{
		path:     newPath,
		kind:     e.kind,
		id:       e.id,
		created:  e.created,
		contents: e.contents,
		length:   e.length,
		hasMeta:  e.hasMeta,
	}
	return nil
}

// EntryCount reports the number of live file and symlink entries, used by
// tests to assert on the gross shape of the filesystem after an actor runs.
func (m *MemFS) EntryCount() int {
	return len(m.files) + len(m.symlinks)
}

// InodeCount reports the number of distinct IDs among live file and symlink
// entries,
// used by tests to assert on hardlink collapse after FileLinker runs.
func (m *MemFS) InodeCount() int {
	seen := make(map[vfs.ID]bool)
	for _, e := range m.files {
		seen[e.id] = true
	}
	for _, l := range m.symlinks {
		seen[l.id] = true
	}
	return len(seen)
}

func metadataOf(p string, e *entry) (*vfs.Metadata, error) {
	if !e.hasMeta {
		return nil, vfs.NewIoError(vfs.KindNoMetadata, p, errNoMetadata)
	}
	return &vfs.Metadata{
		Length:  e.length,
		Created: e.created,
		Kind:    e.kind,
		ID:      e.id,
	}, nil
}
