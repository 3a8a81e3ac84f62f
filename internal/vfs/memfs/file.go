package memfs

import (
	"errors"
	"hash"
	"time"

	"github.com/zwimer/smllr/internal/vfs"
)

var (
	errNotFound   = errors.New("no such file")
	errNoMetadata = errors.New("no metadata")
)

// File is a builder for a MemFS entry, mirroring the reference mock
// filesystem's TestFile/TestMD builder methods (with_contents, with_inode,
// with_kind, with_metadata).
type File struct {
	path     string
	contents []byte
	length   uint64
	kind     vfs.FileKind
	created  time.Time
	inode    vfs.Inode
	device   vfs.DeviceID
	inodeSet bool
	hasMeta  bool
}

// NewFile starts a builder for a file at path p.
func NewFile(p string) *File {
	return &File{
		path:    p,
		kind:    vfs.KindFile,
		created: time.Unix(0, 0).UTC(),
		hasMeta: true,
	}
}

// WithContents sets the file's content, which also determines its length
// and the bytes FirstBytes/Hash will read.
func (f *File) WithContents(contents []byte) *File {
	f.contents = contents
	return f
}

// WithLength sets the file's reported length when no contents are set,
// matching TestMD.with_len allowing len > 0 with no contents set. If
// WithContents is also used, the length of the contents is reported instead.
func (f *File) WithLength(n uint64) *File {
	f.length = n
	return f
}

// WithKind overrides the file's kind.
func (f *File) WithKind(kind vfs.FileKind) *File {
	f.kind = kind
	return f
}

// WithCreated overrides the file's creation timestamp.
func (f *File) WithCreated(t time.Time) *File {
	f.created = t
	return f
}

// WithInode overrides the file's device/inode identity instead of letting
// MemFS assign one densely on Add.
func (f *File) WithInode(device vfs.DeviceID, inode vfs.Inode) *File {
	f.device = device
	f.inode = inode
	f.inodeSet = true
	return f
}

// WithoutMetadata marks the file as having no metadata, exercising the
// NoMetadata error kind the way a file created without a TestMD does in the
// reference mock filesystem.
func (f *File) WithoutMetadata() *File {
	f.hasMeta = false
	return f
}

// handle is the MemFS implementation of vfs.Handle.
type handle struct {
	path  string
	entry *entry
}

// Inode implements vfs.Handle.Inode.
func (h *handle) Inode() vfs.ID {
	return h.entry.id
}

// Kind implements vfs.Handle.Kind.
func (h *handle) Kind() vfs.FileKind {
	return h.entry.kind
}

// Metadata implements vfs.Handle.Metadata.
func (h *handle) Metadata() (*vfs.Metadata, error) {
	return metadataOf(h.path, h.entry)
}

// FirstBytes implements vfs.Handle.FirstBytes.
func (h *handle) FirstBytes() (vfs.FirstBytes, error) {
	var result vfs.FirstBytes
	if h.entry.contents == nil {
		return result, vfs.NewIoError(vfs.KindNotFound, h.path, errNoContents)
	}
	copy(result[:], h.entry.contents)
	return result, nil
}

// Hash implements vfs.Handle.Hash.
func (h *handle) Hash(hasher hash.Hash) ([]byte, error) {
	if h.entry.contents == nil {
		return nil, vfs.NewIoError(vfs.KindNotFound, h.path, errNoContents)
	}
	_, _ = hasher.Write(h.entry.contents)
	return hasher.Sum(nil), nil
}

// Close implements vfs.Handle.Close.
func (h *handle) Close() error {
	return nil
}

var errNoContents = errors.New("no contents set")
