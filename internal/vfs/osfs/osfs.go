// Package osfs is the real, OS-backed implementation of vfs.VFS.
package osfs

import (
	"hash"
	"io"
	"os"

	"github.com/zwimer/smllr/internal/vfs"
)

// OSFS implements vfs.VFS against the local operating system's filesystem.
type OSFS struct{}

// New constructs an OSFS.
func New() *OSFS {
	return &OSFS{}
}

// ListDir implements vfs.VFS.ListDir.
func (fs *OSFS) ListDir(path string) ([]vfs.DirEntry, error) {
	directory, err := os.Open(path)
	if err != nil {
		return nil, translateError(path, err)
	}
	defer directory.Close()

	infos, err := directory.Readdir(0)
	if err != nil {
		return nil, translateError(path, err)
	}

	entries := make([]vfs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = vfs.DirEntry{
			Name: info.Name(),
			Kind: kindFromFileMode(info.Mode()),
		}
	}
	return entries, nil
}

// Metadata implements vfs.VFS.Metadata.
func (fs *OSFS) Metadata(path string) (*vfs.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, translateError(path, err)
	}
	return metadataFromFileInfo(path, info)
}

// SymlinkMetadata implements vfs.VFS.SymlinkMetadata.
func (fs *OSFS) SymlinkMetadata(path string) (*vfs.Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, translateError(path, err)
	}
	return metadataFromFileInfo(path, info)
}

// ReadLink implements vfs.VFS.ReadLink.
func (fs *OSFS) ReadLink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", translateError(path, err)
	}
	return target, nil
}

// Open implements vfs.VFS.Open.
func (fs *OSFS) Open(path string) (vfs.Handle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, translateError(path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, translateError(path, err)
	}
	metadata, err := metadataFromFileInfo(path, info)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &handle{path: path, file: file, metadata: metadata}, nil
}

// Remove implements vfs.VFS.Remove.
func (fs *OSFS) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return translateError(path, err)
	}
	return nil
}

// Link implements vfs.VFS.Link.
func (fs *OSFS) Link(oldPath, newPath string) error {
	if err := os.Link(oldPath, newPath); err != nil {
		return translateError(newPath, err)
	}
	return nil
}

// handle is the OSFS implementation of vfs.Handle.
type handle struct {
	path     string
	file     *os.File
	metadata *vfs.Metadata
}

// Inode implements vfs.Handle.Inode.
func (h *handle) Inode() vfs.ID {
	return h.metadata.ID
}

// Kind implements vfs.Handle.Kind.
func (h *handle) Kind() vfs.FileKind {
	return h.metadata.Kind
}

// Metadata implements vfs.Handle.Metadata.
func (h *handle) Metadata() (*vfs.Metadata, error) {
	return h.metadata, nil
}

// FirstBytes implements vfs.Handle.FirstBytes.
func (h *handle) FirstBytes() (vfs.FirstBytes, error) {
	var result vfs.FirstBytes
	if _, err := h.file.Seek(0, io.SeekStart); err != nil {
		return result, translateError(h.path, err)
	}
	if _, err := io.ReadFull(h.file, result[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return result, translateError(h.path, err)
	}
	return result, nil
}

// Hash implements vfs.Handle.Hash.
func (h *handle) Hash(hasher hash.Hash) ([]byte, error) {
	if _, err := h.file.Seek(0, io.SeekStart); err != nil {
		return nil, translateError(h.path, err)
	}
	if _, err := io.Copy(hasher, h.file); err != nil {
		return nil, translateError(h.path, err)
	}
	return hasher.Sum(nil), nil
}

// Close implements vfs.Handle.Close.
func (h *handle) Close() error {
	return h.file.Close()
}

func kindFromFileMode(mode os.FileMode) vfs.FileKind {
	switch {
	case mode&os.ModeSymlink != 0:
		return vfs.KindSymlink
	case mode.IsDir():
		return vfs.KindDirectory
	default:
		return vfs.KindFile
	}
}
