//go:build windows

package osfs

import (
	"hash/fnv"
	"os"
	"syscall"
	"time"

	"github.com/zwimer/smllr/internal/vfs"
)

// metadataFromFileInfo extracts vfs.Metadata from an os.FileInfo on Windows.
// Windows does not expose device/inode identity through os.FileInfo the way
// POSIX does, so DeviceID is always left at 0 (mirroring mutagen's own
// filesystem.Metadata comment that this field "can't be cheaply accessed in
// all cases") and Inode is a derived pseudo-identity hashed from the path,
// documented as a known limitation: two distinct hardlinked paths on Windows
// will not be recognized as sharing an inode.
func metadataFromFileInfo(path string, info os.FileInfo) (*vfs.Metadata, error) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(path))
	created := info.ModTime()
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		created = time.Unix(0, data.CreationTime.Nanoseconds())
	}
	return &vfs.Metadata{
		Length:  uint64(info.Size()),
		Created: created,
		Kind:    kindFromFileMode(info.Mode()),
		ID: vfs.ID{
			Device: 0,
			Inode:  vfs.Inode(hasher.Sum64()),
		},
	}, nil
}
