//go:build !windows

package osfs

import (
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/zwimer/smllr/internal/vfs"
)

// metadataFromFileInfo extracts vfs.Metadata from an os.FileInfo, pulling the
// device/inode pair from the underlying unix.Stat_t the way
// readContentMetadata does in mutagen's filesystem package. POSIX stat has no
// true creation time, so Created is populated from ctim (last status change);
// this is the closest cheaply available field and is a known approximation.
func metadataFromFileInfo(path string, info os.FileInfo) (*vfs.Metadata, error) {
	stat, ok := info.Sys().(*unix.Stat_t)
	if !ok {
		return nil, vfs.NewIoError(vfs.KindOther, path, errNoStat)
	}
	return &vfs.Metadata{
		Length:  uint64(info.Size()),
		Created: time.Unix(stat.Ctim.Unix()),
		Kind:    kindFromFileMode(info.Mode()),
		ID: vfs.ID{
			Device: vfs.DeviceID(stat.Dev),
			Inode:  vfs.Inode(stat.Ino),
		},
	}, nil
}

var errNoStat = &statTypeError{}

type statTypeError struct{}

func (*statTypeError) Error() string {
	return "unable to extract POSIX stat information from file info"
}
