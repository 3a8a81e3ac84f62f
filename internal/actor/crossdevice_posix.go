//go:build !windows

package actor

import (
	"errors"
	"os"
	"syscall"
)

// isCrossDeviceError reports whether err is due to an attempted hardlink
// across devices, mirroring mutagen's isCrossDeviceError check on os.Rename
// (pkg/filesystem/atomic_posix.go) but applied to os.Link, which fails the
// same way with EXDEV.
func isCrossDeviceError(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err == syscall.EXDEV
	}
	return false
}
