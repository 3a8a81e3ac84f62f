//go:build windows

package actor

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// isCrossDeviceError reports whether err is due to an attempted hardlink
// across devices on Windows, where CreateHardLink fails with
// ERROR_NOT_SAME_DEVICE instead of POSIX's EXDEV.
func isCrossDeviceError(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, windows.ERROR_NOT_SAME_DEVICE)
	}
	return false
}
