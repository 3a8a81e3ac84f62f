package osfs

import (
	"errors"
	"os"

	"github.com/zwimer/smllr/internal/vfs"
)

// translateError classifies a raw os package error into a vfs.IoError, the
// way the core error handling design requires so that callers can branch via
// errors.As without depending on the os package directly.
func translateError(path string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *vfs.IoError
	if errors.As(err, &ioErr) {
		return err
	}
	switch {
	case os.IsNotExist(err):
		return vfs.NewIoError(vfs.KindNotFound, path, err)
	case os.IsPermission(err):
		return vfs.NewIoError(vfs.KindPermission, path, err)
	default:
		return vfs.NewIoError(vfs.KindOther, path, err)
	}
}
