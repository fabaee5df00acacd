//go:build linux || freebsd

package fs

import (
	"errors"
	"os"
	"syscall"

	"folderlist/internal/lister"
	"folderlist/internal/logging"
)

var (
	errLogger = logging.GetLogger().WithPrefix("error")
)

// ToFuseError converts a listing error to the errno FUSE hands back to the
// kernel.
func ToFuseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, lister.ErrNotDirectory):
		return syscall.ENOTDIR
	case errors.Is(err, os.ErrNotExist):
		return syscall.ENOENT
	case errors.Is(err, os.ErrPermission):
		return syscall.EACCES
	default:
		errLogger.Debug("Unmapped error, returning EIO: %v", err)
		return syscall.EIO
	}
}
