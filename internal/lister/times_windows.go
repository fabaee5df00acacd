//go:build windows

package lister

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the NTFS creation time carried in the stat result.
func creationTime(_ string, info os.FileInfo) (time.Time, error) {
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, data.CreationTime.Nanoseconds()), nil
	}
	return info.ModTime(), nil
}
