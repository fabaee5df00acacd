//go:build !linux && !darwin && !freebsd && !windows

package lister

import (
	"os"
	"time"
)

// creationTime falls back to the modification time where no portable birth
// time is available.
func creationTime(_ string, info os.FileInfo) (time.Time, error) {
	return info.ModTime(), nil
}
