//go:build darwin || freebsd

package lister

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime returns the birth time recorded by the filesystem.
func creationTime(path string, info os.FileInfo) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	if st.Btim.Sec > 0 {
		return time.Unix(st.Btim.Unix()), nil
	}
	return time.Unix(st.Ctim.Unix()), nil
}
