//go:build linux || freebsd

package fs

import (
	"os"
	"strconv"
)

func safeIntToUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}

// ownerIDs returns the uid and gid reported for every node: the process
// owner, overridden by PUID and PGID when they parse.
func ownerIDs() (uid, gid uint32) {
	uid = safeIntToUint32(os.Getuid())
	gid = safeIntToUint32(os.Getgid())

	if id, ok := envID("PUID"); ok {
		uid = id
		vfsLogger.Debug("Using PUID from environment: %d", uid)
	}
	if id, ok := envID("PGID"); ok {
		gid = id
		vfsLogger.Debug("Using PGID from environment: %d", gid)
	}
	return uid, gid
}

func envID(key string) (uint32, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		vfsLogger.Warn("Ignoring %s=%q: %v", key, s, err)
		return 0, false
	}
	return uint32(id), true
}
