//go:build linux || freebsd

// Package fs exposes a folder listing as a read-only FUSE filesystem: every
// subfolder of the source root appears as an empty directory carrying the
// real timestamps, next to a FOLDERS.txt file holding the rendered table.
package fs

import (
	"context"
	"fmt"
	"time"

	"folderlist/internal/lister"
	"folderlist/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	vfsLogger = logging.GetLogger().WithPrefix("vfs")
)

// Lister lists subfolders of a root.
type Lister interface {
	ListSubfolders(rootPath string) ([]lister.FolderEntry, error)
}

// FolderFS is the read-only view of one root. Every directory read lists the
// source again, so the view follows the filesystem without caching.
type FolderFS struct {
	sourceDir string
	lister    Lister
	uid       uint32
	gid       uint32
	mountedAt time.Time
}

// NewFolderFS creates the view for sourceDir. It lists sourceDir once so an
// unusable root is reported before mounting.
func NewFolderFS(sourceDir string, l Lister) (*FolderFS, error) {
	vfsLogger.Debug("Creating folder view of %s", sourceDir)

	if _, err := l.ListSubfolders(sourceDir); err != nil {
		return nil, err
	}

	uid, gid := ownerIDs()

	return &FolderFS{
		sourceDir: sourceDir,
		lister:    l,
		uid:       uid,
		gid:       gid,
		mountedAt: time.Now(),
	}, nil
}

// Root implements the fusefs.FS interface, returning the root directory node.
func (vfs *FolderFS) Root() (fusefs.Node, error) {
	return &RootDir{fs: vfs}, nil
}

func (vfs *FolderFS) snapshot() ([]lister.FolderEntry, error) {
	entries, err := vfs.lister.ListSubfolders(vfs.sourceDir)
	if err != nil {
		vfsLogger.Error("Listing %s failed: %v", vfs.sourceDir, err)
		return nil, err
	}
	return entries, nil
}


// Serve mounts the view at mountPoint and serves requests until ctx is done
// or the filesystem is unmounted externally.
func (vfs *FolderFS) Serve(ctx context.Context, mountPoint string) error {
	vfsLogger.Info("Mounting %s at %s", vfs.sourceDir, mountPoint)
	vfsLogger.Debug("UID: %d, GID: %d", vfs.uid, vfs.gid)

	c, err := fuse.Mount(mountPoint,
		fuse.FSName("folderlist"),
		fuse.Subtype("folderlist"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}
	defer c.Close()

	done := make(chan error, 1)
	go func() {
		done <- fusefs.Serve(c, vfs)
	}()
	vfsLogger.Info("Filesystem mounted and ready")

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("fuse server: %w", err)
		}
		return nil
	case <-ctx.Done():
		vfsLogger.Info("Unmounting %s", mountPoint)
		if err := fuse.Unmount(mountPoint); err != nil {
			vfsLogger.Error("Unmount error: %v", err)
			return err
		}
		if err := <-done; err != nil {
			return fmt.Errorf("fuse server: %w", err)
		}
		vfsLogger.Info("Clean shutdown complete")
		return nil
	}
}
