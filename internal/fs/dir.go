//go:build linux || freebsd

package fs

import (
	"context"
	"os"
	"syscall"

	"folderlist/internal/lister"
	"folderlist/internal/logging"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	dirLogger = logging.GetLogger().WithPrefix("dir")
)

// Extended attributes exposed on every folder node.
const (
	XattrCreated  = "user.folderlist.created"
	XattrModified = "user.folderlist.modified"
)

// RootDir is the mount root: one directory per subfolder plus the index file.
// The index file yields its name to a subfolder called IndexFileName.
type RootDir struct {
	fs *FolderFS
}

// Attr implements the Node interface, returning directory attributes.
func (d *RootDir) Attr(_ context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	a.Uid = d.fs.uid
	a.Gid = d.fs.gid
	a.Mtime = d.fs.mountedAt
	if info, err := os.Stat(d.fs.sourceDir); err == nil {
		a.Mtime = info.ModTime()
	}
	a.Ctime = a.Mtime
	a.Atime = a.Mtime
	return nil
}

// Lookup implements the NodeStringLookuper interface, finding a child node.
func (d *RootDir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	dirLogger.Debug("Looking up %q", name)

	entries, err := d.fs.snapshot()
	if err != nil {
		return nil, ToFuseError(err)
	}
	if name == indexName(entries) {
		return &IndexFile{fs: d.fs}, nil
	}
	for _, e := range entries {
		if e.Name == name {
			return &FolderDir{fs: d.fs, entry: e}, nil
		}
	}

	dirLogger.Trace("No subfolder named %q", name)
	return nil, syscall.ENOENT
}

// ReadDirAll implements the HandleReadDirAller interface, listing directory contents.
func (d *RootDir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	entries, err := d.fs.snapshot()
	if err != nil {
		return nil, ToFuseError(err)
	}

	dirents := make([]fuse.Dirent, 0, len(entries)+1)
	for _, e := range entries {
		dirents = append(dirents, fuse.Dirent{Name: e.Name, Type: fuse.DT_Dir})
	}
	dirents = append(dirents, fuse.Dirent{Name: indexName(entries), Type: fuse.DT_File})

	dirLogger.Debug("Root contains %d entries", len(dirents))
	return dirents, nil
}

// FolderDir stands in for one subfolder. It is always empty; its attributes
// and extended attributes carry the folder's timestamps.
type FolderDir struct {
	fs    *FolderFS
	entry lister.FolderEntry
}

// Attr reports the folder's modification time as Mtime and its creation
// time as Ctime.
func (d *FolderDir) Attr(_ context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	a.Uid = d.fs.uid
	a.Gid = d.fs.gid
	a.Mtime = d.entry.ModifiedAt
	a.Atime = d.entry.ModifiedAt
	a.Ctime = d.entry.CreatedAt
	return nil
}

// Lookup implements the NodeStringLookuper interface. Folder nodes have no children.
func (d *FolderDir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	return nil, syscall.ENOENT
}

// ReadDirAll implements the HandleReadDirAller interface.
func (d *FolderDir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	return []fuse.Dirent{}, nil
}

// Getxattr implements the NodeGetxattrer interface, returning a formatted timestamp.
func (d *FolderDir) Getxattr(_ context.Context, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error {
	dirLogger.Trace("Getting xattr %q for %q", req.Name, d.entry.Name)

	switch req.Name {
	case XattrCreated:
		resp.Xattr = []byte(d.entry.Created())
	case XattrModified:
		resp.Xattr = []byte(d.entry.Modified())
	default:
		return fuse.ErrNoXattr
	}
	return nil
}

// Listxattr implements the NodeListxattrer interface.
func (d *FolderDir) Listxattr(_ context.Context, _ *fuse.ListxattrRequest, resp *fuse.ListxattrResponse) error {
	resp.Append(XattrCreated, XattrModified)
	return nil
}
