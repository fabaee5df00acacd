//go:build linux || freebsd

package fs

import (
	"context"
	"syscall"
	"time"

	"folderlist/internal/lister"
	"folderlist/internal/logging"
	"folderlist/internal/view"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var (
	fileLogger = logging.GetLogger().WithPrefix("file")
)

// IndexFileName is the file in the mount root holding the rendered table.
const IndexFileName = "FOLDERS.txt"

// indexName returns the name the index file takes next to entries:
// IndexFileName, prefixed with underscores while a subfolder already uses it.
func indexName(entries []lister.FolderEntry) string {
	taken := make(map[string]bool, len(entries))
	for _, e := range entries {
		taken[e.Name] = true
	}
	name := IndexFileName
	for taken[name] {
		name = "_" + name
	}
	return name
}

// IndexFile renders the current listing on every read.
type IndexFile struct {
	fs *FolderFS
}

func (f *IndexFile) content() ([]byte, error) {
	entries, err := f.fs.snapshot()
	if err != nil {
		return nil, err
	}
	return view.Table(entries), nil
}

// Attr implements the Node interface, returning the file's attributes.
func (f *IndexFile) Attr(_ context.Context, a *fuse.Attr) error {
	data, err := f.content()
	if err != nil {
		return ToFuseError(err)
	}

	now := time.Now()
	a.Mode = 0444
	a.Size = uint64(len(data))
	a.Mtime = now
	a.Atime = now
	a.Ctime = now
	a.Uid = f.fs.uid
	a.Gid = f.fs.gid
	return nil
}

// Open implements the NodeOpener interface. The size reported by Attr can be
// stale by the time of the read, so reads bypass the page cache.
func (f *IndexFile) Open(_ context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fusefs.Handle, error) {
	if !req.Flags.IsReadOnly() {
		fileLogger.Warn("Rejected write open of %s", IndexFileName)
		return nil, syscall.EPERM
	}
	resp.Flags |= fuse.OpenDirectIO
	return f, nil
}

// ReadAll implements the HandleReadAller interface.
func (f *IndexFile) ReadAll(_ context.Context) ([]byte, error) {
	data, err := f.content()
	if err != nil {
		return nil, ToFuseError(err)
	}
	fileLogger.Trace("Serving %d bytes of %s", len(data), IndexFileName)
	return data, nil
}
