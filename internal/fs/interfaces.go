//go:build linux || freebsd

package fs

import (
	fusefs "bazil.org/fuse/fs"
)

// Node types and the FUSE capabilities they must keep.
var (
	_ fusefs.FS = (*FolderFS)(nil)

	_ fusefs.Node               = (*RootDir)(nil)
	_ fusefs.NodeStringLookuper = (*RootDir)(nil)
	_ fusefs.HandleReadDirAller = (*RootDir)(nil)

	_ fusefs.Node               = (*FolderDir)(nil)
	_ fusefs.NodeStringLookuper = (*FolderDir)(nil)
	_ fusefs.HandleReadDirAller = (*FolderDir)(nil)
	_ fusefs.NodeGetxattrer     = (*FolderDir)(nil)
	_ fusefs.NodeListxattrer    = (*FolderDir)(nil)

	_ fusefs.Node            = (*IndexFile)(nil)
	_ fusefs.NodeOpener      = (*IndexFile)(nil)
	_ fusefs.HandleReadAller = (*IndexFile)(nil)
)
