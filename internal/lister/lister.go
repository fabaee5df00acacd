// Package lister enumerates the immediate subfolders of a root directory
// together with their creation and modification timestamps.
package lister

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"folderlist/internal/logging"
)

var (
	logger = logging.GetLogger().WithPrefix("lister")
)

// SortOrder selects the order of a listing.
type SortOrder string

const (
	SortByName     SortOrder = "name"
	SortByCreated  SortOrder = "created"
	SortByModified SortOrder = "modified"
	// SortNone keeps the order the operating system enumerated the children in.
	SortNone SortOrder = "none"
)

// ParseSortOrder validates a sort order name. An empty name means SortByName.
func ParseSortOrder(name string) (SortOrder, error) {
	switch SortOrder(name) {
	case "":
		return SortByName, nil
	case SortByName, SortByCreated, SortByModified, SortNone:
		return SortOrder(name), nil
	}
	return "", fmt.Errorf("unknown sort order %q (want name, created, modified or none)", name)
}

// MetadataPolicy decides what happens when one child's timestamps cannot be read.
type MetadataPolicy string

const (
	// SkipOnError drops the child and keeps listing.
	SkipOnError MetadataPolicy = "skip"
	// FailOnError aborts the listing with an ErrMetadata error.
	FailOnError MetadataPolicy = "fail"
)

// ParseMetadataPolicy validates a policy name. An empty name means SkipOnError.
func ParseMetadataPolicy(name string) (MetadataPolicy, error) {
	switch MetadataPolicy(name) {
	case "":
		return SkipOnError, nil
	case SkipOnError, FailOnError:
		return MetadataPolicy(name), nil
	}
	return "", fmt.Errorf("unknown metadata error policy %q (want skip or fail)", name)
}

// Options configures a Lister.
type Options struct {
	Sort            SortOrder
	OnMetadataError MetadataPolicy
	// OnSkip, if set, is called for every child dropped under SkipOnError.
	OnSkip func(name string, err error)
}

// Lister lists subfolders. It holds no per-root state; every call reads the
// filesystem afresh and returns a new slice.
type Lister struct {
	opts      Options
	stat      func(string) (os.FileInfo, error)
	readDir   func(string) ([]fs.DirEntry, error)
	birthTime func(string, os.FileInfo) (time.Time, error)
}

// New creates a Lister. Zero-valued options fall back to SortByName and SkipOnError.
func New(opts Options) *Lister {
	if opts.Sort == "" {
		opts.Sort = SortByName
	}
	if opts.OnMetadataError == "" {
		opts.OnMetadataError = SkipOnError
	}
	return &Lister{
		opts:      opts,
		stat:      os.Stat,
		readDir:   readDirUnsorted,
		birthTime: creationTime,
	}
}

// ListSubfolders lists rootPath with default options.
func ListSubfolders(rootPath string) ([]FolderEntry, error) {
	return New(Options{}).ListSubfolders(rootPath)
}

// ListSubfolders returns one FolderEntry per immediate child of rootPath whose
// resolved type is a directory. Symlinks to directories are included.
// It returns an ErrPath error when rootPath cannot be listed and an empty,
// non-nil slice when it has no subfolders.
func (l *Lister) ListSubfolders(rootPath string) ([]FolderEntry, error) {
	logger.Debug("Listing subfolders of %q (sort=%s, on-error=%s)", rootPath, l.opts.Sort, l.opts.OnMetadataError)

	rootInfo, err := l.stat(rootPath)
	if err != nil {
		return nil, pathError(OpStat, rootPath, err)
	}
	if !rootInfo.IsDir() {
		return nil, pathError(OpStat, rootPath, ErrNotDirectory)
	}

	children, err := l.readDir(rootPath)
	if err != nil {
		return nil, pathError(OpReadDir, rootPath, err)
	}
	logger.Trace("Root %q has %d children", rootPath, len(children))

	entries := make([]FolderEntry, 0, len(children))
	for _, child := range children {
		entry, ok, err := l.inspect(rootPath, child)
		if err != nil {
			if l.opts.OnMetadataError == FailOnError {
				return nil, err
			}
			if l.opts.OnSkip != nil {
				logger.Debug("Skipping %q: %v", child.Name(), err)
				l.opts.OnSkip(child.Name(), err)
			} else {
				logger.Warn("Skipping %q: %v", child.Name(), err)
			}
			continue
		}
		if ok {
			entries = append(entries, entry)
		}
	}

	sortEntries(entries, l.opts.Sort)
	logger.Debug("Found %d subfolders in %q", len(entries), rootPath)
	return entries, nil
}

// inspect resolves one child. ok is false for children that are not directories.
func (l *Lister) inspect(rootPath string, child fs.DirEntry) (FolderEntry, bool, error) {
	fullPath := filepath.Join(rootPath, child.Name())

	info, err := l.stat(fullPath)
	if err != nil {
		// A dangling symlink is not a directory, not a metadata failure.
		if child.Type()&fs.ModeSymlink != 0 && errors.Is(err, fs.ErrNotExist) {
			logger.Trace("Ignoring dangling symlink %q", fullPath)
			return FolderEntry{}, false, nil
		}
		return FolderEntry{}, false, metadataError(OpStat, fullPath, err)
	}
	if !info.IsDir() {
		logger.Trace("Ignoring non-directory %q", fullPath)
		return FolderEntry{}, false, nil
	}

	created, err := l.birthTime(fullPath, info)
	if err != nil {
		return FolderEntry{}, false, metadataError(OpBirthTime, fullPath, err)
	}

	return FolderEntry{
		Name:       child.Name(),
		CreatedAt:  created,
		ModifiedAt: info.ModTime(),
	}, true, nil
}

// readDirUnsorted returns children in native enumeration order; os.ReadDir
// would sort them by name.
func readDirUnsorted(path string) ([]fs.DirEntry, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	return dir.ReadDir(-1)
}

func sortEntries(entries []FolderEntry, order SortOrder) {
	switch order {
	case SortNone:
		return
	case SortByCreated:
		sort.SliceStable(entries, func(i, j int) bool {
			if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
				return entries[i].CreatedAt.Before(entries[j].CreatedAt)
			}
			return entries[i].Name < entries[j].Name
		})
	case SortByModified:
		sort.SliceStable(entries, func(i, j int) bool {
			if !entries[i].ModifiedAt.Equal(entries[j].ModifiedAt) {
				return entries[i].ModifiedAt.Before(entries[j].ModifiedAt)
			}
			return entries[i].Name < entries[j].Name
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Name < entries[j].Name
		})
	}
}
