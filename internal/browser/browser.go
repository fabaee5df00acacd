// Package browser holds the presentation-layer state of a folder listing:
// the chosen root, the rows currently on display, and activation of a row.
package browser

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"folderlist/internal/lister"
	"folderlist/internal/logging"
)

var (
	logger = logging.GetLogger().WithPrefix("browser")

	// ErrNoRoot is returned when an operation needs a root and none is set.
	ErrNoRoot = errors.New("no root path selected")

	// ErrNotListed is returned by Activate for a name not currently displayed.
	ErrNotListed = errors.New("folder is not in the current listing")
)

// Lister lists subfolders of a root.
type Lister interface {
	ListSubfolders(rootPath string) ([]lister.FolderEntry, error)
}

// Launcher opens a folder under a root in an editor.
type Launcher interface {
	ResolveAndLaunch(rootPath, folderName string) error
}

// SessionStore remembers the last root across runs.
type SessionStore interface {
	Remember(root string) error
}

// Browser is the state behind one folder table. It is safe for concurrent use.
type Browser struct {
	lister   Lister
	launcher Launcher
	session  SessionStore

	mu      sync.RWMutex
	root    string
	entries []lister.FolderEntry
}

// New creates a Browser. session may be nil.
func New(l Lister, launch Launcher, session SessionStore) *Browser {
	return &Browser{
		lister:   l,
		launcher: launch,
		session:  session,
	}
}

// SetRoot selects a new root path and clears the displayed rows.
func (b *Browser) SetRoot(root string) error {
	if root == "" {
		return ErrNoRoot
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	b.mu.Lock()
	changed := b.root != root
	b.root = root
	if changed {
		b.entries = nil
	}
	b.mu.Unlock()

	logger.Debug("Root set to %q", root)
	return nil
}

// Root returns the current root path.
func (b *Browser) Root() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.root
}

// Refresh lists the current root and replaces the displayed rows. On error
// the previous rows stay on display. A root that lists successfully is
// recorded in the session store, if any.
func (b *Browser) Refresh() ([]lister.FolderEntry, error) {
	root := b.Root()
	if root == "" {
		return nil, ErrNoRoot
	}

	entries, err := b.lister.ListSubfolders(root)
	if err != nil {
		logger.Warn("Refresh of %q failed, keeping %d rows: %v", root, len(b.Entries()), err)
		return nil, err
	}

	b.mu.Lock()
	if b.root == root {
		b.entries = entries
	}
	b.mu.Unlock()

	if b.session != nil {
		if err := b.session.Remember(root); err != nil {
			// losing the session is not worth failing the listing
			logger.Warn("Could not remember root %q: %v", root, err)
		}
	}
	return copyEntries(entries), nil
}

// Entries returns a copy of the rows on display.
func (b *Browser) Entries() []lister.FolderEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyEntries(b.entries)
}

// Rows returns the displayed rows as (name, created, modified) triples.
func (b *Browser) Rows() [][3]string {
	entries := b.Entries()
	rows := make([][3]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.Row())
	}
	return rows
}

// Activate opens the displayed folder called name in the editor.
func (b *Browser) Activate(name string) error {
	b.mu.RLock()
	root := b.root
	listed := false
	for _, e := range b.entries {
		if e.Name == name {
			listed = true
			break
		}
	}
	b.mu.RUnlock()

	if root == "" {
		return ErrNoRoot
	}
	if !listed {
		return fmt.Errorf("%w: %q", ErrNotListed, name)
	}
	return b.launcher.ResolveAndLaunch(root, name)
}

func copyEntries(entries []lister.FolderEntry) []lister.FolderEntry {
	if entries == nil {
		return nil
	}
	out := make([]lister.FolderEntry, len(entries))
	copy(out, entries)
	return out
}
