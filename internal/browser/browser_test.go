package browser

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"folderlist/internal/lister"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLauncher struct {
	mu    sync.Mutex
	calls [][2]string
	err   error
}

func (f *fakeLauncher) ResolveAndLaunch(root, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, [2]string{root, name})
	return f.err
}

type fakeSession struct {
	roots []string
	err   error
}

func (f *fakeSession) Remember(root string) error {
	f.roots = append(f.roots, root)
	return f.err
}

type stubLister struct {
	mu      sync.Mutex
	entries []lister.FolderEntry
	err     error
}

func (s *stubLister) ListSubfolders(string) ([]lister.FolderEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]lister.FolderEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *stubLister) set(entries []lister.FolderEntry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.err = err
}

func TestBrowserRefreshAndActivate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "alpha"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "beta"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), nil, 0644))

	launch := &fakeLauncher{}
	session := &fakeSession{}
	b := New(lister.New(lister.Options{}), launch, session)

	require.NoError(t, b.SetRoot(root))
	assert.Empty(t, session.roots, "roots are remembered only once listed")

	entries, err := b.Refresh()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{root}, session.roots)

	rows := b.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0][0])
	assert.Equal(t, "beta", rows[1][0])

	require.NoError(t, b.Activate("beta"))
	assert.Equal(t, [][2]string{{root, "beta"}}, launch.calls)
}

func TestActivateRequiresListedName(t *testing.T) {
	b := New(&stubLister{entries: []lister.FolderEntry{{Name: "alpha"}}}, &fakeLauncher{}, nil)

	assert.ErrorIs(t, b.Activate("alpha"), ErrNoRoot)

	require.NoError(t, b.SetRoot(t.TempDir()))
	assert.ErrorIs(t, b.Activate("alpha"), ErrNotListed, "nothing displayed before the first refresh")

	_, err := b.Refresh()
	require.NoError(t, err)
	assert.NoError(t, b.Activate("alpha"))
	assert.ErrorIs(t, b.Activate("notes.txt"), ErrNotListed)
}

func TestActivatePropagatesLaunchError(t *testing.T) {
	launchErr := errors.New("editor missing")
	b := New(&stubLister{entries: []lister.FolderEntry{{Name: "alpha"}}}, &fakeLauncher{err: launchErr}, nil)
	require.NoError(t, b.SetRoot(t.TempDir()))
	_, err := b.Refresh()
	require.NoError(t, err)

	assert.ErrorIs(t, b.Activate("alpha"), launchErr)
}

func TestRefreshFailureKeepsRows(t *testing.T) {
	stub := &stubLister{entries: []lister.FolderEntry{{Name: "alpha"}}}
	b := New(stub, &fakeLauncher{}, nil)
	require.NoError(t, b.SetRoot(t.TempDir()))

	_, err := b.Refresh()
	require.NoError(t, err)

	stub.set(nil, &lister.Error{Kind: lister.ErrPath, Op: lister.OpStat, Path: "/gone", Err: os.ErrNotExist})
	_, err = b.Refresh()
	require.Error(t, err)
	assert.ErrorIs(t, err, lister.ErrPath)
	assert.Equal(t, [][3]string{{"alpha", lister.FormatTimestamp(time.Time{}), lister.FormatTimestamp(time.Time{})}}, b.Rows())
}

func TestRefreshWithoutRoot(t *testing.T) {
	b := New(&stubLister{}, &fakeLauncher{}, nil)
	_, err := b.Refresh()
	assert.ErrorIs(t, err, ErrNoRoot)
	assert.ErrorIs(t, b.SetRoot(""), ErrNoRoot)
}

func TestSetRootClearsRowsAndToleratesSessionErrors(t *testing.T) {
	session := &fakeSession{err: errors.New("read-only home")}
	b := New(&stubLister{entries: []lister.FolderEntry{{Name: "alpha"}}}, &fakeLauncher{}, session)

	first := t.TempDir()
	require.NoError(t, b.SetRoot(first))
	_, err := b.Refresh()
	require.NoError(t, err)
	assert.Len(t, b.Entries(), 1)

	require.NoError(t, b.SetRoot(first))
	assert.Len(t, b.Entries(), 1, "same root keeps rows")

	require.NoError(t, b.SetRoot(t.TempDir()))
	assert.Empty(t, b.Entries())
	assert.Equal(t, []string{first}, session.roots)
}

func TestFailedRefreshIsNotRemembered(t *testing.T) {
	session := &fakeSession{}
	b := New(lister.New(lister.Options{}), &fakeLauncher{}, session)

	require.NoError(t, b.SetRoot(filepath.Join(t.TempDir(), "missing")))
	_, err := b.Refresh()
	assert.ErrorIs(t, err, lister.ErrPath)
	assert.Empty(t, session.roots)
}

func TestEntriesReturnsCopy(t *testing.T) {
	b := New(&stubLister{entries: []lister.FolderEntry{{Name: "alpha"}}}, &fakeLauncher{}, nil)
	require.NoError(t, b.SetRoot(t.TempDir()))
	_, err := b.Refresh()
	require.NoError(t, err)

	entries := b.Entries()
	entries[0].Name = "mutated"
	assert.Equal(t, "alpha", b.Entries()[0].Name)
}
