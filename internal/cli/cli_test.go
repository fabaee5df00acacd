package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"folderlist/internal/browser"
	"folderlist/internal/config"
	"folderlist/internal/launcher"
	"folderlist/internal/lister"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Editor:          "code",
		LogLevel:        "error",
		StateFile:       filepath.Join(t.TempDir(), "state.json"),
		Sort:            lister.SortByName,
		OnMetadataError: lister.SkipOnError,
		WatchSchedule:   "@every 1s",
	}
}

func testRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "alpha"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "beta"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))

	mod := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(filepath.Join(root, "alpha"), mod, mod))
	return root
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	return runContext(context.Background(), cfg, args...)
}

func runContext(ctx context.Context, cfg *config.Config, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(cfg, "test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestListPrintsTable(t *testing.T) {
	root := testRoot(t)

	out, _, err := run(t, testConfig(t), "list", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Name"))
	assert.True(t, strings.HasPrefix(lines[1], "alpha"))
	assert.Contains(t, lines[1], "2024-03-01 12:00:00")
	assert.True(t, strings.HasPrefix(lines[2], "beta"))
	assert.NotContains(t, out, "notes.txt")
}

func TestListJSON(t *testing.T) {
	root := testRoot(t)

	out, _, err := run(t, testConfig(t), "list", "--json", root)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0]["name"])
	assert.Equal(t, "2024-03-01 12:00:00", rows[0]["modified"])
	assert.Equal(t, filepath.Join(root, "beta"), rows[1]["path"])
}

func TestListEmptyRoot(t *testing.T) {
	root := t.TempDir()

	out, errOut, err := run(t, testConfig(t), "list", root)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No subfolders")
}

func TestListUsesRememberedRoot(t *testing.T) {
	cfg := testConfig(t)
	root := testRoot(t)

	_, _, err := run(t, cfg, "list", root)
	require.NoError(t, err)

	out, _, err := run(t, cfg, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
}

func TestListWithoutRoot(t *testing.T) {
	_, _, err := run(t, testConfig(t), "list")
	assert.ErrorIs(t, err, errNoRoot)
}

func TestListErrors(t *testing.T) {
	cfg := testConfig(t)

	_, _, err := run(t, cfg, "list", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, lister.ErrPath)

	_, _, err = run(t, cfg, "list", "--sort", "size", testRoot(t))
	assert.Error(t, err)

	_, _, err = run(t, cfg, "list", "--on-error", "ignore", testRoot(t))
	assert.Error(t, err)

	_, _, err = run(t, cfg, "--log-level", "loud", "list", testRoot(t))
	assert.Error(t, err)
}

func TestListFailedRootIsNotRemembered(t *testing.T) {
	cfg := testConfig(t)
	root := testRoot(t)

	_, _, err := run(t, cfg, "list", root)
	require.NoError(t, err)
	_, _, err = run(t, cfg, "list", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	out, _, err := run(t, cfg, "recent")
	require.NoError(t, err)
	assert.Equal(t, "* "+root+"\n", out)
}

func TestOpenDryRun(t *testing.T) {
	root := testRoot(t)
	want := strings.Join(launcher.New("code").Command(root, "beta"), " ")

	out, _, err := run(t, testConfig(t), "open", "--dry-run", root, "beta")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)
}

func TestOpenDryRunCustomEditor(t *testing.T) {
	root := testRoot(t)
	want := strings.Join(launcher.New("code --new-window").Command(root, "alpha"), " ")

	out, _, err := run(t, testConfig(t), "--editor", "code --new-window", "open", "--dry-run", root, "alpha")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)
}

func TestOpenRememberedRoot(t *testing.T) {
	cfg := testConfig(t)
	root := testRoot(t)

	_, _, err := run(t, cfg, "list", root)
	require.NoError(t, err)

	out, _, err := run(t, cfg, "open", "--dry-run", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "alpha"))
}

func TestOpenRejectsUnlistedNames(t *testing.T) {
	root := testRoot(t)

	_, _, err := run(t, testConfig(t), "open", "--dry-run", root, "notes.txt")
	assert.ErrorIs(t, err, browser.ErrNotListed)

	_, _, err = run(t, testConfig(t), "open", "--dry-run", root, "gamma")
	assert.ErrorIs(t, err, browser.ErrNotListed)
}

func TestOpenMissingEditor(t *testing.T) {
	cfg := testConfig(t)
	cfg.Editor = "folderlist-test-no-such-editor"

	_, _, err := run(t, cfg, "open", testRoot(t), "alpha")
	assert.ErrorIs(t, err, launcher.ErrLaunch)
}

func TestRecent(t *testing.T) {
	cfg := testConfig(t)

	out, errOut, err := run(t, cfg, "recent")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No roots")

	first, second := testRoot(t), testRoot(t)
	for _, root := range []string{first, second} {
		_, _, err := run(t, cfg, "list", root)
		require.NoError(t, err)
	}

	out, _, err = run(t, cfg, "recent")
	require.NoError(t, err)
	assert.Equal(t, "* "+second+"\n  "+first+"\n", out)
}

func TestWatchPrintsInitialListing(t *testing.T) {
	root := testRoot(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, _, err := runContext(ctx, testConfig(t), "watch", "--every", "@every 1h", root)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Last Modified Date"), "unchanged listing is printed once")
	assert.Contains(t, out, root)
	assert.Contains(t, out, "alpha")
}

func TestWatchInvalidSchedule(t *testing.T) {
	_, _, err := run(t, testConfig(t), "watch", "--every", "sometimes", testRoot(t))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	cmd := NewVersionCmd("1.0.0-test")
	assert.Equal(t, "version", cmd.Use)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Version: 1.0.0-test")
}
