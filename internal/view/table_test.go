package view

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"folderlist/internal/lister"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []lister.FolderEntry {
	alpha := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	beta := time.Date(2024, 2, 15, 8, 30, 0, 0, time.Local)
	return []lister.FolderEntry{
		{Name: "alpha", CreatedAt: alpha, ModifiedAt: alpha},
		{Name: "beta-longer-name", CreatedAt: beta, ModifiedAt: beta.Add(time.Hour)},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleEntries()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.True(t, strings.HasPrefix(lines[0], "Name"))
	assert.Contains(t, lines[0], "Creation Date")
	assert.Contains(t, lines[0], "Last Modified Date")
	assert.Equal(t, strings.Fields("alpha 2024-01-01 10:00:00 2024-01-01 10:00:00"), strings.Fields(lines[1]))
	assert.Equal(t, strings.Fields("beta-longer-name 2024-02-15 08:30:00 2024-02-15 09:30:00"), strings.Fields(lines[2]))

	// columns are aligned
	assert.Equal(t, strings.Index(lines[0], "Creation Date"), strings.Index(lines[1], "2024-01-01"))
}

func TestTableEmpty(t *testing.T) {
	out := string(Table(nil))
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Last Modified Date")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "/projects", sampleEntries()))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "alpha", decoded[0]["name"])
	assert.Equal(t, filepath.Join("/projects", "alpha"), decoded[0]["path"])
	assert.Equal(t, "2024-01-01 10:00:00", decoded[0]["created"])
	assert.Equal(t, "2024-02-15 09:30:00", decoded[1]["modified"])

	parsed, err := time.Parse(time.RFC3339Nano, decoded[1]["modified_at"])
	require.NoError(t, err)
	assert.True(t, parsed.Equal(sampleEntries()[1].ModifiedAt))
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "/x", nil))
	assert.Equal(t, "[]\n", buf.String())
}
