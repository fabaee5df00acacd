// Package view renders folder listings for terminals and files.
package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"folderlist/internal/lister"
)

// Column headings, in display order.
var Headers = [3]string{"Name", "Creation Date", "Last Modified Date"}

// WriteTable writes entries as an aligned three-column table with a header row.
func WriteTable(w io.Writer, entries []lister.FolderEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", Headers[0], Headers[1], Headers[2])
	for _, e := range entries {
		row := e.Row()
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row[0], row[1], row[2])
	}
	return tw.Flush()
}

// Table returns the output of WriteTable as bytes.
func Table(entries []lister.FolderEntry) []byte {
	var buf bytes.Buffer
	_ = WriteTable(&buf, entries)
	return buf.Bytes()
}

// jsonEntry is the machine-readable form of one row: the raw timestamps in
// RFC 3339 plus the formatted strings shown in the table.
type jsonEntry struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Created    string `json:"created"`
	Modified   string `json:"modified"`
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
}

// WriteJSON writes entries under root as an indented JSON array.
func WriteJSON(w io.Writer, root string, entries []lister.FolderEntry) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{
			Name:       e.Name,
			Path:       filepath.Join(root, e.Name),
			Created:    e.Created(),
			Modified:   e.Modified(),
			CreatedAt:  e.CreatedAt.Format(time.RFC3339Nano),
			ModifiedAt: e.ModifiedAt.Format(time.RFC3339Nano),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
