package lister

import "time"

// TimestampLayout is the display format for folder timestamps: YYYY-MM-DD HH:MM:SS.
const TimestampLayout = "2006-01-02 15:04:05"

// FolderEntry describes one immediate subfolder of a root path.
type FolderEntry struct {
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Created returns the creation timestamp formatted in local time.
func (e FolderEntry) Created() string {
	return FormatTimestamp(e.CreatedAt)
}

// Modified returns the modification timestamp formatted in local time.
func (e FolderEntry) Modified() string {
	return FormatTimestamp(e.ModifiedAt)
}

// Row returns the (name, created, modified) triple a presentation layer renders.
func (e FolderEntry) Row() [3]string {
	return [3]string{e.Name, e.Created(), e.Modified()}
}

// Equal reports whether two entries describe the same folder state.
func (e FolderEntry) Equal(other FolderEntry) bool {
	return e.Name == other.Name &&
		e.CreatedAt.Equal(other.CreatedAt) &&
		e.ModifiedAt.Equal(other.ModifiedAt)
}

// FormatTimestamp formats t as YYYY-MM-DD HH:MM:SS in the local time zone.
func FormatTimestamp(t time.Time) string {
	return FormatTimestampIn(t, time.Local)
}

// FormatTimestampIn formats t as YYYY-MM-DD HH:MM:SS in loc.
func FormatTimestampIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimestampLayout)
}
