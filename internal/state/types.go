// Package state persists the folderlist session between runs.
package state

// MaxRecent caps the number of remembered roots.
const MaxRecent = 10

// Session is what the presentation layer remembers between runs: the root the
// user last listed and the roots used before it, most recent first.
type Session struct {
	LastRoot string   `json:"last_root"`
	Recent   []string `json:"recent"`

	// Version for future compatibility
	Version int `json:"version"`
}

// remember makes root the last root and moves it to the front of Recent.
func (s *Session) remember(root string) {
	s.LastRoot = root

	recent := make([]string, 0, len(s.Recent)+1)
	recent = append(recent, root)
	for _, r := range s.Recent {
		if r != root {
			recent = append(recent, r)
		}
	}
	if len(recent) > MaxRecent {
		recent = recent[:MaxRecent]
	}
	s.Recent = recent
}
