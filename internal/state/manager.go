package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"folderlist/internal/logging"
)

var (
	logger = logging.GetLogger().WithPrefix("state")
)

// Manager handles loading and saving the session file
type Manager struct {
	statePath   string
	backupDir   string
	backupCount int
	mu          sync.Mutex
}

// NewManager creates a new state manager for the given state file path.
// Relative paths resolve against the working directory. The parent directory
// is created on demand; the file itself is only written by Save.
func NewManager(statePath string) (*Manager, error) {
	logger.Debug("Creating new state manager with path: %s", statePath)

	absPath, err := filepath.Abs(statePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state path %s: %w", statePath, err)
	}
	logger.Debug("Resolved state path: %s", absPath)

	stateDir := filepath.Dir(absPath)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", stateDir, err)
	}

	backupDir := filepath.Join(stateDir, ".folderlist-backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", backupDir, err)
	}

	return &Manager{
		statePath:   absPath,
		backupDir:   backupDir,
		backupCount: 5,
	}, nil
}

// Path returns the absolute path of the session file.
func (sm *Manager) Path() string {
	return sm.statePath
}

// Load reads the session from disk. A missing or empty file yields a fresh
// session rather than an error.
func (sm *Manager) Load() (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.load()
}

func (sm *Manager) load() (*Session, error) {
	logger.Debug("Loading state from: %s", sm.statePath)

	data, err := os.ReadFile(sm.statePath)
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		logger.Debug("No state file yet, starting a new session")
		return &Session{Recent: []string{}, Version: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", sm.statePath, err)
	}
	if session.Recent == nil {
		session.Recent = []string{}
	}
	if session.Version == 0 {
		session.Version = 1
	}

	logger.Trace("Loaded session: last=%q recent=%d", session.LastRoot, len(session.Recent))
	return &session, nil
}

// Save writes the session to disk. It backs up the previous file first.
func (sm *Manager) Save(session *Session) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.save(session)
}

func (sm *Manager) save(session *Session) error {
	logger.Debug("Saving state to: %s", sm.statePath)

	if err := sm.createBackup(); err != nil {
		// a failed backup should not lose the user's session
		logger.Warn("Failed to create backup: %v", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	logger.Trace("Writing %d bytes of state data", len(data))
	if err := os.WriteFile(sm.statePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	written, err := os.ReadFile(sm.statePath)
	if err != nil {
		return fmt.Errorf("failed to verify written state: %w", err)
	}
	if len(written) != len(data) {
		return fmt.Errorf("state file is truncated after write (%d of %d bytes)", len(written), len(data))
	}
	return nil
}

// Remember records root as the most recently used root path.
func (sm *Manager) Remember(root string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, err := sm.load()
	if err != nil {
		return err
	}
	if session.LastRoot == root && len(session.Recent) > 0 && session.Recent[0] == root {
		return nil
	}
	session.remember(root)
	return sm.save(session)
}

// createBackup creates a timestamped backup of the current state file
func (sm *Manager) createBackup() error {
	data, err := os.ReadFile(sm.statePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102-150405.000000")
	backupPath := filepath.Join(sm.backupDir, fmt.Sprintf("state-%s.json", timestamp))

	logger.Trace("Creating backup: %s", backupPath)
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	return sm.cleanupOldBackups()
}

// cleanupOldBackups removes old backup files, keeping only the most recent ones
func (sm *Manager) cleanupOldBackups() error {
	entries, err := os.ReadDir(sm.backupDir)
	if err != nil {
		return err
	}

	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			backups = append(backups, entry.Name())
		}
	}

	// names embed the timestamp, so lexical order is chronological; newest first
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	for i := sm.backupCount; i < len(backups); i++ {
		path := filepath.Join(sm.backupDir, backups[i])
		logger.Trace("Removing old backup: %s", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", path, err)
		}
	}

	return nil
}
