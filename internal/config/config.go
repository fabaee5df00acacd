// Package config reads folderlist settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"folderlist/internal/launcher"
	"folderlist/internal/lister"
	"folderlist/internal/logging"
)

// Config holds all configuration for folderlist. Command-line flags override
// these values.
type Config struct {
	Editor   string // Editor command line, e.g. "code" or "code --new-window"
	LogLevel string

	StateFile string // Session file remembering the last root

	Sort            lister.SortOrder
	OnMetadataError lister.MetadataPolicy

	WatchSchedule string // cron spec used by `folderlist watch`
	MetricsAddr   string // /metrics listen address for watch and mount; empty disables
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Editor:        envOrDefault("FOLDERLIST_EDITOR", launcher.DefaultEditor),
		LogLevel:      envOrDefault("FOLDERLIST_LOG_LEVEL", envOrDefault("LOG_LEVEL", "info")),
		StateFile:     envOrDefault("FOLDERLIST_STATE_FILE", DefaultStateFile()),
		WatchSchedule: envOrDefault("FOLDERLIST_WATCH_SCHEDULE", "@every 5s"),
		MetricsAddr:   os.Getenv("FOLDERLIST_METRICS_ADDR"),
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid FOLDERLIST_LOG_LEVEL: %w", err)
	}

	sort, err := lister.ParseSortOrder(os.Getenv("FOLDERLIST_SORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid FOLDERLIST_SORT: %w", err)
	}
	cfg.Sort = sort

	policy, err := lister.ParseMetadataPolicy(os.Getenv("FOLDERLIST_ON_METADATA_ERROR"))
	if err != nil {
		return nil, fmt.Errorf("invalid FOLDERLIST_ON_METADATA_ERROR: %w", err)
	}
	cfg.OnMetadataError = policy

	return cfg, nil
}

// DefaultStateFile returns <user config dir>/folderlist/state.json, or a file
// in the working directory when the platform reports no config dir.
func DefaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".folderlist", "state.json")
	}
	return filepath.Join(dir, "folderlist", "state.json")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
