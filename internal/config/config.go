// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields koanf-tagged and provide New() defaults.
// - Load() layers defaults, optional file, and environment variables.
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of check-in workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MoversLimit caps the most-improved and biggest-drop lists.
	MoversLimit int `koanf:"movers_limit"`

	// DetailLimit caps the per-player improved/declined metric detail.
	DetailLimit int `koanf:"detail_limit"`

	// MeaningfulThreshold is the minimum |contribution| for a metric change
	// to count as meaningful when its rank did not move.
	MeaningfulThreshold float64 `koanf:"meaningful_threshold"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           100_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          50_000,
		MoversLimit:         5,
		DetailLimit:         3,
		MeaningfulThreshold: 0.05,
	}
}
