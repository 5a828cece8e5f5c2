// Package config loads the settings of the cuid command-line tool from the
// environment and from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvFingerprint = "CUID_FINGERPRINT"
	EnvThreads     = "CUID_STRESS_THREADS"
	EnvPerThread   = "CUID_STRESS_PER_THREAD"
	EnvRecordPath  = "CUID_RECORD_PATH"
	EnvMonitorPort = "CUID_MONITOR_PORT"
)

// Config holds the tool settings.
type Config struct {
	// Fingerprint overrides the fingerprint derived from the process. Empty
	// means no override.
	Fingerprint string

	Stress  StressConfig
	Monitor MonitorConfig
}

// StressConfig controls the stress harness.
type StressConfig struct {
	Threads   int
	PerThread int

	// RecordPath is the base name of the SQLite file that stress results are
	// written to. Empty disables recording.
	RecordPath string
}

// MonitorConfig controls the monitoring server.
type MonitorConfig struct {
	// Port of the monitoring server. Zero picks a random port.
	Port int
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Stress: StressConfig{
			Threads:   10,
			PerThread: 50000,
		},
	}
}

// Load reads the given .env files, or ./.env when none are given, into the
// process environment and builds a Config from it. Variables already set in
// the environment win over the files. A missing ./.env is not an error; a
// missing explicit file is.
func Load(paths ...string) (*Config, error) {
	if err := loadDotEnv(paths); err != nil {
		return nil, err
	}

	c := Default()
	c.Fingerprint = os.Getenv(EnvFingerprint)
	c.Stress.RecordPath = os.Getenv(EnvRecordPath)

	var err error
	if c.Stress.Threads, err = intFromEnv(EnvThreads, c.Stress.Threads); err != nil {
		return nil, err
	}

	if c.Stress.PerThread, err = intFromEnv(EnvPerThread, c.Stress.PerThread); err != nil {
		return nil, err
	}

	if c.Monitor.Port, err = intFromEnv(EnvMonitorPort, c.Monitor.Port); err != nil {
		return nil, err
	}

	return c, nil
}

func loadDotEnv(paths []string) error {
	if len(paths) > 0 {
		if err := godotenv.Load(paths...); err != nil {
			return fmt.Errorf("loading env files: %w", err)
		}

		return nil
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	return nil
}

func intFromEnv(key string, def int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	if v < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %d", key, v)
	}

	return v, nil
}
