// Package config reads cmdflash settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/abhisek/cmdflash/internal/spacedrep"
)

// DefaultAddr is the loopback address the HTTP API listens on.
const DefaultAddr = "127.0.0.1:7878"

// Config holds all runtime configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default XDG path.
	DBPath string

	// ContentDir optionally holds extra card set JSON files.
	ContentDir string

	// Addr is the listen address for `cmdflash serve`.
	Addr string

	// MaxCards caps the length of a review session.
	MaxCards int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:     DefaultAddr,
		MaxCards: spacedrep.DefaultMaxCards,
	}
}

// Load reads .env files (if present) into the process environment and
// builds a Config from it.
//
// Environment variables:
//   - CMDFLASH_DB: database path
//   - CMDFLASH_CONTENT: directory of extra card sets
//   - CMDFLASH_ADDR: API listen address
//   - CMDFLASH_MAX_CARDS: cards per review session
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("CMDFLASH_DB")
	cfg.ContentDir = os.Getenv("CMDFLASH_CONTENT")
	if v := os.Getenv("CMDFLASH_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CMDFLASH_MAX_CARDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("CMDFLASH_MAX_CARDS must be a positive integer, got %q", v)
		}
		cfg.MaxCards = n
	}
	return cfg, nil
}
