package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cmdflash/internal/config"
	"github.com/abhisek/cmdflash/internal/content"
	"github.com/abhisek/cmdflash/internal/spacedrep"
	"github.com/abhisek/cmdflash/internal/store"
)

// env is everything a command needs to touch learner progress.
type env struct {
	cfg   config.Config
	store *store.Store
	sched *spacedrep.Scheduler
	lib   *content.Library
}

func (e *env) Close() error {
	return e.store.Close()
}

// loadConfig reads .env and the environment.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CMDFLASH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadLibrary returns the builtin card sets plus any from --content or
// CMDFLASH_CONTENT.
func loadLibrary(cmd *cobra.Command, cfg config.Config) (*content.Library, error) {
	dir, _ := cmd.Flags().GetString("content")
	if dir == "" {
		dir = cfg.ContentDir
	}
	lib, err := content.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load card sets: %w", err)
	}
	return lib, nil
}

// openEnv opens the store and builds the scheduler over it. Callers must
// Close the returned env.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	lib, err := loadLibrary(cmd, cfg)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &env{
		cfg:   cfg,
		store: st,
		sched: spacedrep.NewScheduler(st.KVRepo()),
		lib:   lib,
	}, nil
}
