package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/config"
	"github.com/abhisek/shindan/internal/gacha"
	"github.com/abhisek/shindan/internal/logging"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/store"
)

// env is everything a command needs, built from config and flags.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.SQLite
	profiles *profile.Manager
	gacha    *gacha.Service
}

// resolveConfig loads the config file and applies flag overrides. Flags
// beat the environment, which beats the file.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Logging.Level = l
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openEnv opens the store and wires the services. Callers must Close it.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cfg.DBPath, store.Options{Quota: cfg.QuotaBytes})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	profiles := profile.NewManager(st, profile.Options{
		StorageLimit: cfg.StorageLimitBytes,
		Logger:       log.Named("profile"),
	})

	gachaOpts := []gacha.Option{gacha.WithLogger(log.Named("gacha"))}
	if cfg.CatalogFile != "" {
		defs, err := loadCatalogFile(cfg.CatalogFile)
		if err != nil {
			st.Close()
			return nil, err
		}
		gachaOpts = append(gachaOpts, gacha.WithCatalog(defs))
	}

	log.Debug("environment ready",
		zap.String("db", cfg.DBPath),
		zap.Int64("storage_limit", cfg.StorageLimitBytes),
		zap.Int64("quota", cfg.QuotaBytes),
	)

	return &env{
		cfg:      cfg,
		log:      log,
		store:    st,
		profiles: profiles,
		gacha:    gacha.NewService(profiles, gachaOpts...),
	}, nil
}

func loadCatalogFile(path string) ([]gacha.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reward catalog: %w", err)
	}
	defer f.Close()
	defs, err := gacha.LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("load reward catalog %s: %w", path, err)
	}
	return defs, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() error {
	_ = e.log.Sync()
	return e.store.Close()
}
