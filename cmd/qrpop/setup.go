package main

import (
	"log/slog"

	"github.com/sadopc/qrpop/internal/config"
	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/core/kv"
	"github.com/sadopc/qrpop/internal/export"
)

// openHistory opens the configured store. When it cannot be opened the
// returned store is in-memory and the error says why.
func openHistory(cfg config.Config, logger *slog.Logger) (*history.Store, func() error, error) {
	backend, err := kv.Open(cfg.Storage, cfg.ResolvedDataDir())
	if err != nil {
		logger.Warn("history store unavailable", "storage", cfg.Storage, "err", err)
		mem := kv.NewMemory()
		return history.NewStore(mem), mem.Close, err
	}
	return history.NewStore(backend), backend.Close, nil
}

func downloadDir(cfg config.Config) string {
	if cfg.DownloadDir != "" {
		return cfg.DownloadDir
	}
	return export.DefaultDir()
}
