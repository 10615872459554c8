package server

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"shebao/internal/config"
	"shebao/internal/logging"
	memstore "shebao/internal/service/store"
	"shebao/internal/store"
	"shebao/internal/store/postgres"
)

var _ store.Repository = (*memstore.MemoryStore)(nil)

// OpenRepository 按 store.driver 打开结果存储
func OpenRepository(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (store.Repository, error) {
	logger = logging.OrNop(logger)

	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data will be lost on exit")
		return memstore.NewMemoryStore(), nil

	case config.DriverPostgres:
		pg, err := postgres.Open(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		logger.Info("store ready", zap.String("driver", config.DriverPostgres))
		return pg, nil

	case config.DriverSQLite, "":
		dataDir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return nil, fmt.Errorf("prepare data directory: %w", err)
		}
		dbPath := filepath.Join(dataDir, store.DBFileName)
		st, err := store.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("store ready", zap.String("driver", config.DriverSQLite), zap.String("path", dbPath))
		return st, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
