// Package database selects and opens the storage backend named by configuration.
package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inquirydesk/internal/config"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/storage"
	"inquirydesk/internal/storage/memory"
	"inquirydesk/internal/storage/mongostore"
	"inquirydesk/internal/storage/sqlstore"
)

// Open returns the configured store wrapped with operation metrics.
//
// An empty connection string selects the in-memory backend. Any durable
// backend that cannot connect, migrate, or recover its account counter is an
// error: there is no silent fallback to memory.
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (storage.Store, error) {
	log = logger.OrNop(log)

	var (
		store storage.Store
		err   error
	)
	switch {
	case !cfg.Durable():
		log.Warn("DATABASE_URL not set, using in-memory storage; data is lost on restart")
		store = memory.New(memory.WithLogger(log))
	case cfg.IsMongo():
		store, err = mongostore.Open(ctx, cfg, mongostore.WithLogger(log))
	case cfg.IsPostgres(), cfg.IsSQLite():
		store, err = sqlstore.Open(ctx, cfg, sqlstore.WithLogger(log))
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme %q", cfg.Scheme())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Scheme(), err)
	}

	log.Info("storage ready", zap.String("backend", store.Backend()))
	return Instrument(store), nil
}
