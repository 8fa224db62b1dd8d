package store

import (
	"context"
	"fmt"

	"water-dashboard/config"
	"water-dashboard/internal/redisclient"
)

// Backend is a durable slot store the ledger can persist to
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// OpenBackend opens the backend selected by STORAGE_BACKEND
func OpenBackend(cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Storage.DataDir), nil
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendRedis:
		client, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.BackendPostgres:
		db, err := NewStore(cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
