package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MRamiBalles/sdop/internal/platform/config"
)

// OpenDevice builds the device the config selects. The returned close func
// releases whatever the device holds open.
func OpenDevice(ctx context.Context, cfg *config.Config) (Device, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Save.Backend {
	case config.BackendMemory:
		return NewMemoryDevice(), noop, nil

	case config.BackendFile:
		fd, err := OpenFileDevice(cfg.Save.Path)
		if err != nil {
			return nil, nil, err
		}
		return fd, fd.Close, nil

	case config.BackendSQLite:
		db, err := InitSQLite(cfg.Save.Path)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteDevice(db, "default"), db.Close, nil

	case config.BackendRedis:
		client := NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisDevice(client, cfg.Redis.Key), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown save backend %q", cfg.Save.Backend)
}

// OpenJournal opens the event journal, or returns nil when none is configured.
func OpenJournal(cfg *config.Config) (*SQLiteEventRepository, *sql.DB, error) {
	if cfg.Save.JournalPath == "" {
		return nil, nil, nil
	}
	db, err := InitSQLite(cfg.Save.JournalPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return NewSQLiteEventRepository(db), db, nil
}
