// Package prefs provides durable key-value preference stores.
package prefs

import (
	"context"
	"fmt"

	"github.com/grantsy/licensegate/internal/infra/config"
	"github.com/grantsy/licensegate/internal/infra/db"
)

// Store reads and writes string preferences by key. Get reports ok=false for
// a key that was never written.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Open builds the store selected by cfg.Driver. The returned close function
// releases any connection held by the store.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "memory":
		return NewMemory(), noop, nil
	case "file":
		store, err := NewFile(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case "sqlite", "postgres":
		if err := db.Migrate(cfg.Driver, cfg.DSN, cfg.Namespace); err != nil {
			return nil, nil, fmt.Errorf("prefs: %w", err)
		}
		database, err := db.New(cfg.Driver, cfg.DSN, cfg.Namespace)
		if err != nil {
			return nil, nil, fmt.Errorf("prefs: %w", err)
		}
		return NewSQL(database), database.Close, nil
	case "redis":
		store, err := NewRedisFromURL(ctx, cfg.DSN, cfg.Namespace)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("prefs: unsupported driver: %s", cfg.Driver)
	}
}
