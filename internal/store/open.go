package store

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"recmap/internal/config"
)

// Backend — хранилище, которым владеет вызывающий код: открыл — закрой.
type Backend interface {
	Store
	io.Closer
}

// Open создаёт хранилище по cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		b   Backend
		err error
	)
	switch cfg.StoreDriver {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		var r *Redis
		r, err = OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		b = r
	case "postgres", "pg":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("postgres store: empty db url")
		}
		var s *SQL
		s, err = OpenPostgres(ctx, cfg.DBURL, cfg.Table, cfg.AutoMigrate, log)
		b = s
	case "sqlite":
		var s *SQL
		s, err = OpenSQLite(ctx, cfg.SQLitePath, cfg.Table)
		b = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}
	// typed nil в интерфейсе не должен уйти наружу
	if err != nil {
		return nil, err
	}
	return b, nil
}
