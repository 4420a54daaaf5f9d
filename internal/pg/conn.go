package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// Pool — параметры пула database/sql поверх pgx.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	PingTimeout time.Duration
}

// DefaultPool достаточно для одного процесса маппера.
var DefaultPool = Pool{MaxOpen: 10, MaxIdle: 5, MaxLifetime: 30 * time.Minute, PingTimeout: 5 * time.Second}

// Open разбирает url, помечает соединения application_name=recmap и проверяет доступность.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	return OpenPool(ctx, url, DefaultPool)
}

func OpenPool(ctx context.Context, url string, p Pool) (*sql.DB, error) {
	cc, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if _, ok := cc.RuntimeParams["application_name"]; !ok {
		cc.RuntimeParams["application_name"] = "recmap"
	}
	db := stdlib.OpenDB(*cc)
	if p.MaxOpen > 0 {
		db.SetMaxOpenConns(p.MaxOpen)
	}
	if p.MaxIdle > 0 {
		db.SetMaxIdleConns(p.MaxIdle)
	}
	if p.MaxLifetime > 0 {
		db.SetConnMaxLifetime(p.MaxLifetime)
	}

	timeout := p.PingTimeout
	if timeout <= 0 {
		timeout = DefaultPool.PingTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	return db, nil
}
