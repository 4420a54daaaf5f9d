package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"recmap/internal/pg"
)

// NewPostgres работает поверх открытого пула; таблица должна существовать.
func NewPostgres(db *sql.DB, table string) *SQL {
	return &SQL{db: db, d: newDialect("postgres", pg.QualifiedIdent(table), dollar)}
}

// OpenPostgres подключается по url и при autoMigrate создаёт таблицу полей.
func OpenPostgres(ctx context.Context, url, table string, autoMigrate bool, log *zap.Logger) (*SQL, error) {
	db, err := pg.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	if autoMigrate {
		if err := pg.ApplyDDL(ctx, db, pg.GenerateDDL(table), log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return NewPostgres(db, table), nil
}
