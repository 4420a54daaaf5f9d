package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // driver: sqlite (pure Go)

	"recmap/internal/pg"
)

func sqliteTable(table string) string {
	_, t := pg.SplitQualified(table)
	return `"` + pg.SafeTable(t) + `"`
}

// OpenSQLite открывает файл (или ":memory:") и создаёт таблицу полей, если её нет.
func OpenSQLite(ctx context.Context, path, table string) (*SQL, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// один писатель: sqlite не любит конкурентные записи, а ":memory:" живёт в одном соединении
	db.SetMaxOpenConns(1)

	t := sqliteTable(table)
	ddl := fmt.Sprintf(`create table if not exists %s (
  "record_key" text not null,
  "field" text not null,
  "value" text not null,
  primary key ("record_key", "field")
)`, t)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ddl: %w", err)
	}
	return &SQL{db: db, d: newDialect("sqlite", t, question)}, nil
}
