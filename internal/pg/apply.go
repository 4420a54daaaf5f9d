package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ApplyDDL выполняет map[name]sql по возрастанию имени. Ожидается idempotent DDL (create ... if not exists).
func ApplyDDL(ctx context.Context, db *sql.DB, ddl map[string]string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, k := range keys {
		sqlText := strings.TrimSpace(ddl[k])
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			// игнорируем duplicate_object (42710) и duplicate_table (42P07)
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == "42710" || pgErr.Code == "42P07") {
				log.Info("DDL skipped (already exists)",
					zap.String("step", k), zap.String("message", strings.TrimSpace(pgErr.Message)))
				continue
			}
			return fmt.Errorf("DDL apply failed (%s): %w", k, err)
		}
	}
	return nil
}
