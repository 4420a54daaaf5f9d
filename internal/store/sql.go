package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// dialect — тексты запросов для конкретной СУБД.
type dialect struct {
	name   string
	exists string
	get    string
	set    string
	del    string
	dump   string
}

func newDialect(name, table string, ph func(i int) string) dialect {
	return dialect{
		name: name,
		exists: fmt.Sprintf(`select exists(select 1 from %s where "record_key" = %s)`,
			table, ph(1)),
		get: fmt.Sprintf(`select "value" from %s where "record_key" = %s and "field" = %s`,
			table, ph(1), ph(2)),
		set: fmt.Sprintf(`insert into %s ("record_key", "field", "value") values (%s, %s, %s) `+
			`on conflict ("record_key", "field") do update set "value" = excluded."value"`,
			table, ph(1), ph(2), ph(3)),
		del: fmt.Sprintf(`delete from %s where "record_key" = %s`, table, ph(1)),
		dump: fmt.Sprintf(`select "field", "value" from %s where "record_key" = %s`,
			table, ph(1)),
	}
}

func dollar(i int) string { return "$" + strconv.Itoa(i) }
func question(int) string { return "?" }

// SQL хранит хэш-записи в реляционной таблице: одна строка на поле.
type SQL struct {
	db *sql.DB
	d  dialect
}

// Dialect — "postgres" или "sqlite".
func (s *SQL) Dialect() string { return s.d.name }

// DB отдаёт пул соединений (для тестов и служебных команд).
func (s *SQL) DB() *sql.DB { return s.db }

func (s *SQL) Exists(ctx context.Context, key string) (bool, error) {
	var ok bool
	if err := s.db.QueryRowContext(ctx, s.d.exists, key).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s exists %q: %w", s.d.name, key, err)
	}
	return ok, nil
}

func (s *SQL) SetField(ctx context.Context, key, field, value string) error {
	if _, err := s.db.ExecContext(ctx, s.d.set, key, field, value); err != nil {
		return fmt.Errorf("%s set %q.%q: %w", s.d.name, key, field, err)
	}
	return nil
}

func (s *SQL) GetField(ctx context.Context, key, field string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.d.get, key, field).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s get %q.%q: %w", s.d.name, key, field, err)
	}
	return v, true, nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.d.del, key); err != nil {
		return fmt.Errorf("%s delete %q: %w", s.d.name, key, err)
	}
	return nil
}

func (s *SQL) Fields(ctx context.Context, key string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, s.d.dump, key)
	if err != nil {
		return nil, fmt.Errorf("%s dump %q: %w", s.d.name, key, err)
	}
	defer rows.Close()

	var out map[string]string
	for rows.Next() {
		var f, v string
		if err := rows.Scan(&f, &v); err != nil {
			return nil, err
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[f] = v
	}
	return out, rows.Err()
}

func (s *SQL) Close() error { return s.db.Close() }
