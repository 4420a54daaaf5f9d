package pg

import (
	"fmt"
	"strings"
)

// DefaultTable — таблица, в которой каждая строка — одно поле одной записи.
const DefaultTable = "recmap_fields"

var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
}

func isReserved(s string) bool { _, ok := reserved[strings.ToLower(s)]; return ok }

// SafeTable нормализует имя таблицы: нижний регистр, «опасные» имена с префиксом e_.
func SafeTable(name string) string {
	t := strings.ToLower(strings.TrimSpace(name))
	if t == "" {
		t = DefaultTable
	}
	if isReserved(t) {
		t = "e_" + t
	}
	return t
}

// SplitQualified("app.fields") -> ("app","fields"); без точки схема пустая.
func SplitQualified(name string) (string, string) {
	i := strings.IndexByte(name, '.')
	if i <= 0 || i >= len(name)-1 {
		return "", name
	}
	return name[:i], name[i+1:]
}

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }

// QualifiedIdent возвращает "schema"."table" (или просто "table") с безопасным именем таблицы.
func QualifiedIdent(name string) string {
	schema, table := SplitQualified(name)
	if schema == "" {
		return sqlIdent(SafeTable(table))
	}
	return sqlIdent(schema) + "." + sqlIdent(SafeTable(table))
}

// GenerateDDL возвращает карту шаг -> SQL DDL для таблицы полей записей.
// name может быть с префиксом схемы: "app.recmap_fields".
func GenerateDDL(name string) map[string]string {
	out := make(map[string]string, 3)
	schema, table := SplitQualified(name)
	tbl := SafeTable(table)
	qualified := QualifiedIdent(name)

	if schema != "" {
		out["000_schema"] = fmt.Sprintf("create schema if not exists %s;", sqlIdent(schema))
	}
	out["100_table"] = fmt.Sprintf(`create table if not exists %s (
  "record_key" text not null,
  "field" text not null,
  "value" text not null,
  primary key ("record_key", "field")
);`, qualified)

	// ключ записи — префикс первичного ключа, отдельный индекс по нему не нужен;
	// индекс по полю помогает сканировать записи одного вида (_class)
	out["200_field_idx"] = fmt.Sprintf("create index if not exists %s on %s(%s);",
		sqlIdent(tbl+"_field_idx"), qualified, sqlIdent("field"))
	return out
}
