package pg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeTable(t *testing.T) {
	assert.Equal(t, DefaultTable, SafeTable(""))
	assert.Equal(t, "fields", SafeTable(" Fields "))
	assert.Equal(t, "e_user", SafeTable("user"))
}

func TestQualifiedIdent(t *testing.T) {
	assert.Equal(t, `"recmap_fields"`, QualifiedIdent("recmap_fields"))
	assert.Equal(t, `"app"."e_order"`, QualifiedIdent("App.order"))
}

func TestGenerateDDL(t *testing.T) {
	ddl := GenerateDDL("recmap_fields")
	assert.NotContains(t, ddl, "000_schema")
	assert.Contains(t, ddl["100_table"], `create table if not exists "recmap_fields"`)
	assert.Contains(t, ddl["100_table"], `primary key ("record_key", "field")`)
	assert.Contains(t, ddl["200_field_idx"], `"recmap_fields_field_idx"`)

	withSchema := GenerateDDL("app.records")
	assert.Equal(t, `create schema if not exists "app";`, withSchema["000_schema"])
	assert.True(t, strings.Contains(withSchema["100_table"], `"app"."records"`))
}

func TestOpenRejectsBadURL(t *testing.T) {
	_, err := Open(t.Context(), "postgres://localhost:notaport/db")
	assert.ErrorContains(t, err, "pg: parse url")
}
