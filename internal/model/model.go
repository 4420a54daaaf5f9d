// Package model — доменные сущности приложения и их регистрация в маппере.
package model

import (
	"embed"
	"fmt"
	"reflect"

	"recmap/internal/dsl"
	"recmap/internal/entity"
)

//go:embed schema/*.dsl
var schemaFS embed.FS

// SchemaFile — путь встроенной схемы внутри schemaFS.
const SchemaFile = "schema/app.dsl"

// Schemas разбирает встроенную схему и раскладывает сущности по FQN.
func Schemas() (map[string]*dsl.Entity, error) {
	f, err := schemaFS.Open(SchemaFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ents, err := dsl.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", SchemaFile, err)
	}
	return dsl.Index(ents)
}

// LoadSchemas читает *.dsl из dir; пустой dir — встроенная схема.
func LoadSchemas(dir string) (map[string]*dsl.Entity, error) {
	if dir == "" {
		return Schemas()
	}
	return dsl.LoadAllEntities(dir)
}

// prototypes — порядок регистрации не важен, ссылки разрешаются при операциях.
var prototypes = []any{&Repo{}, &Issue{}, &User{}}

// Register регистрирует Repo, Issue и User. schemas == nil — встроенная схема;
// сущность, которой нет в schemas, регистрируется только по тегам.
func Register(reg *entity.Registry, schemas map[string]*dsl.Entity) error {
	if schemas == nil {
		s, err := Schemas()
		if err != nil {
			return err
		}
		schemas = s
	}
	for _, proto := range prototypes {
		name := reflect.TypeOf(proto).Elem().Name()
		var opts []entity.Option
		if s, ok := dsl.Find(schemas, name); ok {
			opts = append(opts, entity.WithSchema(s))
		}
		if _, err := reg.Register(proto, opts...); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}

// NewRegistry — реестр с уже зарегистрированными моделями.
func NewRegistry(schemas map[string]*dsl.Entity) (*entity.Registry, error) {
	reg := entity.NewRegistry()
	if err := Register(reg, schemas); err != nil {
		return nil, err
	}
	return reg, nil
}
