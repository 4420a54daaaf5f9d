package dsl

import "strings"

// Entity описывает сущность из DSL-схемы: какие поля хранятся и под какими именами.
type Entity struct {
	Module string
	Name   string
	Fields []Field
}

// Field описывает поле сущности
type Field struct {
	Name      string
	Type      string            // string, int, long, float, double, bool, date, ref, array
	ElemType  string            // для array: тип элемента (string, int, ..., ref)
	RefTarget string            // для ref и array[ref[...]]: имя целевой сущности
	Options   map[string]string // id, lazy, storage и прочие опции
}

// FQN возвращает "module.Entity".
func (e *Entity) FQN() string {
	if e.Module == "" {
		return e.Name
	}
	return e.Module + "." + e.Name
}

// Field ищет поле по логическому имени.
func (e *Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (f Field) flag(name string) bool {
	return f.Options != nil && strings.EqualFold(f.Options[name], "true")
}

// Identity — поле помечено как id.
func (f Field) Identity() bool { return f.flag("id") }

// Lazy — поле не читается при загрузке.
func (f Field) Lazy() bool { return f.flag("lazy") }

// Storage возвращает имя поля в хранилище; пустая строка, если переименования нет.
func (f Field) Storage() string {
	if f.Options == nil {
		return ""
	}
	return strings.TrimSpace(f.Options["storage"])
}
