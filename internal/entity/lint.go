// entity/lint.go
package entity

import (
	"fmt"
	"sort"
	"strings"

	"recmap/internal/dsl"
)

// Issue — найденное противоречие в описании сущностей.
type Issue struct {
	Entity  string `json:"entity"`
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Lint проверяет связи между зарегистрированными дескрипторами и их DSL-схемами.
// Регистрация не требует порядка, поэтому ссылки на незарегистрированные типы ловятся здесь.
func (r *Registry) Lint() []Issue {
	var issues []Issue
	for _, d := range r.Descriptors() {
		for i := range d.Fields {
			f := &d.Fields[i]
			if f.Kind.IsReference() {
				if _, ok := r.Lookup(f.Elem); !ok {
					issues = append(issues, Issue{
						Entity:  d.Name,
						Field:   f.Name,
						Code:    "ref_unregistered",
						Message: fmt.Sprintf("referenced type %s is not registered", f.Elem),
					})
				}
			}
		}

		for _, name := range sorted(d.unknownRename) {
			issues = append(issues, Issue{
				Entity: d.Name, Field: name, Code: "rename_unknown_field",
				Message: "rename entry targets a field that is not persistable",
			})
		}
		for _, name := range sorted(d.unknownLazy) {
			issues = append(issues, Issue{
				Entity: d.Name, Field: name, Code: "lazy_unknown_field",
				Message: "lazy entry targets a field that is not persistable",
			})
		}

		if s := d.Schema(); s != nil {
			issues = append(issues, r.lintSchema(d, s)...)
		}
	}
	return issues
}

func (r *Registry) lintSchema(d *Descriptor, s *dsl.Entity) []Issue {
	var issues []Issue
	for _, sf := range s.Fields {
		f, ok := d.Field(sf.Name)
		if !ok {
			issues = append(issues, Issue{
				Entity: d.Name, Field: sf.Name, Code: "schema_field_missing",
				Message: fmt.Sprintf("schema %s declares a field the Go type does not persist", s.FQN()),
			})
			continue
		}
		if msg := r.kindMismatch(f, sf); msg != "" {
			issues = append(issues, Issue{
				Entity: d.Name, Field: f.Name, Code: "schema_kind_mismatch", Message: msg,
			})
		}
	}
	for i := range d.Fields {
		f := &d.Fields[i]
		if _, ok := s.Field(f.Name); !ok {
			issues = append(issues, Issue{
				Entity: d.Name, Field: f.Name, Code: "schema_field_undeclared",
				Message: fmt.Sprintf("persistable field is absent from schema %s", s.FQN()),
			})
		}
	}
	return issues
}

func (r *Registry) kindMismatch(f *Field, sf dsl.Field) string {
	switch f.Kind {
	case KindScalar, KindDate:
		if !scalarCompatible(f.Scalar, sf.Type) {
			return fmt.Sprintf("schema type %q, Go type is %s", sf.Type, f.Scalar)
		}
	case KindScalarList:
		if sf.Type != "array" || !scalarCompatible(f.Scalar, sf.ElemType) {
			return fmt.Sprintf("schema type %q, Go type is array[%s]", describeSchemaType(sf), f.Scalar)
		}
	case KindNested:
		if sf.Type != "ref" {
			return fmt.Sprintf("schema type %q, Go type is a reference", describeSchemaType(sf))
		}
		return r.refMismatch(f, sf)
	case KindEntityList:
		if sf.Type != "array" || sf.ElemType != "ref" {
			return fmt.Sprintf("schema type %q, Go type is a reference list", describeSchemaType(sf))
		}
		return r.refMismatch(f, sf)
	}
	return ""
}

func (r *Registry) refMismatch(f *Field, sf dsl.Field) string {
	target, ok := r.Lookup(f.Elem)
	if !ok {
		return "" // уже отмечено как ref_unregistered
	}
	want := sf.RefTarget
	if i := strings.LastIndexByte(want, '.'); i >= 0 {
		want = want[i+1:]
	}
	if !strings.EqualFold(want, target.Name) {
		return fmt.Sprintf("schema references %q, Go type references %s", sf.RefTarget, target.Name)
	}
	return ""
}

func scalarCompatible(k ScalarKind, schemaType string) bool {
	switch {
	case k.IsInteger():
		return schemaType == "int" || schemaType == "long"
	case k.IsFloat():
		return schemaType == "float" || schemaType == "double"
	default:
		return k.String() == schemaType
	}
}

func describeSchemaType(sf dsl.Field) string {
	switch {
	case sf.Type == "ref":
		return "ref[" + sf.RefTarget + "]"
	case sf.Type == "array" && sf.ElemType == "ref":
		return "array[ref[" + sf.RefTarget + "]]"
	case sf.Type == "array":
		return "array[" + sf.ElemType + "]"
	default:
		return sf.Type
	}
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
