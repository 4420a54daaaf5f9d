package entity

import (
	"fmt"
	"reflect"
	"strconv"

	"recmap/internal/dsl"
)

// ClassField — служебное поле записи с именем сущности. Пишется при сохранении, при загрузке не читается.
const ClassField = "_class"

// Field описывает одно сохраняемое поле.
type Field struct {
	Name    string       // логическое имя
	Storage string       // имя поля в записи
	Kind    FieldKind
	Scalar  ScalarKind   // для скаляров, дат и списков скаляров
	Type    reflect.Type // Go-тип поля целиком
	Elem    reflect.Type // базовый тип: скаляр, элемент списка или вложенная сущность (без указателя)
	Pointer bool         // поле (или элемент списка) — указатель
	Lazy    bool
	Index   int // индекс поля в структуре
	GoName  string
}

// Descriptor — неизменяемое описание сохраняемого типа.
type Descriptor struct {
	Name   string
	Type   reflect.Type
	Fields []Field

	id     int // индекс identity-поля в Fields
	byName map[string]int
	opts   options

	// переименования и lazy для несуществующих полей, отдаются линтеру
	unknownRename []string
	unknownLazy   []string
}

// ID возвращает identity-поле.
func (d *Descriptor) ID() *Field { return &d.Fields[d.id] }

// Field ищет поле по логическому имени.
func (d *Descriptor) Field(name string) (*Field, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return &d.Fields[i], true
}

// Schema возвращает DSL-сущность, из которой взяты переименования, если она была.
func (d *Descriptor) Schema() *dsl.Entity { return d.opts.schema }

// New создаёт новый *T с нулевыми значениями.
func (d *Descriptor) New() reflect.Value { return reflect.New(d.Type) }

// IdentityValue возвращает ключ записи — строковое представление id.
// v — значение структуры (не указатель).
func (d *Descriptor) IdentityValue(v reflect.Value) (string, error) {
	f := d.ID()
	fv := v.Field(f.Index)
	if f.Pointer {
		if fv.IsNil() {
			return "", fmt.Errorf("%w: %s.%s", ErrNilIdentity, d.Name, f.Name)
		}
		fv = fv.Elem()
	}
	if fv.IsZero() {
		return "", fmt.Errorf("%w: %s.%s", ErrNilIdentity, d.Name, f.Name)
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(fv.Int(), 10), nil
	default:
		return strconv.FormatUint(fv.Uint(), 10), nil
	}
}

// SetIdentity разбирает key в тип id-поля и записывает его в v (адресуемая структура).
func (d *Descriptor) SetIdentity(v reflect.Value, key string) error {
	f := d.ID()
	if key == "" {
		return fmt.Errorf("%w: %s.%s", ErrNilIdentity, d.Name, f.Name)
	}
	out := reflect.New(f.Elem).Elem()
	switch f.Elem.Kind() {
	case reflect.String:
		out.SetString(key)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, f.Elem.Bits())
		if err != nil {
			return fmt.Errorf("%s.%s: parse id %q: %w", d.Name, f.Name, key, err)
		}
		out.SetInt(n)
	default:
		n, err := strconv.ParseUint(key, 10, f.Elem.Bits())
		if err != nil {
			return fmt.Errorf("%s.%s: parse id %q: %w", d.Name, f.Name, key, err)
		}
		out.SetUint(n)
	}
	fv := v.Field(f.Index)
	if f.Pointer {
		p := reflect.New(f.Elem)
		p.Elem().Set(out)
		fv.Set(p)
		return nil
	}
	fv.Set(out)
	return nil
}

// Template создаёт *T, в котором заполнен только id.
func (d *Descriptor) Template(key string) (reflect.Value, error) {
	p := d.New()
	if err := d.SetIdentity(p.Elem(), key); err != nil {
		return reflect.Value{}, err
	}
	return p, nil
}

// describe строит дескриптор по типу структуры и опциям регистрации.
func describe(t reflect.Type, o options) (*Descriptor, error) {
	d := &Descriptor{
		Name:   t.Name(),
		Type:   t,
		id:     -1,
		byName: map[string]int{},
		opts:   o,
	}
	if o.schema != nil && o.schema.Name != "" {
		d.Name = o.schema.Name
	}
	if o.name != "" {
		d.Name = o.name
	}
	if d.Name == "" {
		return nil, fmt.Errorf("%w: anonymous struct %s needs WithName", ErrInvalidType, t)
	}

	storages := map[string]string{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		raw, present := sf.Tag.Lookup(TagName)
		spec, err := parseTag(raw, present)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, sf.Name, err)
		}
		if !spec.explicit {
			continue
		}
		if !sf.IsExported() {
			return nil, fmt.Errorf("%w: %s.%s is unexported", ErrBadTag, d.Name, sf.Name)
		}

		f := Field{Name: spec.name, Index: i, Type: sf.Type, GoName: sf.Name, Lazy: spec.lazy}
		if f.Name == "" {
			f.Name = sf.Name
		}
		if err := classify(&f, sf.Type); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, f.Name, err)
		}
		if _, dup := d.byName[f.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate field name %q", d.Name, f.Name)
		}

		// приоритет имени хранения: тег < DSL-схема < WithRename
		f.Storage = f.Name
		if spec.storage != "" {
			f.Storage = spec.storage
		}
		if o.schema != nil {
			if sfield, ok := o.schema.Field(f.Name); ok {
				if s := sfield.Storage(); s != "" {
					f.Storage = s
				}
				f.Lazy = f.Lazy || sfield.Lazy()
				spec.id = spec.id || sfield.Identity()
			}
		}
		if s, ok := o.rename[f.Name]; ok && s != "" {
			f.Storage = s
		}
		if _, ok := o.lazy[f.Name]; ok {
			f.Lazy = true
		}

		if f.Storage == ClassField {
			return nil, fmt.Errorf("%w: %s.%s uses reserved %q", ErrDuplicateStorage, d.Name, f.Name, ClassField)
		}
		if other, dup := storages[f.Storage]; dup {
			return nil, fmt.Errorf("%w: %s fields %q and %q both map to %q",
				ErrDuplicateStorage, d.Name, other, f.Name, f.Storage)
		}
		storages[f.Storage] = f.Name

		if spec.id {
			if d.id >= 0 {
				return nil, fmt.Errorf("%w: %s (%s, %s)", ErrMultipleIdentity, d.Name, d.Fields[d.id].Name, f.Name)
			}
			if f.Kind != KindScalar || !(f.Scalar == ScalarString || f.Scalar.IsInteger()) {
				return nil, fmt.Errorf("%w: %s.%s is %s", ErrIdentityKind, d.Name, f.Name, sf.Type)
			}
			if f.Lazy {
				return nil, fmt.Errorf("%w: %s.%s", ErrLazyIdentity, d.Name, f.Name)
			}
			d.id = len(d.Fields)
		}

		d.byName[f.Name] = len(d.Fields)
		d.Fields = append(d.Fields, f)
	}

	if d.id < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoIdentity, d.Name)
	}

	for name := range o.rename {
		if _, ok := d.byName[name]; !ok {
			d.unknownRename = append(d.unknownRename, name)
		}
	}
	for name := range o.lazy {
		if _, ok := d.byName[name]; !ok {
			d.unknownLazy = append(d.unknownLazy, name)
		}
	}
	return d, nil
}
