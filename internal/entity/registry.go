package entity

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"recmap/internal/dsl"
)

type options struct {
	name   string
	rename map[string]string
	lazy   map[string]struct{}
	schema *dsl.Entity
}

// Option настраивает регистрацию типа.
type Option func(*options)

// WithName задаёт имя сущности (по умолчанию — имя Go-типа).
func WithName(name string) Option {
	return func(o *options) { o.name = strings.TrimSpace(name) }
}

// WithRename задаёт таблицу переименований: логическое имя → имя в хранилище.
func WithRename(m map[string]string) Option {
	return func(o *options) {
		if o.rename == nil {
			o.rename = make(map[string]string, len(m))
		}
		for k, v := range m {
			o.rename[k] = v
		}
	}
}

// WithLazy помечает поля, которые не загружаются вместе с объектом.
func WithLazy(fields ...string) Option {
	return func(o *options) {
		if o.lazy == nil {
			o.lazy = make(map[string]struct{}, len(fields))
		}
		for _, f := range fields {
			o.lazy[f] = struct{}{}
		}
	}
}

// WithSchema берёт имя, переименования, lazy и id из DSL-сущности.
func WithSchema(e *dsl.Entity) Option {
	return func(o *options) { o.schema = e }
}

// Registry хранит дескрипторы по типу. Чтение безопасно из нескольких горутин.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*Descriptor
	byName map[string]*Descriptor // ключ — имя в нижнем регистре
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*Descriptor),
		byName: make(map[string]*Descriptor),
	}
}

// Register описывает тип прототипа (структура или указатель на неё) один раз.
func (r *Registry) Register(prototype any, opts ...Option) (*Descriptor, error) {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return nil, ErrInvalidType
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !isEntityStruct(t) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, t)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	d, err := describe(t, o)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byType[t]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, t)
	}
	key := strings.ToLower(d.Name)
	if other, ok := r.byName[key]; ok {
		return nil, fmt.Errorf("%w: name %q is taken by %s", ErrAlreadyRegistered, d.Name, other.Type)
	}
	r.byType[t] = d
	r.byName[key] = d
	return d, nil
}

// MustRegister — Register, паникующий при ошибке; для инициализации пакетов.
func (r *Registry) MustRegister(prototype any, opts ...Option) *Descriptor {
	d, err := r.Register(prototype, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Lookup ищет дескриптор по типу структуры (указатели разыменовываются).
func (r *Registry) Lookup(t reflect.Type) (*Descriptor, bool) {
	if t == nil {
		return nil, false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byType[t]
	return d, ok
}

// ByName ищет дескриптор по имени сущности без учёта регистра.
func (r *Registry) ByName(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Descriptors возвращает все дескрипторы, отсортированные по имени.
func (r *Registry) Descriptors() []*Descriptor {
	r.mu.RLock()
	out := make([]*Descriptor, 0, len(r.byType))
	for _, d := range r.byType {
		out = append(out, d)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
