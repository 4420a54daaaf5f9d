// Package mapper сохраняет объекты зарегистрированных типов в хэш-записи
// хранилища и восстанавливает их по id.
package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	"recmap/internal/codec"
	"recmap/internal/entity"
	"recmap/internal/store"
)

var (
	ErrInvalidObject = errors.New("object must be a non-nil struct or pointer to struct")
	ErrCycle         = errors.New("reference cycle detected")
	ErrUnknownField  = errors.New("unknown field")
)

// Engine — синхронный маппер поверх store.Store. Своего состояния, кроме
// реестра, нет; безопасен для конкурентного использования, если безопасно хранилище.
type Engine struct {
	st    store.Store
	reg   *entity.Registry
	codec codec.Scalar
	log   *zap.Logger
}

type Option func(*Engine)

// WithLogger — логгер для поглощённых ошибок полей. По умолчанию zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithLocation — часовой пояс, в котором даты усекаются до дня.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.codec.Location = loc }
}

func New(st store.Store, reg *entity.Registry, opts ...Option) *Engine {
	e := &Engine{st: st, reg: reg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Registry() *entity.Registry { return e.reg }

// resolve возвращает дескриптор и саму структуру (не указатель).
func (e *Engine) resolve(obj any) (*entity.Descriptor, reflect.Value, error) {
	if obj == nil {
		return nil, reflect.Value{}, fmt.Errorf("%w: got nil", ErrInvalidObject)
	}
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, reflect.Value{}, fmt.Errorf("%w: got nil %s", ErrInvalidObject, v.Type())
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, reflect.Value{}, fmt.Errorf("%w: got %T", ErrInvalidObject, obj)
	}
	d, err := e.descriptor(v.Type())
	if err != nil {
		return nil, reflect.Value{}, err
	}
	return d, v, nil
}

func (e *Engine) descriptor(t reflect.Type) (*entity.Descriptor, error) {
	d, ok := e.reg.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrNotRegistered, t)
	}
	return d, nil
}

// absorb — повреждённое поле остаётся нулевым, операция продолжается.
func (e *Engine) absorb(d *entity.Descriptor, key string, f *entity.Field, err error) {
	e.log.Warn("field left unset",
		zap.String("entity", d.Name),
		zap.String("key", key),
		zap.String("field", f.Name),
		zap.String("storage", f.Storage),
		zap.Error(err),
	)
}
