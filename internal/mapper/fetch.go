package mapper

import (
	"context"
	"fmt"
	"reflect"
)

// Fetch дочитывает одно поле уже загруженного объекта, обычно lazy.
// obj должен быть указателем на структуру с заполненным id.
// Если значения в записи нет, поле не меняется.
func (e *Engine) Fetch(ctx context.Context, obj any, field string) error {
	v := reflect.ValueOf(obj)
	if obj == nil || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: Fetch needs a struct pointer, got %T", ErrInvalidObject, obj)
	}
	v = v.Elem()
	d, err := e.descriptor(v.Type())
	if err != nil {
		return err
	}
	f, ok := d.Field(field)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, d.Name, field)
	}
	key, err := d.IdentityValue(v)
	if err != nil {
		return err
	}

	w := newWalk()
	k := visitKey{d.Name, key}
	if err := w.enter(k); err != nil {
		return err
	}
	defer w.leave(k)
	return e.loadField(ctx, w, d, key, f, v.Field(f.Index))
}
