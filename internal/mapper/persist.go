package mapper

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"recmap/internal/codec"
	"recmap/internal/entity"
)

// Persist записывает obj и все достижимые из него сущности.
// Ошибки конфигурации (тип не зарегистрирован, пустой id, цикл) возвращаются
// до первой записи. Ошибка хранилища прерывает обход; уже записанные поля остаются.
func (e *Engine) Persist(ctx context.Context, obj any) error {
	d, v, err := e.resolve(obj)
	if err != nil {
		return err
	}
	if err := e.check(newWalk(), d, v); err != nil {
		return err
	}
	_, err = e.persist(ctx, newWalk(), d, v)
	return err
}

// check обходит граф без записи.
func (e *Engine) check(w *walk, d *entity.Descriptor, v reflect.Value) error {
	key, err := d.IdentityValue(v)
	if err != nil {
		return err
	}
	k := visitKey{d.Name, key}
	if _, ok := w.done[k]; ok {
		return nil
	}
	if err := w.enter(k); err != nil {
		return err
	}
	defer w.leave(k)

	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Kind.IsReference() {
			continue
		}
		nd, err := e.descriptor(f.Elem)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", d.Name, f.Name, err)
		}
		fv := v.Field(f.Index)
		if f.Kind == entity.KindNested {
			if nv, ok := present(fv); ok {
				if err := e.check(w, nd, nv); err != nil {
					return err
				}
			}
			continue
		}
		for j := 0; j < fv.Len(); j++ {
			if nv, ok := present(fv.Index(j)); ok {
				if err := e.check(w, nd, nv); err != nil {
					return err
				}
			}
		}
	}
	w.done[k] = reflect.Value{}
	return nil
}

// persist пишет одну запись и возвращает её ключ. Сущность, уже записанная
// в этом вызове, повторно не пишется.
func (e *Engine) persist(ctx context.Context, w *walk, d *entity.Descriptor, v reflect.Value) (string, error) {
	key, err := d.IdentityValue(v)
	if err != nil {
		return "", err
	}
	k := visitKey{d.Name, key}
	if _, ok := w.done[k]; ok {
		return key, nil
	}
	w.done[k] = reflect.Value{}

	for i := range d.Fields {
		f := &d.Fields[i]
		s, err := e.encodeField(ctx, w, d, key, f, v.Field(f.Index))
		if err != nil {
			return "", err
		}
		if err := e.st.SetField(ctx, key, f.Storage, s); err != nil {
			return "", fmt.Errorf("persist %s %q: set %q: %w", d.Name, key, f.Storage, err)
		}
	}
	if err := e.st.SetField(ctx, key, entity.ClassField, d.Name); err != nil {
		return "", fmt.Errorf("persist %s %q: set %q: %w", d.Name, key, entity.ClassField, err)
	}
	return key, nil
}

// encodeField возвращает строку для поля; "" — значения нет.
// Вложенные сущности записываются раньше ссылки на них.
func (e *Engine) encodeField(ctx context.Context, w *walk, d *entity.Descriptor, key string, f *entity.Field, fv reflect.Value) (string, error) {
	switch f.Kind {
	case entity.KindScalar, entity.KindDate:
		return e.codec.Encode(fv, f.Scalar), nil

	case entity.KindScalarList:
		s, ambiguous := e.codec.EncodeList(fv, f.Scalar)
		if ambiguous {
			e.log.Warn("list element contains the delimiter, it will split on load",
				zap.String("entity", d.Name),
				zap.String("key", key),
				zap.String("field", f.Name),
			)
		}
		return s, nil

	case entity.KindNested:
		nv, ok := present(fv)
		if !ok {
			return "", nil
		}
		nd, err := e.descriptor(f.Elem)
		if err != nil {
			return "", err
		}
		return e.persist(ctx, w, nd, nv)

	case entity.KindEntityList:
		nd, err := e.descriptor(f.Elem)
		if err != nil {
			return "", err
		}
		ids := make([]string, 0, fv.Len())
		for j := 0; j < fv.Len(); j++ {
			nv, ok := present(fv.Index(j))
			if !ok {
				continue
			}
			id, err := e.persist(ctx, w, nd, nv)
			if err != nil {
				return "", err
			}
			ids = append(ids, id)
		}
		return codec.JoinTokens(ids), nil
	}
	return "", fmt.Errorf("%s.%s: unexpected kind %s", d.Name, f.Name, f.Kind)
}
