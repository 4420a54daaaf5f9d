package mapper

import (
	"context"
	"fmt"
	"reflect"

	"recmap/internal/codec"
	"recmap/internal/entity"
)

// Load читает запись по id из шаблона и возвращает новый *T.
// Записи нет — (nil, false, nil). Lazy-поля не читаются.
func (e *Engine) Load(ctx context.Context, tmpl any) (any, bool, error) {
	d, v, err := e.resolve(tmpl)
	if err != nil {
		return nil, false, err
	}
	key, err := d.IdentityValue(v)
	if err != nil {
		return nil, false, err
	}
	p, ok, err := e.load(ctx, newWalk(), d, key)
	if err != nil || !ok {
		return nil, false, err
	}
	return p.Interface(), true, nil
}

// LoadAs — типизированная обёртка над Load.
func LoadAs[T any](ctx context.Context, e *Engine, tmpl *T) (*T, bool, error) {
	obj, ok, err := e.Load(ctx, tmpl)
	if err != nil || !ok {
		return nil, false, err
	}
	out, isT := obj.(*T)
	if !isT {
		return nil, false, fmt.Errorf("%w: loaded %T", ErrInvalidObject, obj)
	}
	return out, true, nil
}

func (e *Engine) load(ctx context.Context, w *walk, d *entity.Descriptor, key string) (reflect.Value, bool, error) {
	k := visitKey{d.Name, key}
	if p, ok := w.done[k]; ok {
		return p, true, nil
	}
	if err := w.enter(k); err != nil {
		return reflect.Value{}, false, err
	}
	defer w.leave(k)

	exists, err := e.st.Exists(ctx, key)
	if err != nil {
		return reflect.Value{}, false, fmt.Errorf("load %s %q: exists: %w", d.Name, key, err)
	}
	if !exists {
		return reflect.Value{}, false, nil
	}

	p := d.New()
	obj := p.Elem()
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Lazy {
			continue
		}
		if err := e.loadField(ctx, w, d, key, f, obj.Field(f.Index)); err != nil {
			return reflect.Value{}, false, err
		}
	}
	// id берётся из шаблона, даже если в записи его нет
	if err := d.SetIdentity(obj, key); err != nil {
		return reflect.Value{}, false, err
	}
	w.done[k] = p
	return p, true, nil
}

// loadField читает одно поле в fv. Возвращает только ошибки хранилища и
// конфигурации; битые данные логируются и оставляют поле нулевым.
func (e *Engine) loadField(ctx context.Context, w *walk, d *entity.Descriptor, key string, f *entity.Field, fv reflect.Value) error {
	s, ok, err := e.read(ctx, key, f)
	if err != nil {
		return fmt.Errorf("load %s %q: get %q: %w", d.Name, key, f.Storage, err)
	}
	if !ok {
		return nil
	}

	switch f.Kind {
	case entity.KindScalar, entity.KindDate:
		val, err := e.codec.Decode(s, f.Scalar, f.Elem)
		if err != nil {
			e.absorb(d, key, f, err)
			return nil
		}
		if f.Pointer {
			p := reflect.New(f.Elem)
			p.Elem().Set(val)
			val = p
		}
		fv.Set(val)

	case entity.KindScalarList:
		val, err := e.codec.DecodeList(s, f.Scalar, f.Type)
		if err != nil {
			e.absorb(d, key, f, err)
			return nil
		}
		fv.Set(val)

	case entity.KindNested:
		nd, err := e.descriptor(f.Elem)
		if err != nil {
			return err
		}
		p, found, err := e.loadRef(ctx, w, d, key, f, nd, s)
		if err != nil || !found {
			return err
		}
		if f.Pointer {
			fv.Set(p)
		} else {
			fv.Set(p.Elem())
		}

	case entity.KindEntityList:
		nd, err := e.descriptor(f.Elem)
		if err != nil {
			return err
		}
		tokens := codec.SplitTokens(s)
		out := reflect.MakeSlice(f.Type, 0, len(tokens))
		for _, tok := range tokens {
			p, found, err := e.loadRef(ctx, w, d, key, f, nd, tok)
			if err != nil {
				return err
			}
			if !found {
				continue
			}
			if f.Pointer {
				out = reflect.Append(out, p)
			} else {
				out = reflect.Append(out, p.Elem())
			}
		}
		fv.Set(out)
	}
	return nil
}

// loadRef загружает сущность по токену-ссылке. Неразбираемый токен
// поглощается так же, как битое скалярное значение.
func (e *Engine) loadRef(ctx context.Context, w *walk, d *entity.Descriptor, key string, f *entity.Field, nd *entity.Descriptor, tok string) (reflect.Value, bool, error) {
	tmpl, err := nd.Template(tok)
	if err != nil {
		e.absorb(d, key, f, err)
		return reflect.Value{}, false, nil
	}
	id, err := nd.IdentityValue(tmpl.Elem())
	if err != nil {
		e.absorb(d, key, f, err)
		return reflect.Value{}, false, nil
	}
	return e.load(ctx, w, nd, id)
}

// read читает поле по имени хранения, затем по логическому имени.
// Пустая строка означает отсутствие значения.
func (e *Engine) read(ctx context.Context, key string, f *entity.Field) (string, bool, error) {
	s, ok, err := e.st.GetField(ctx, key, f.Storage)
	if err != nil {
		return "", false, err
	}
	if (!ok || s == "") && f.Storage != f.Name {
		s, ok, err = e.st.GetField(ctx, key, f.Name)
		if err != nil {
			return "", false, err
		}
	}
	if !ok || s == "" {
		return "", false, nil
	}
	return s, true, nil
}
