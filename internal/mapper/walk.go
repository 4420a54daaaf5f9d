package mapper

import (
	"fmt"
	"reflect"
)

type visitKey struct {
	entity string
	id     string
}

// walk — состояние одного вызова Persist/Load/Fetch.
// path — записи на текущем пути рекурсии, done — уже обработанные.
type walk struct {
	path map[visitKey]struct{}
	done map[visitKey]reflect.Value
}

func newWalk() *walk {
	return &walk{
		path: make(map[visitKey]struct{}),
		done: make(map[visitKey]reflect.Value),
	}
}

func (w *walk) enter(k visitKey) error {
	if _, ok := w.path[k]; ok {
		return fmt.Errorf("%w: %s %q", ErrCycle, k.entity, k.id)
	}
	w.path[k] = struct{}{}
	return nil
}

func (w *walk) leave(k visitKey) { delete(w.path, k) }

// present разыменовывает ссылку на вложенную сущность. nil-указатель и
// нулевая структура по значению считаются отсутствующей ссылкой.
func present(v reflect.Value) (reflect.Value, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		return v.Elem(), true
	}
	if v.IsZero() {
		return reflect.Value{}, false
	}
	return v, true
}
