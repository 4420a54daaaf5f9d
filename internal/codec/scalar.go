// Package codec converts scalar values and scalar lists to and from their
// string form inside a hash record. The empty string always means "no value".
package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"recmap/internal/entity"
)

// DateLayout — даты хранятся с точностью до дня, время суток отбрасывается.
const DateLayout = "2006-01-02"

var (
	ErrEmpty  = errors.New("empty value")
	ErrDecode = errors.New("cannot decode value")
)

var timeType = reflect.TypeOf(time.Time{})

// Scalar кодирует скаляры; Location задаёт часовой пояс для дат (nil — UTC).
type Scalar struct {
	Location *time.Location
}

func (c Scalar) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Encode возвращает строковое представление v. nil-указатель и нулевая дата дают "".
func (c Scalar) Encode(v reflect.Value, k entity.ScalarKind) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch k {
	case entity.ScalarString:
		return v.String()
	case entity.ScalarInt, entity.ScalarLong:
		switch v.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(v.Uint(), 10)
		default:
			return strconv.FormatInt(v.Int(), 10)
		}
	case entity.ScalarFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case entity.ScalarDouble:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case entity.ScalarBool:
		return strconv.FormatBool(v.Bool())
	case entity.ScalarDate:
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return ""
		}
		return t.In(c.loc()).Format(DateLayout)
	default:
		return fmt.Sprint(v.Interface())
	}
}

// Decode разбирает s в значение типа t (без указателя).
func (c Scalar) Decode(s string, k entity.ScalarKind, t reflect.Type) (reflect.Value, error) {
	if s == "" {
		return reflect.Value{}, ErrEmpty
	}
	out := reflect.New(t).Elem()
	switch k {
	case entity.ScalarString:
		out.SetString(s)
	case entity.ScalarInt, entity.ScalarLong:
		switch t.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(s, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, decodeErr(k, s, err)
			}
			out.SetUint(n)
		default:
			n, err := strconv.ParseInt(s, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, decodeErr(k, s, err)
			}
			out.SetInt(n)
		}
	case entity.ScalarFloat, entity.ScalarDouble:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, decodeErr(k, s, err)
		}
		out.SetFloat(f)
	case entity.ScalarBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, decodeErr(k, s, err)
		}
		out.SetBool(b)
	case entity.ScalarDate:
		if t != timeType {
			return reflect.Value{}, decodeErr(k, s, fmt.Errorf("target type %s", t))
		}
		tm, err := time.ParseInLocation(DateLayout, s, c.loc())
		if err != nil {
			return reflect.Value{}, decodeErr(k, s, err)
		}
		out.Set(reflect.ValueOf(tm))
	default:
		return reflect.Value{}, decodeErr(k, s, fmt.Errorf("unknown scalar kind"))
	}
	return out, nil
}

func decodeErr(k entity.ScalarKind, s string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", ErrDecode, k, s, err)
}
