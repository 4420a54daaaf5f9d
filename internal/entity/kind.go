package entity

import (
	"fmt"
	"reflect"
	"time"
)

// FieldKind — семантический вид поля, определяется один раз при регистрации типа.
type FieldKind int

const (
	_ FieldKind = iota // нулевое значение — невалидный вид

	KindScalar
	KindDate
	KindNested
	KindScalarList
	KindEntityList
)

func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindDate:
		return "date"
	case KindNested:
		return "nested"
	case KindScalarList:
		return "scalar_list"
	case KindEntityList:
		return "entity_list"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// IsList — поле хранится как список токенов через запятую.
func (k FieldKind) IsList() bool { return k == KindScalarList || k == KindEntityList }

// IsReference — поле ссылается на другие сущности.
func (k FieldKind) IsReference() bool { return k == KindNested || k == KindEntityList }

// ScalarKind — тип скалярного значения в строковом представлении.
type ScalarKind int

const (
	_ ScalarKind = iota

	ScalarString
	ScalarInt    // int8..int32, uint8..uint32
	ScalarLong   // int, int64, uint, uint64
	ScalarFloat  // float32
	ScalarDouble // float64
	ScalarBool
	ScalarDate // time.Time, день без времени
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarString:
		return "string"
	case ScalarInt:
		return "int"
	case ScalarLong:
		return "long"
	case ScalarFloat:
		return "float"
	case ScalarDouble:
		return "double"
	case ScalarBool:
		return "bool"
	case ScalarDate:
		return "date"
	default:
		return fmt.Sprintf("ScalarKind(%d)", int(k))
	}
}

// IsInteger — целочисленные виды; только они (и строка) годятся для id.
func (k ScalarKind) IsInteger() bool { return k == ScalarInt || k == ScalarLong }

// IsFloat — виды с плавающей точкой.
func (k ScalarKind) IsFloat() bool { return k == ScalarFloat || k == ScalarDouble }

var timeType = reflect.TypeOf(time.Time{})

// scalarKindOf classifies a non-pointer type; ok=false for non-scalars.
func scalarKindOf(t reflect.Type) (ScalarKind, bool) {
	if t == timeType {
		return ScalarDate, true
	}
	switch t.Kind() {
	case reflect.String:
		return ScalarString, true
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return ScalarInt, true
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return ScalarLong, true
	case reflect.Float32:
		return ScalarFloat, true
	case reflect.Float64:
		return ScalarDouble, true
	case reflect.Bool:
		return ScalarBool, true
	default:
		return 0, false
	}
}

func isEntityStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t != timeType
}

func deref(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Pointer {
		return t.Elem(), true
	}
	return t, false
}

// classify определяет вид поля по Go-типу.
func classify(f *Field, t reflect.Type) error {
	base, ptr := deref(t)
	if sk, ok := scalarKindOf(base); ok {
		f.Kind, f.Scalar, f.Elem, f.Pointer = KindScalar, sk, base, ptr
		if sk == ScalarDate {
			f.Kind = KindDate
		}
		return nil
	}
	if isEntityStruct(base) {
		f.Kind, f.Elem, f.Pointer = KindNested, base, ptr
		return nil
	}
	if !ptr && t.Kind() == reflect.Slice {
		elem, elemPtr := deref(t.Elem())
		if sk, ok := scalarKindOf(elem); ok {
			f.Kind, f.Scalar, f.Elem, f.Pointer = KindScalarList, sk, elem, elemPtr
			return nil
		}
		if isEntityStruct(elem) {
			f.Kind, f.Elem, f.Pointer = KindEntityList, elem, elemPtr
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}
