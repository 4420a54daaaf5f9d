package codec

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recmap/internal/entity"
)

type status string

func TestEncode(t *testing.T) {
	c := Scalar{}
	ptr := 12
	cases := []struct {
		name string
		v    any
		k    entity.ScalarKind
		want string
	}{
		{"string", "hello, world", entity.ScalarString, "hello, world"},
		{"named string", status("open"), entity.ScalarString, "open"},
		{"int32", int32(-5), entity.ScalarInt, "-5"},
		{"uint8", uint8(255), entity.ScalarInt, "255"},
		{"int64", int64(math.MaxInt64), entity.ScalarLong, "9223372036854775807"},
		{"uint64", uint64(math.MaxUint64), entity.ScalarLong, "18446744073709551615"},
		{"float32", float32(1.1), entity.ScalarFloat, "1.1"},
		{"float64", 2.5, entity.ScalarDouble, "2.5"},
		{"float64 big", 1e21, entity.ScalarDouble, "1e+21"},
		{"bool", true, entity.ScalarBool, "true"},
		{"pointer", &ptr, entity.ScalarLong, "12"},
		{"nil pointer", (*int)(nil), entity.ScalarLong, ""},
		{"zero date", time.Time{}, entity.ScalarDate, ""},
		{"date drops time", time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC), entity.ScalarDate, "2024-03-09"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Encode(reflect.ValueOf(tc.v), tc.k))
		})
	}
}

func TestEncodeDateInLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	moment := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC) // 2024-03-10 05:00 JST

	assert.Equal(t, "2024-03-09", Scalar{}.Encode(reflect.ValueOf(moment), entity.ScalarDate))
	assert.Equal(t, "2024-03-10", Scalar{Location: tokyo}.Encode(reflect.ValueOf(moment), entity.ScalarDate))
}

func TestDecode(t *testing.T) {
	c := Scalar{}
	cases := []struct {
		name string
		s    string
		k    entity.ScalarKind
		t    any
		want any
	}{
		{"string", "a b", entity.ScalarString, "", "a b"},
		{"named string", "open", entity.ScalarString, status(""), status("open")},
		{"int16", "-300", entity.ScalarInt, int16(0), int16(-300)},
		{"uint32", "4000000000", entity.ScalarInt, uint32(0), uint32(4000000000)},
		{"int", "42", entity.ScalarLong, 0, 42},
		{"float32", "1.5", entity.ScalarFloat, float32(0), float32(1.5)},
		{"float64 exp", "1.0E10", entity.ScalarDouble, 0.0, 1e10},
		{"bool", "TRUE", entity.ScalarBool, false, true},
		{"bool digit", "0", entity.ScalarBool, true, false},
		{"date", "2024-03-09", entity.ScalarDate, time.Time{}, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := c.Decode(tc.s, tc.k, reflect.TypeOf(tc.t))
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.Interface())
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	c := Scalar{}
	cases := []struct {
		name string
		s    string
		k    entity.ScalarKind
		t    any
	}{
		{"not a number", "abc", entity.ScalarLong, 0},
		{"overflow int8", "200", entity.ScalarInt, int8(0)},
		{"negative uint", "-1", entity.ScalarLong, uint(0)},
		{"bad float", "1,5", entity.ScalarDouble, 0.0},
		{"bad bool", "yes", entity.ScalarBool, false},
		{"datetime is not a date", "2024-03-09T10:00:00Z", entity.ScalarDate, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Decode(tc.s, tc.k, reflect.TypeOf(tc.t))
			assert.ErrorIs(t, err, ErrDecode)
		})
	}

	_, err := c.Decode("", entity.ScalarString, reflect.TypeOf(""))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDateRoundTripTruncatesToDay(t *testing.T) {
	c := Scalar{}
	in := time.Date(2023, 12, 31, 17, 45, 12, 99, time.UTC)
	v, err := c.Decode(c.Encode(reflect.ValueOf(in), entity.ScalarDate), entity.ScalarDate, reflect.TypeOf(in))
	require.NoError(t, err)
	assert.True(t, in.Truncate(24*time.Hour).Equal(v.Interface().(time.Time)))
}
