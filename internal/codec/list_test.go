package codec

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recmap/internal/entity"
)

func TestTokens(t *testing.T) {
	assert.Equal(t, "a,b,c", JoinTokens([]string{"a", "b", "c"}))
	assert.Equal(t, "", JoinTokens(nil))

	assert.Equal(t, []string{"a", "b"}, SplitTokens("a,,b,"))
	empty := SplitTokens("")
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestScalarListRoundTrip(t *testing.T) {
	c := Scalar{}

	s, ambiguous := c.EncodeList(reflect.ValueOf([]int{3, 1, 2}), entity.ScalarLong)
	assert.Equal(t, "3,1,2", s)
	assert.False(t, ambiguous)

	v, err := c.DecodeList(s, entity.ScalarLong, reflect.TypeOf([]int{}))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, v.Interface())
}

func TestScalarListPointers(t *testing.T) {
	c := Scalar{}
	a, b := "x", "y"
	s, _ := c.EncodeList(reflect.ValueOf([]*string{&a, nil, &b}), entity.ScalarString)
	assert.Equal(t, "x,y", s, "nil elements are skipped")

	v, err := c.DecodeList(s, entity.ScalarString, reflect.TypeOf([]*string{}))
	require.NoError(t, err)
	out := v.Interface().([]*string)
	require.Len(t, out, 2)
	assert.Equal(t, "x", *out[0])
	assert.Equal(t, "y", *out[1])
}

func TestEmptyList(t *testing.T) {
	c := Scalar{}
	s, _ := c.EncodeList(reflect.ValueOf([]string{}), entity.ScalarString)
	assert.Equal(t, "", s)

	v, err := c.DecodeList("", entity.ScalarString, reflect.TypeOf([]string{}))
	require.NoError(t, err)
	assert.NotNil(t, v.Interface())
	assert.Empty(t, v.Interface())
}

// Запятая внутри значения не экранируется: элемент распадается на два.
func TestDelimiterInsideValueSplitsElement(t *testing.T) {
	c := Scalar{}
	s, ambiguous := c.EncodeList(reflect.ValueOf([]string{"a,b", "c"}), entity.ScalarString)
	assert.True(t, ambiguous)
	assert.Equal(t, "a,b,c", s)

	v, err := c.DecodeList(s, entity.ScalarString, reflect.TypeOf([]string{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, v.Interface())
}

func TestMalformedElementFailsWholeList(t *testing.T) {
	_, err := Scalar{}.DecodeList("1,two,3", entity.ScalarLong, reflect.TypeOf([]int64{}))
	assert.ErrorIs(t, err, ErrDecode)
}
