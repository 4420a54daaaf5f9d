package codec

import (
	"reflect"
	"strings"

	"recmap/internal/entity"
)

// Delimiter разделяет элементы списка. Не экранируется: значение с запятой
// ломает границы элементов, формат сохранён ради совместимости с уже записанными данными.
const Delimiter = ","

// JoinTokens склеивает токены (id сущностей или скаляры) через Delimiter.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, Delimiter)
}

// SplitTokens режет строку по Delimiter, пустые токены отбрасываются.
func SplitTokens(s string) []string {
	out := []string{}
	for _, tok := range strings.Split(s, Delimiter) {
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// EncodeList кодирует срез скаляров. ambiguous=true, если хотя бы один
// элемент содержит Delimiter и не переживёт обратного разбора.
func (c Scalar) EncodeList(v reflect.Value, k entity.ScalarKind) (s string, ambiguous bool) {
	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return "", false
	}
	tokens := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		tok := c.Encode(v.Index(i), k)
		if tok == "" {
			continue
		}
		if strings.Contains(tok, Delimiter) {
			ambiguous = true
		}
		tokens = append(tokens, tok)
	}
	return JoinTokens(tokens), ambiguous
}

// DecodeList разбирает строку в срез типа sliceType. Любой битый элемент
// делает весь список нечитаемым.
func (c Scalar) DecodeList(s string, k entity.ScalarKind, sliceType reflect.Type) (reflect.Value, error) {
	tokens := SplitTokens(s)
	elem := sliceType.Elem()
	ptr := elem.Kind() == reflect.Pointer
	base := elem
	if ptr {
		base = elem.Elem()
	}
	out := reflect.MakeSlice(sliceType, 0, len(tokens))
	for _, tok := range tokens {
		v, err := c.Decode(tok, k, base)
		if err != nil {
			return reflect.Value{}, err
		}
		if ptr {
			p := reflect.New(base)
			p.Elem().Set(v)
			v = p
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}
