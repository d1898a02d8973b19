package container

import (
	"bytes"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// FixedString is a fixed-width byte string as stored in a container.
// Trailing NUL padding is not part of the text.
type FixedString []byte

// NDArray is a dense multi-dimensional array stored row-major in Data.
// An empty Shape denotes a scalar.
type NDArray struct {
	Shape []int
	Data  []any
}

// Coerce converts one raw container value into a domain.Value.
//
// Integers widen to int64 or uint64, floats to float64, fixed-width strings
// decode as UTF-8 and arrays become nested []any. Values that are already
// portable pass through; anything else is ErrUnsupportedType.
func Coerce(raw any) (domain.Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case FixedString:
		return DecodeText(v)
	case NDArray:
		return coerceND(v)
	case *NDArray:
		if v == nil {
			return nil, nil
		}
		return coerceND(*v)
	case []any:
		return coerceList(len(v), func(i int) any { return v[i] })
	case map[string]any:
		out := make(map[string]domain.Value, len(v))
		for k, item := range v {
			c, err := Coerce(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = c
		}
		return out, nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return coerceList(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	}
	return nil, fmt.Errorf("%w: %T", domain.ErrUnsupportedType, raw)
}

// DecodeText decodes a fixed-width byte string, dropping trailing NUL padding.
func DecodeText(b []byte) (string, error) {
	b = bytes.TrimRight(b, "\x00")
	if !utf8.Valid(b) {
		return "", &domain.DecodeError{Bytes: append([]byte(nil), b...)}
	}
	return string(b), nil
}

func coerceList(n int, at func(int) any) ([]domain.Value, error) {
	out := make([]domain.Value, n)
	for i := 0; i < n; i++ {
		c, err := Coerce(at(i))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

func coerceND(a NDArray) (domain.Value, error) {
	want := 1
	for _, d := range a.Shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", domain.ErrUnsupportedType, d)
		}
		want *= d
	}
	if len(a.Data) != want {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, have %d", domain.ErrUnsupportedType, a.Shape, want, len(a.Data))
	}
	if len(a.Shape) == 0 {
		return Coerce(a.Data[0])
	}
	return nest(a.Shape, a.Data)
}

// nest splits row-major data into nested lists following shape.
func nest(shape []int, data []any) ([]domain.Value, error) {
	if len(shape) == 1 {
		return coerceList(len(data), func(i int) any { return data[i] })
	}
	n := shape[0]
	stride := 0
	if n > 0 {
		stride = len(data) / n
	}
	out := make([]domain.Value, n)
	for i := 0; i < n; i++ {
		sub, err := nest(shape[1:], data[i*stride:(i+1)*stride])
		if err != nil {
			return nil, fmt.Errorf("[%d]%w", i, err)
		}
		out[i] = sub
	}
	return out, nil
}
