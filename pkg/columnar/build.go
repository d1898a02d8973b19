package columnar

import (
	"fmt"
	"math"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/array"
	"github.com/apache/arrow/go/v10/arrow/memory"
	"github.com/goccy/go-json"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// Build converts records into one Arrow record laid out by schema. Keys
// absent from a record are null; keys absent from the schema are ignored.
// The caller must Release the returned record.
func Build(mem memory.Allocator, schema *arrow.Schema, records []domain.Record) (arrow.Record, error) {
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for i, field := range schema.Fields() {
		fb := b.Field(i)
		fb.Reserve(len(records))
		for row, rec := range records {
			v, ok := rec[field.Name]
			if !ok || v == nil {
				fb.AppendNull()
				continue
			}
			if err := appendValue(fb, v); err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", row, field.Name, err)
			}
		}
	}
	return b.NewRecord(), nil
}

func appendValue(b array.Builder, v domain.Value) error {
	switch b := b.(type) {
	case *array.StringBuilder:
		if s, ok := v.(string); ok {
			b.Append(s)
			return nil
		}
		data, err := json.Marshal(finite(v))
		if err != nil {
			return err
		}
		b.Append(string(data))
	case *array.BinaryBuilder:
		data, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("%w: %T in binary column", domain.ErrUnsupportedType, v)
		}
		b.Append(data)
	case *array.Int64Builder:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		b.Append(n)
	case *array.Float64Builder:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		b.Append(f)
	default:
		return fmt.Errorf("%w: column type %T", domain.ErrUnsupportedType, b)
	}
	return nil
}

func toInt64(v domain.Value) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", domain.ErrUnsupportedType, n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: %T in int64 column", domain.ErrUnsupportedType, v)
	}
}

func toFloat64(v domain.Value) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %T in float64 column", domain.ErrUnsupportedType, v)
	}
}

// finite replaces NaN and infinities with nil so the value can be encoded.
func finite(v domain.Value) domain.Value {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = finite(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = finite(e)
		}
		return out
	default:
		return v
	}
}
