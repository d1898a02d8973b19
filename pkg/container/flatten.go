package container

import (
	"errors"
	"fmt"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// FlattenStructured converts a record array. A single row becomes one
// mapping; any other row count becomes a list of mappings in row order, so
// zero rows give an empty list.
func FlattenStructured(ds *StructuredDataset) (domain.Value, error) {
	if len(ds.Rows) == 1 {
		return flattenRow(ds.Fields, ds.Rows[0])
	}
	out := make([]domain.Value, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		rec, err := flattenRow(ds.Fields, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// FlattenPlain converts a homogeneous dataset. A dataset with no data
// yields an empty list.
func FlattenPlain(ds *PlainDataset) (domain.Value, error) {
	if ds.Data == nil {
		return []domain.Value{}, nil
	}
	return Coerce(ds.Data)
}

func flattenRow(fields []string, row []any) (map[string]domain.Value, error) {
	if len(row) != len(fields) {
		return nil, fmt.Errorf("%w: row has %d values for %d fields", domain.ErrUnsupportedType, len(row), len(fields))
	}
	rec := make(map[string]domain.Value, len(fields))
	for i, name := range fields {
		v, err := Coerce(row[i])
		if err != nil {
			var de *domain.DecodeError
			if errors.As(err, &de) {
				return nil, de.WithField(name)
			}
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		rec[name] = v
	}
	return rec, nil
}
