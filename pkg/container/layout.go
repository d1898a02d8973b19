package container

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// Class is the storage class of a raw scalar.
type Class int

const (
	ClassInt Class = iota
	ClassUint
	ClassFloat
	ClassString
	ClassBool
)

// FieldLayout places one named member inside a raw row.
type FieldLayout struct {
	Name   string
	Class  Class
	Offset int
	Size   int
}

// Layout describes a raw record: RowSize bytes per row, little-endian.
type Layout struct {
	RowSize int
	Fields  []FieldLayout
}

// Names returns the field names in layout order.
func (l Layout) Names() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}
	return names
}

// DecodeRecords splits raw into rows and decodes every field of every row.
func DecodeRecords(raw []byte, l Layout) ([][]any, error) {
	if l.RowSize <= 0 {
		return nil, fmt.Errorf("%w: row size %d", domain.ErrUnsupportedType, l.RowSize)
	}
	if len(raw)%l.RowSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of row size %d", domain.ErrUnsupportedType, len(raw), l.RowSize)
	}
	for _, f := range l.Fields {
		if f.Offset < 0 || f.Offset+f.Size > l.RowSize {
			return nil, fmt.Errorf("%w: field %s [%d,%d) outside row of %d bytes", domain.ErrUnsupportedType, f.Name, f.Offset, f.Offset+f.Size, l.RowSize)
		}
	}

	n := len(raw) / l.RowSize
	rows := make([][]any, n)
	for i := 0; i < n; i++ {
		row := raw[i*l.RowSize : (i+1)*l.RowSize]
		vals := make([]any, len(l.Fields))
		for j, f := range l.Fields {
			v, err := decodeScalar(row[f.Offset:f.Offset+f.Size], f.Class)
			if err != nil {
				return nil, fmt.Errorf("row %d field %s: %w", i, f.Name, err)
			}
			vals[j] = v
		}
		rows[i] = vals
	}
	return rows, nil
}

// DecodeValues decodes a packed run of scalars of one class and size.
func DecodeValues(raw []byte, class Class, size int) ([]any, error) {
	if size <= 0 || len(raw)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes with element size %d", domain.ErrUnsupportedType, len(raw), size)
	}
	out := make([]any, len(raw)/size)
	for i := range out {
		v, err := decodeScalar(raw[i*size:(i+1)*size], class)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func decodeScalar(b []byte, class Class) (any, error) {
	le := binary.LittleEndian
	switch class {
	case ClassInt:
		switch len(b) {
		case 1:
			return int8(b[0]), nil
		case 2:
			return int16(le.Uint16(b)), nil
		case 4:
			return int32(le.Uint32(b)), nil
		case 8:
			return int64(le.Uint64(b)), nil
		}
	case ClassUint:
		switch len(b) {
		case 1:
			return b[0], nil
		case 2:
			return le.Uint16(b), nil
		case 4:
			return le.Uint32(b), nil
		case 8:
			return le.Uint64(b), nil
		}
	case ClassFloat:
		switch len(b) {
		case 4:
			return math.Float32frombits(le.Uint32(b)), nil
		case 8:
			return math.Float64frombits(le.Uint64(b)), nil
		}
	case ClassBool:
		if len(b) == 1 {
			return b[0] != 0, nil
		}
	case ClassString:
		return FixedString(append([]byte(nil), b...)), nil
	}
	return nil, fmt.Errorf("%w: class %d size %d", domain.ErrUnsupportedType, class, len(b))
}
