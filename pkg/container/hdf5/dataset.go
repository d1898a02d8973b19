package hdf5

import (
	"fmt"

	gh5 "gonum.org/v1/hdf5"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/pkg/container"
)

// readDataset reads ds completely. The caller holds libMu.
func readDataset(name string, ds *gh5.Dataset) (container.Node, error) {
	dt, err := ds.Datatype()
	if err != nil {
		return nil, fmt.Errorf("datatype: %w", err)
	}
	defer dt.Close()

	space := ds.Space()
	defer space.Close()

	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("dataspace: %w", err)
	}
	n := space.SimpleExtentNPoints()
	size := int(dt.Size())

	// The datatype is checked before reading so unsupported types never reach H5Dread.
	if dt.Class() == gh5.T_COMPOUND {
		ct := gh5.CompoundType{Datatype: *dt}
		layout, err := compoundLayout(&ct, size)
		if err != nil {
			return nil, err
		}
		raw, err := readRaw(ds, n*size)
		if err != nil {
			return nil, err
		}
		rows, err := container.DecodeRecords(raw, layout)
		if err != nil {
			return nil, err
		}
		return &container.StructuredDataset{Name: name, Fields: layout.Names(), Rows: rows}, nil
	}

	class, err := scalarClass(dt)
	if err != nil {
		return nil, err
	}
	raw, err := readRaw(ds, n*size)
	if err != nil {
		return nil, err
	}
	values, err := container.DecodeValues(raw, class, size)
	if err != nil {
		return nil, err
	}
	shape := make([]int, len(dims))
	for i, d := range dims {
		shape[i] = int(d)
	}
	return &container.PlainDataset{Name: name, Data: container.NDArray{Shape: shape, Data: values}}, nil
}

func readRaw(ds *gh5.Dataset, n int) ([]byte, error) {
	raw := make([]byte, n)
	if n == 0 {
		return raw, nil
	}
	if err := ds.Read(&raw); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return raw, nil
}

func compoundLayout(ct *gh5.CompoundType, rowSize int) (container.Layout, error) {
	layout := container.Layout{RowSize: rowSize}
	for i := 0; i < ct.NMembers(); i++ {
		name := ct.MemberName(i)
		mt, err := ct.MemberType(i)
		if err != nil {
			return container.Layout{}, fmt.Errorf("member %s: %w", name, err)
		}
		class, err := scalarClass(mt)
		size := int(mt.Size())
		mt.Close()
		if err != nil {
			return container.Layout{}, fmt.Errorf("member %s: %w", name, err)
		}
		layout.Fields = append(layout.Fields, container.FieldLayout{
			Name:   name,
			Class:  class,
			Offset: ct.MemberOffset(i),
			Size:   size,
		})
	}
	return layout, nil
}

var unsignedTypes = []*gh5.Datatype{
	gh5.T_NATIVE_UINT8,
	gh5.T_NATIVE_UINT16,
	gh5.T_NATIVE_UINT32,
	gh5.T_NATIVE_UINT64,
}

func scalarClass(dt *gh5.Datatype) (container.Class, error) {
	switch dt.Class() {
	case gh5.T_INTEGER:
		for _, u := range unsignedTypes {
			if dt.Equal(u) {
				return container.ClassUint, nil
			}
		}
		return container.ClassInt, nil
	case gh5.T_FLOAT:
		return container.ClassFloat, nil
	case gh5.T_STRING:
		// the variable-length flag is only exposed on VarLenType
		vl := gh5.VarLenType{Datatype: *dt}
		if vl.IsVariableStr() {
			return 0, fmt.Errorf("%w: variable-length string", domain.ErrUnsupportedType)
		}
		return container.ClassString, nil
	case gh5.T_ENUM:
		// h5py stores numpy bools as a 1-byte enum
		if dt.Size() == 1 {
			return container.ClassBool, nil
		}
	}
	return 0, fmt.Errorf("%w: hdf5 class %v", domain.ErrUnsupportedType, dt.Class())
}
