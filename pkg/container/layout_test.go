package container

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

func TestDecodeRecords(t *testing.T) {
	// title S8 @0, year int32 @8, duration float64 @12, row size 20
	layout := Layout{
		RowSize: 20,
		Fields: []FieldLayout{
			{Name: "title", Class: ClassString, Offset: 0, Size: 8},
			{Name: "year", Class: ClassInt, Offset: 8, Size: 4},
			{Name: "duration", Class: ClassFloat, Offset: 12, Size: 8},
		},
	}
	row := func(title string, year int32, dur float64) []byte {
		b := make([]byte, 20)
		copy(b, title)
		binary.LittleEndian.PutUint32(b[8:], uint32(year))
		binary.LittleEndian.PutUint64(b[12:], math.Float64bits(dur))
		return b
	}
	raw := append(row("Intro", 2001, 61.5), row("Outro", -1, 0.25)...)

	rows, err := DecodeRecords(raw, layout)
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	got, err := FlattenStructured(&StructuredDataset{Name: "songs", Fields: layout.Names(), Rows: rows})
	if err != nil {
		t.Fatal(err)
	}
	want := []any{
		map[string]any{"title": "Intro", "year": int64(2001), "duration": 61.5},
		map[string]any{"title": "Outro", "year": int64(-1), "duration": 0.25},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestDecodeRecords_BadLayout(t *testing.T) {
	_, err := DecodeRecords(make([]byte, 10), Layout{RowSize: 4})
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("ragged input error = %v", err)
	}
	_, err = DecodeRecords(make([]byte, 8), Layout{RowSize: 8, Fields: []FieldLayout{{Name: "x", Class: ClassInt, Offset: 4, Size: 8}}})
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("out of bounds field error = %v", err)
	}
}

func TestDecodeValues(t *testing.T) {
	raw := make([]byte, 6)
	binary.LittleEndian.PutUint16(raw[0:], 1)
	binary.LittleEndian.PutUint16(raw[2:], 2)
	binary.LittleEndian.PutUint16(raw[4:], 65535)

	got, err := DecodeValues(raw, ClassUint, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []any{uint16(1), uint16(2), uint16(65535)}) {
		t.Errorf("got %#v", got)
	}

	if _, err := DecodeValues(raw, ClassFloat, 2); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("half floats should be unsupported, got %v", err)
	}
}
