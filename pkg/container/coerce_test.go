package container

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want domain.Value
	}{
		{"nil", nil, nil},
		{"int32 widens", int32(-7), int64(-7)},
		{"int64 passthrough", int64(1 << 40), int64(1 << 40)},
		{"uint16 widens", uint16(65535), uint64(65535)},
		{"float32 keeps value", float32(0.5), float64(0.5)},
		{"float64 passthrough", 120.5, 120.5},
		{"bool", true, true},
		{"string", "already text", "already text"},
		{"fixed string drops padding", FixedString("Casual\x00\x00\x00"), "Casual"},
		{"utf8 fixed string", FixedString("Beyoncé"), "Beyoncé"},
		{"typed slice", []float32{1, 2.5}, []any{float64(1), float64(2.5)}},
		{"any slice recurses", []any{int8(1), FixedString("a\x00")}, []any{int64(1), "a"}},
		{"1d ndarray", NDArray{Shape: []int{3}, Data: []any{int32(1), int32(2), int32(3)}}, []any{int64(1), int64(2), int64(3)}},
		{
			"2d ndarray",
			NDArray{Shape: []int{2, 2}, Data: []any{1.0, 2.0, 3.0, 4.0}},
			[]any{[]any{1.0, 2.0}, []any{3.0, 4.0}},
		},
		{"scalar ndarray", NDArray{Data: []any{uint8(9)}}, uint64(9)},
		{"empty ndarray", NDArray{Shape: []int{0}, Data: []any{}}, []any{}},
		{"map recurses", map[string]any{"k": int16(2)}, map[string]any{"k": int64(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.raw)
			if err != nil {
				t.Fatalf("Coerce() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Coerce() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCoerce_InvalidUTF8(t *testing.T) {
	_, err := Coerce(FixedString{0xff, 0xfe, 'a'})
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode", err)
	}
	var de *domain.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not a *DecodeError", err)
	}
}

func TestCoerce_Unsupported(t *testing.T) {
	_, err := Coerce(struct{ X int }{1})
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("error = %v, want ErrUnsupportedType", err)
	}

	_, err = Coerce(NDArray{Shape: []int{2, 2}, Data: []any{1.0}})
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("shape mismatch error = %v, want ErrUnsupportedType", err)
	}
}
