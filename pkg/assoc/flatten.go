package assoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// Shape restricts which top-level value shapes a document may contain.
type Shape int

const (
	// ShapeAny accepts both maps and lists, per key.
	ShapeAny Shape = iota
	// ShapeMap accepts only scored maps.
	ShapeMap
	// ShapeList accepts only ordered lists.
	ShapeList
)

func (s Shape) String() string {
	switch s {
	case ShapeMap:
		return "map"
	case ShapeList:
		return "list"
	default:
		return "any"
	}
}

// ReadFile loads and flattens the association file at path.
func ReadFile(path string, shape Shape) ([]domain.AssociationRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read association file: %w", err)
	}
	return FlattenAs(data, shape)
}

// Flatten expands data accepting either shape for every top-level key.
func Flatten(data []byte) ([]domain.AssociationRow, error) {
	return FlattenAs(data, ShapeAny)
}

// FlattenAs expands data, failing if a top-level value does not match shape.
// A key repeated at either level keeps its first position and its last value.
func FlattenAs(data []byte, shape Shape) ([]domain.AssociationRow, error) {
	if !json.Valid(data) {
		return nil, malformed("", "invalid JSON document")
	}
	_, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, malformed("", fmt.Sprintf("invalid JSON: %v", err))
	}
	if typ != jsonparser.Object {
		return nil, malformed("", fmt.Sprintf("top level must be an object, got %v", typ))
	}

	var (
		parents []string
		groups  = make(map[string][]domain.AssociationRow)
	)
	// Keys arrive unescaped from ObjectEach.
	err = jsonparser.ObjectEach(data, func(rawKey, value []byte, typ jsonparser.ValueType, _ int) error {
		parent := string(rawKey)

		var (
			children []domain.AssociationRow
			err      error
		)
		switch {
		case typ == jsonparser.Object && shape != ShapeList:
			children, err = scoredRows(parent, value)
		case typ == jsonparser.Array && shape != ShapeMap:
			children, err = orderedRows(parent, value)
		case typ == jsonparser.Object || typ == jsonparser.Array:
			err = malformed(parent, fmt.Sprintf("expected %v value, got %v", shape, typ))
		default:
			err = malformed(parent, fmt.Sprintf("value must be an object or array, got %v", typ))
		}
		if err != nil {
			return err
		}
		if _, seen := groups[parent]; !seen {
			parents = append(parents, parent)
		}
		groups[parent] = children
		return nil
	})
	if err != nil {
		var me *domain.MalformedAssociationError
		if errors.As(err, &me) {
			return nil, err
		}
		return nil, malformed("", fmt.Sprintf("invalid JSON: %v", err))
	}

	var rows []domain.AssociationRow
	for _, p := range parents {
		rows = append(rows, groups[p]...)
	}
	return rows, nil
}

func scoredRows(parent string, data []byte) ([]domain.AssociationRow, error) {
	var (
		rows  []domain.AssociationRow
		index = make(map[string]int)
	)
	err := jsonparser.ObjectEach(data, func(rawKey, value []byte, typ jsonparser.ValueType, _ int) error {
		child := string(rawKey)
		v, err := scalar(value, typ)
		if err != nil {
			return malformed(parent, fmt.Sprintf("child %q: %v", child, err))
		}
		if i, seen := index[child]; seen {
			rows[i].Value = v
			return nil
		}
		index[child] = len(rows)
		rows = append(rows, domain.AssociationRow{ParentKey: parent, ChildKey: child, Value: v})
		return nil
	})
	if err != nil {
		var me *domain.MalformedAssociationError
		if errors.As(err, &me) {
			return nil, err
		}
		return nil, malformed(parent, err.Error())
	}
	return rows, nil
}

func orderedRows(parent string, data []byte) ([]domain.AssociationRow, error) {
	var (
		rows    []domain.AssociationRow
		order   int
		elemErr error
	)
	_, err := jsonparser.ArrayEach(data, func(value []byte, typ jsonparser.ValueType, _ int, err error) {
		if elemErr != nil {
			return
		}
		if err != nil {
			elemErr = malformed(parent, err.Error())
			return
		}
		if typ != jsonparser.String {
			elemErr = malformed(parent, fmt.Sprintf("element %d must be a string, got %v", order, typ))
			return
		}
		child, err := jsonparser.ParseString(value)
		if err != nil {
			elemErr = malformed(parent, fmt.Sprintf("element %d: %v", order, err))
			return
		}
		rows = append(rows, domain.AssociationRow{ParentKey: parent, ChildKey: child, Order: order, Ordered: true})
		order++
	})
	if elemErr != nil {
		return nil, elemErr
	}
	if err != nil {
		return nil, malformed(parent, err.Error())
	}
	return rows, nil
}

// scalar converts a scored-map value. Integral numbers become int64.
func scalar(value []byte, typ jsonparser.ValueType) (domain.Value, error) {
	switch typ {
	case jsonparser.Number:
		if !bytes.ContainsAny(value, ".eE") {
			if n, err := jsonparser.ParseInt(value); err == nil {
				return n, nil
			}
		}
		return jsonparser.ParseFloat(value)
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("value must be a scalar, got %v", typ)
	}
}

func malformed(key, reason string) *domain.MalformedAssociationError {
	return &domain.MalformedAssociationError{Key: key, Reason: reason}
}
