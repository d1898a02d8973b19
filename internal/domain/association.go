package domain

// AssociationRow is one (parent, child) pair expanded from an association map.
type AssociationRow struct {
	ParentKey string
	ChildKey  string

	// Value is the scalar attached to a map-valued association; nil for lists.
	Value Value

	// Order is the 0-based position within a list-valued association.
	// It is meaningful only when Ordered is set.
	Order   int
	Ordered bool
}

// Record converts the row to its output columns. The order column is present
// only for list-valued associations.
func (r AssociationRow) Record() Record {
	rec := Record{
		ColumnParentKey: r.ParentKey,
		ColumnChildKey:  r.ChildKey,
		ColumnValue:     r.Value,
	}
	if r.Ordered {
		rec[ColumnOrder] = int64(r.Order)
	}
	return rec
}
