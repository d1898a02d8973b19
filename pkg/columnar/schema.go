package columnar

import (
	"sort"

	"github.com/apache/arrow/go/v10/arrow"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// ArchiveSchema returns the schema for archive-derived batches. groups name
// the merged container columns, in the order given.
func ArchiveSchema(includeContent bool, groups ...string) *arrow.Schema {
	fields := []arrow.Field{
		{Name: domain.ColumnPath, Type: arrow.BinaryTypes.String},
		{Name: domain.ColumnID, Type: arrow.BinaryTypes.String},
	}
	if includeContent {
		fields = append(fields, arrow.Field{Name: domain.ColumnContent, Type: arrow.BinaryTypes.Binary})
	}
	fields = append(fields, arrow.Field{Name: domain.ColumnSizeBytes, Type: arrow.PrimitiveTypes.Int64})
	for _, g := range groups {
		fields = append(fields, arrow.Field{Name: g, Type: arrow.BinaryTypes.String, Nullable: true})
	}
	return arrow.NewSchema(fields, nil)
}

// AssociationSchema returns the schema for association-derived batches.
func AssociationSchema(ordered bool) *arrow.Schema {
	fields := []arrow.Field{
		{Name: domain.ColumnParentKey, Type: arrow.BinaryTypes.String},
		{Name: domain.ColumnChildKey, Type: arrow.BinaryTypes.String},
		{Name: domain.ColumnValue, Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}
	if ordered {
		fields = append(fields, arrow.Field{Name: domain.ColumnOrder, Type: arrow.PrimitiveTypes.Int64})
	}
	return arrow.NewSchema(fields, nil)
}

// InferSchema derives an archive schema from the columns present in records.
// Columns other than the base archive columns become JSON string columns,
// sorted by name.
func InferSchema(records []domain.Record) *arrow.Schema {
	var (
		content bool
		extra   = map[string]struct{}{}
	)
	for _, rec := range records {
		for k := range rec {
			switch k {
			case domain.ColumnPath, domain.ColumnID, domain.ColumnSizeBytes:
			case domain.ColumnContent:
				content = true
			default:
				extra[k] = struct{}{}
			}
		}
	}
	groups := make([]string, 0, len(extra))
	for k := range extra {
		groups = append(groups, k)
	}
	sort.Strings(groups)
	return ArchiveSchema(content, groups...)
}
