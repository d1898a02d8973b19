package domain

import "sort"

// Value is a portable value. The dynamic type is always one of:
//
//	nil, bool, int64, uint64, float64, string, []byte (raw content only),
//	[]Value, map[string]Value
//
// Container-specific types never escape the container package.
type Value = any

// Record is one flat row keyed by column name.
type Record map[string]Value

// Column names shared by archive-derived resources.
const (
	ColumnPath      = "path"
	ColumnID        = "id"
	ColumnContent   = "content"
	ColumnSizeBytes = "size_bytes"
)

// Column names shared by association-derived resources.
const (
	ColumnParentKey = "parent_key"
	ColumnChildKey  = "child_key"
	ColumnValue     = "value"
	ColumnOrder     = "order"
)

// Keys returns the record's column names in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge copies every key of m into r. Keys that collide with an existing
// column are stored under prefix+key instead. Keys are applied in sorted
// order, so a prefixed collision replaces a literal prefix+key from m.
func (r Record) Merge(m map[string]Value, prefix string) {
	base := make(map[string]bool, len(r))
	for k := range r {
		base[k] = true
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if base[k] {
			r[prefix+k] = m[k]
			continue
		}
		r[k] = m[k]
	}
}
