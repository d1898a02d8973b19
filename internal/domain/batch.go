package domain

// Batch is an ordered group of records handed downstream as one unit.
// Only the final batch of a sequence may hold fewer than the configured
// maximum, and an emitted batch is never empty.
type Batch struct {
	// Seq is the 1-based position of this batch in its sequence
	Seq int64

	// Records holds the rows in source order
	Records []Record
}

// Size returns the number of records in the batch.
func (b Batch) Size() int {
	return len(b.Records)
}

// Empty returns true if the batch has no records.
func (b Batch) Empty() bool {
	return len(b.Records) == 0
}
