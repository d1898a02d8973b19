// Package columnar converts record batches into Apache Arrow records.
//
// Archive batches use the columns path, id, content (optional) and size_bytes,
// followed by one column per merged container group. Association batches
// use parent_key, child_key, value and, for ordered associations, order.
//
// Container groups are nested mappings with no fixed schema, so their
// columns are strings holding the JSON encoding of the group. Non-finite
// floats inside a group are written as null.
package columnar
