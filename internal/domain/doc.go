// Package domain contains the core data model shared by every lakhbronze component.
//
// It has no dependencies on infrastructure concerns (archives, HDF5, logging)
// and holds only the values exchanged between components and the error kinds
// they report.
//
// # Entities
//
//   - [Entry]: One archive member that matched the suffix filter
//   - [Value]: A portable value (nil, number, text, list, mapping)
//   - [Record]: One flat row, column name to [Value]
//   - [Batch]: A bounded, ordered group of records
//   - [AssociationRow]: One (parent, child) pair from an association file
//
// Values exchanged between components are not mutated after they are
// produced; ownership of a [Batch] moves to whoever receives it.
package domain
