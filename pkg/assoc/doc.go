// Package assoc expands nested association maps into relational rows.
//
// Two shapes of top-level value are understood:
//
//	{"TRAAAGR128F425B14B": {"1d9d16a9...": 0.71, "5dd29e99...": 0.69}}   // scored map
//	{"1d9d16a9...": ["lmd_full/1/1d9d16a9....mid", "clean_midi/..."]}    // ordered list
//
// A scored map yields one row per child key carrying the score as its value.
// An ordered list yields one row per element with its 0-based position in
// Order; the position is kept exactly as written in the file.
//
// The file is parsed as a whole and rows come out in document order. Any
// structural violation fails the whole document with a
// *domain.MalformedAssociationError, so callers never see partial output.
package assoc
