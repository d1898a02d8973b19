package domain

import (
	"path"
	"strings"
)

// Entry is a single archive member whose content has been read into memory.
type Entry struct {
	// Path is the member name as stored in the archive
	Path string

	// ID is the filename stem of Path, used as the join key across resources
	ID string

	// Content holds the member bytes
	Content []byte

	// Size is the number of content bytes
	Size int64
}

// NewEntry builds an Entry and derives its ID from the path.
func NewEntry(p string, content []byte) Entry {
	return Entry{
		Path:    p,
		ID:      Stem(p),
		Content: content,
		Size:    int64(len(content)),
	}
}

// Stem returns the final path element with its last extension removed.
// A leading dot does not start an extension, so ".hidden" is its own stem.
// Archive member names always use forward slashes.
func Stem(p string) string {
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	ext := path.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Record returns the base columns for this entry. The content column is
// included only when withContent is set.
func (e Entry) Record(withContent bool) Record {
	r := Record{
		ColumnPath:      e.Path,
		ColumnID:        e.ID,
		ColumnSizeBytes: e.Size,
	}
	if withContent {
		r[ColumnContent] = e.Content
	}
	return r
}
