package dupescan

import (
	"fmt"
	"strconv"
	"strings"
)

// FileRecord is one digested file: its content digest, path and size in
// bytes. Records are immutable once created; the same path value may be
// shared between a primary record and duplicate lists.
type FileRecord struct {
	Digest string
	Path   string
	Size   uint64
}

// String renders the record as a primary index line without the trailing
// newline.
func (r FileRecord) String() string {
	return fmt.Sprintf("%s %d %s", r.Digest, r.Size, r.Path)
}

// DuplicateGroup is a primary record plus the ordered paths believed to
// share its digest.
type DuplicateGroup struct {
	Item  FileRecord
	Dupes []string
}

// newGroup creates a group with the given primary record and no duplicates.
func newGroup(item FileRecord) *DuplicateGroup {
	return &DuplicateGroup{Item: item}
}

// Push appends a duplicate path to the group.
func (g *DuplicateGroup) Push(path string) {
	g.Dupes = append(g.Dupes, path)
}

// encode renders the group in persisted form: one primary line followed by
// one continuation line per duplicate path, in stored order.
func (g *DuplicateGroup) encode() string {
	var sb strings.Builder
	sb.Grow(g.encodedLen())
	sb.WriteString(g.Item.Digest)
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(g.Item.Size, 10))
	sb.WriteByte(' ')
	sb.WriteString(g.Item.Path)
	sb.WriteByte('\n')
	for _, d := range g.Dupes {
		sb.WriteString(DupeMarker)
		sb.WriteByte(' ')
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// encodedLen returns the byte length of the group's persisted form.
func (g *DuplicateGroup) encodedLen() int {
	n := len(g.Item.Digest) + 1 + sizeDigits(g.Item.Size) + 1 + len(g.Item.Path) + 1
	for _, d := range g.Dupes {
		n += len(DupeMarker) + 1 + len(d) + 1
	}
	return n
}

// sizeDigits counts the decimal digits of v.
func sizeDigits(v uint64) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}
