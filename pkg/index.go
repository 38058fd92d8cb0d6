package dupescan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Index is a digest-keyed collection of duplicate groups. Each builder mode
// constructs a fresh Index; an Index is owned by one operation at a time
// and is never mutated concurrently.
type Index struct {
	groups map[string]*DuplicateGroup
}

// newIndex creates an empty index.
func newIndex() *Index {
	return &Index{groups: make(map[string]*DuplicateGroup)}
}

// Len returns the number of groups.
func (x *Index) Len() int {
	return len(x.groups)
}

// Get returns the group stored under digest, if any.
func (x *Index) Get(digest string) (*DuplicateGroup, bool) {
	g, ok := x.groups[digest]
	return g, ok
}

// Max returns the largest primary size in the index, or 0 when empty. Used
// to bound a subsequent scan so files too large to match anything are never
// digested.
func (x *Index) Max() uint64 {
	var max uint64
	for _, g := range x.groups {
		if g.Item.Size > max {
			max = g.Item.Size
		}
	}
	return max
}

// CountDupes returns the total number of duplicate paths across all groups.
func (x *Index) CountDupes() int {
	count := 0
	for _, g := range x.groups {
		count += len(g.Dupes)
	}
	return count
}

// insert stores a group under its primary digest.
func (x *Index) insert(g *DuplicateGroup) {
	x.groups[g.Item.Digest] = g
}

// indexSource is the sealed set of index construction sources. Exactly one
// is active per build.
type indexSource interface {
	isIndexSource()
}

type sourceEmpty struct{}

type sourceList struct {
	list *ScanList
}

type sourceReader struct {
	r io.Reader
}

type sourceConfirm struct {
	index *Index
}

func (sourceEmpty) isIndexSource()   {}
func (sourceList) isIndexSource()    {}
func (sourceReader) isIndexSource()  {}
func (sourceConfirm) isIndexSource() {}

// IndexBuilder configures index construction. The builder is immutable:
// each method returns an updated copy, and Build is the terminal step.
type IndexBuilder struct {
	withDupes bool
	source    indexSource
}

// NewIndexBuilder returns a builder that produces an empty index unless a
// source is selected.
func NewIndexBuilder() IndexBuilder {
	return IndexBuilder{source: sourceEmpty{}}
}

// WithDupes enables duplicate tracking: records whose digest is already
// indexed are appended to that group's duplicate list instead of being
// discarded.
func (b IndexBuilder) WithDupes(dupes bool) IndexBuilder {
	b.withDupes = dupes
	return b
}

// FromList builds the index by merging a scan list digest by digest.
func (b IndexBuilder) FromList(list *ScanList) IndexBuilder {
	b.source = sourceList{list: list}
	return b
}

// FromReader builds the index from its persisted text form.
func (b IndexBuilder) FromReader(r io.Reader) IndexBuilder {
	b.source = sourceReader{r: r}
	return b
}

// Confirm builds a new index by fully re-digesting every primary and
// duplicate of an existing one, dropping duplicates that no longer match.
func (b IndexBuilder) Confirm(index *Index) IndexBuilder {
	b.source = sourceConfirm{index: index}
	return b
}

// Build constructs the index from the configured source.
func (b IndexBuilder) Build() (*Index, error) {
	switch src := b.source.(type) {
	case sourceEmpty:
		return newIndex(), nil
	case sourceList:
		VerboseLog(1, "constructing index from list")
		return b.buildFromList(src.list), nil
	case sourceReader:
		VerboseLog(1, "constructing index from reader")
		return b.buildFromReader(src.r)
	case sourceConfirm:
		VerboseLog(1, "constructing confirmed dupe index from index")
		return buildConfirm(src.index)
	default:
		return nil, fmt.Errorf("unknown index source %T", b.source)
	}
}

// buildFromList merges the list by digest: the first record seen for a
// digest becomes the primary, later records collapse into its duplicate
// list (or are discarded without duplicate tracking).
func (b IndexBuilder) buildFromList(list *ScanList) *Index {
	x := newIndex()
	for _, rec := range list.Items {
		if g, ok := x.groups[rec.Digest]; ok {
			if b.withDupes {
				g.Push(rec.Path)
			}
			continue
		}
		x.insert(newGroup(rec))
	}
	return x
}

// buildFromReader parses the persisted line format. Merge semantics match
// buildFromList; the input order is whatever the file contains.
func (b IndexBuilder) buildFromReader(r io.Reader) (*Index, error) {
	x := newIndex()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lastDigest := DupeMarker
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()

		digest, rest, ok := cutSpace(text)
		if !ok {
			return nil, &FormatError{Line: line, Reason: "missing digest"}
		}

		// Continuation lines carry no size field.
		var size uint64
		if digest != DupeMarker {
			sizeField, pathField, ok := cutSpace(rest)
			if !ok {
				return nil, &FormatError{Line: line, Reason: "missing size"}
			}
			size, _ = strconv.ParseUint(sizeField, 10, 64)
			rest = pathField
		}

		if digest == DupeMarker {
			digest = lastDigest
		} else {
			lastDigest = digest
		}

		if g, ok := x.groups[digest]; ok {
			if b.withDupes {
				g.Push(rest)
			}
			continue
		}
		x.insert(newGroup(FileRecord{Digest: digest, Path: rest, Size: size}))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	return x, nil
}

// buildConfirm re-digests every primary in full mode and re-verifies each
// recorded duplicate: the duplicate's current size must still match the
// primary's recorded size, and its full digest must hit a key in the new
// index. Failing candidates are dropped silently; I/O errors abort the
// whole confirm.
func buildConfirm(src *Index) (*Index, error) {
	x := newIndex()
	for digest, g := range src.groups {
		item, err := DigestFile(g.Item.Path, false)
		if err != nil {
			return nil, err
		}
		x.groups[digest] = newGroup(item)

		for _, dupe := range g.Dupes {
			var size uint64
			if info, err := os.Stat(dupe); err == nil {
				size = uint64(info.Size())
			}
			if size != g.Item.Size {
				VerboseLog(2, "dropping %s: size %d no longer matches %d", dupe, size, g.Item.Size)
				continue
			}

			rec, err := DigestFile(dupe, false)
			if err != nil {
				return nil, err
			}
			if target, ok := x.groups[rec.Digest]; ok {
				VerboseLog(2, "confirmed dupe %s %s", g.Item.Path, rec.Path)
				target.Push(rec.Path)
			} else {
				VerboseLog(2, "invalid dupe %s %s", g.Item.Path, rec.Path)
			}
		}
	}
	return x, nil
}

// cutSpace splits s at its first whitespace character, consuming exactly
// that one character. The remainder may itself contain whitespace; paths
// with spaces survive parsing this way.
func cutSpace(s string) (before, after string, found bool) {
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}
