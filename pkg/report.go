package dupescan

import (
	"fmt"
	"path/filepath"
	"sort"
)

// PruneZeroes returns a new index holding only the groups whose primary
// size is greater than zero. Duplicate lists are carried over unchanged;
// groups are shared with the source index, not copied.
func (x *Index) PruneZeroes() *Index {
	out := newIndex()
	for digest, g := range x.groups {
		if g.Item.Size > 0 {
			VerboseLog(2, "keeping %s", g.Item.Path)
			out.groups[digest] = g
		}
	}
	return out
}

// DupeDirs returns the unique parent directories of every duplicate path
// across all groups, sorted for stable output.
func (x *Index) DupeDirs() []string {
	set := make(map[string]struct{})
	for _, g := range x.groups {
		for _, d := range g.Dupes {
			set[filepath.Dir(d)] = struct{}{}
		}
	}

	dirs := make([]string, 0, len(set))
	for d := range set {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// DupesSize returns the total bytes reclaimable by deduplicating: the sum
// over all groups of primary size times duplicate count.
func (x *Index) DupesSize() uint64 {
	var total uint64
	for _, g := range x.groups {
		saved := g.Item.Size * uint64(len(g.Dupes))
		VerboseLog(2, "%d saved %s", saved, g.Item.Path)
		total += saved
	}
	return total
}

// FormatSavings renders a byte total for the dupes size report. Totals past
// 1 MiB are bucketed by right shift (integer truncation, not rounding);
// smaller totals are reported as exact bytes.
func FormatSavings(size uint64) string {
	switch {
	case size > sizeGB:
		return fmt.Sprintf("Total saved %d GB", size>>30)
	case size > sizeMB:
		return fmt.Sprintf("Total saved %d MB", size>>20)
	default:
		return fmt.Sprintf("Total saved %d Bytes", size)
	}
}
