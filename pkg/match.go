package dupescan

// MatchList appends every scanned record whose digest is already a key as a
// duplicate of that entry. Records with unknown digests are ignored. The
// scan is expected to have been bounded by Max() so oversized files were
// never digested.
func (x *Index) MatchList(list *ScanList) {
	for _, rec := range list.Items {
		if g, ok := x.groups[rec.Digest]; ok {
			g.Push(rec.Path)
		}
	}
}

// FindDupes cross-references a needle index (built without duplicate
// tracking) against a haystack index (built with it). For every digest
// present in both, the result gains a group whose primary is the needle's
// record and whose duplicates are the haystack's primary followed by the
// haystack's duplicates, excluding any path equal to the needle's primary.
// Digests present in only one index are ignored.
func FindDupes(needle, haystack *Index) *Index {
	result := newIndex()
	for digest, n := range needle.groups {
		h, ok := haystack.groups[digest]
		if !ok {
			continue
		}
		if n.Item.Path == h.Item.Path {
			continue
		}

		VerboseLog(2, "adding %s to %s", h.Item.Path, n.Item.Path)
		g := newGroup(n.Item)
		g.Push(h.Item.Path)
		for _, d := range h.Dupes {
			if d != n.Item.Path {
				g.Push(d)
			}
		}
		result.groups[digest] = g
	}
	return result
}
