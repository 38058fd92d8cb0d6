package dupescan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/google/vectorio"
	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// sortedGroups returns the index's groups in ascending digest order. The
// ordering lives in a skiplist keyed on the primary digest; persisted
// output is emitted by walking it, which keeps serialization reproducible
// across runs regardless of map iteration order.
func (x *Index) sortedGroups() []*DuplicateGroup {
	sl := zcsl.MakeZeroCopySkiplist[DuplicateGroup, string, string](
		16,
		func(g *DuplicateGroup) string { return g.Item.Digest },
		func(g *DuplicateGroup) int { return g.encodedLen() },
		strings.Compare,
	)
	for _, g := range x.groups {
		sl.Insert(g, "index")
	}

	groups := make([]*DuplicateGroup, 0, len(x.groups))
	for node := sl.First(); node != nil; node = node.Next() {
		groups = append(groups, node.Item())
	}
	return groups
}

// WriteTo serializes the index in the line-oriented text format, one
// primary line per group followed by its continuation lines, groups sorted
// by digest. Implements io.WriterTo.
func (x *Index) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, g := range x.sortedGroups() {
		n, err := bw.WriteString(g.encode())
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write index: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return total, fmt.Errorf("failed to flush index: %w", err)
	}
	return total, nil
}

// WriteToFile writes the index to f with gathered writev calls, one iovec
// per line, chunked to stay under IOV_MAX. Output is byte-identical to
// WriteTo.
func (x *Index) WriteToFile(f *os.File) error {
	var lines [][]byte
	expected := 0
	for _, g := range x.sortedGroups() {
		for _, line := range strings.SplitAfter(g.encode(), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, []byte(line))
			expected += len(line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	iovecs := make([]syscall.Iovec, len(lines))
	for i, line := range lines {
		iovecs[i] = syscall.Iovec{Base: &line[0], Len: uint64(len(line))}
	}

	written := 0
	for off := 0; off < len(iovecs); off += maxWritevIovecs {
		end := off + maxWritevIovecs
		if end > len(iovecs) {
			end = len(iovecs)
		}
		nw, err := vectorio.WritevRaw(uintptr(f.Fd()), iovecs[off:end])
		if err != nil {
			return fmt.Errorf("failed to write index with vectorio: %w", err)
		}
		written += nw
	}
	if written != expected {
		return fmt.Errorf("index write incomplete: wrote %d bytes, expected %d", written, expected)
	}
	return nil
}
