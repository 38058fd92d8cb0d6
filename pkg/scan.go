package dupescan

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// taskKind discriminates scan work queue entries.
type taskKind int

const (
	taskScanDir taskKind = iota
	taskDigestFile
)

// scanTask is one unit of breadth-first traversal work. Tasks exist only
// for the duration of a single Build call.
type scanTask struct {
	kind taskKind
	path string
}

// ScanList is the ordered result of one tree scan. It may contain several
// records with the same digest; merging happens later in the index builder.
// Ordering is stable within a single scan only.
type ScanList struct {
	Items []FileRecord
}

// ScanListBuilder configures a breadth-first tree scan. The builder is
// immutable: each method returns an updated copy, and Build is the terminal
// step.
type ScanListBuilder struct {
	root    string
	fast    bool
	maxSize uint64
	exclude []string
}

// NewScanListBuilder returns a builder for scanning the tree rooted at
// root. An empty root means the current working directory. The default size
// bound is unlimited.
func NewScanListBuilder(root string) ScanListBuilder {
	return ScanListBuilder{root: root, maxSize: math.MaxUint64}
}

// Fast selects fast (head+tail) digesting for scanned files.
func (b ScanListBuilder) Fast(fast bool) ScanListBuilder {
	b.fast = fast
	return b
}

// MaxSize skips files larger than max bytes. Files at exactly max are still
// digested.
func (b ScanListBuilder) MaxSize(max uint64) ScanListBuilder {
	b.maxSize = max
	return b
}

// Exclude adds doublestar glob patterns; matching files and directories are
// skipped.
func (b ScanListBuilder) Exclude(patterns ...string) ScanListBuilder {
	b.exclude = append(b.exclude[:len(b.exclude):len(b.exclude)], patterns...)
	return b
}

// Build walks the tree and digests every eligible file, aborting on the
// first error. Traversal is breadth-first; the per-directory order follows
// the underlying directory listing.
func (b ScanListBuilder) Build() (*ScanList, error) {
	root, err := Dir(b.root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, &NotADirError{Path: root}
	}

	matcher, err := NewIgnoreMatcher(root, b.exclude)
	if err != nil {
		return nil, err
	}

	queue := []scanTask{{kind: taskScanDir, path: root}}
	list := &ScanList{}
	for len(queue) > 0 {
		task := queue[0]
		queue = queue[1:]

		switch task.kind {
		case taskScanDir:
			VerboseLog(2, "[SCAN] %s", task.path)
			entries, err := os.ReadDir(task.path)
			if err != nil {
				return nil, fmt.Errorf("failed to list directory %s: %w", task.path, err)
			}
			for _, entry := range entries {
				path := filepath.Join(task.path, entry.Name())
				if entry.IsDir() {
					if matcher.Ignored(path, true) {
						continue
					}
					queue = append(queue, scanTask{kind: taskScanDir, path: path})
					continue
				}
				if !entry.Type().IsRegular() {
					continue
				}
				if matcher.Ignored(path, false) {
					continue
				}

				// A failed metadata read counts as size 0; the file stays
				// eligible and the digester surfaces any real error.
				var size uint64
				if info, err := entry.Info(); err == nil {
					size = uint64(info.Size())
				}
				if size <= b.maxSize {
					queue = append(queue, scanTask{kind: taskDigestFile, path: path})
				}
			}

		case taskDigestFile:
			rec, err := DigestFile(task.path, b.fast)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, rec)
		}
	}

	return list, nil
}
