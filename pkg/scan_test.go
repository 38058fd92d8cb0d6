package dupescan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// scanPaths collects the scanned paths in order.
func scanPaths(list *ScanList) []string {
	paths := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		paths = append(paths, item.Path)
	}
	return paths
}

func TestScanListBuilder_WalksTreeBreadthFirst(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a", []byte("alpha"))
	writeTempFile(t, dir, "b", []byte("beta"))
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	writeTempFile(t, filepath.Join(dir, "sub"), "c", []byte("gamma"))

	list, err := NewScanListBuilder(dir).Build()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a"),
		filepath.Join(dir, "b"),
		filepath.Join(dir, "sub", "c"),
	}
	got := scanPaths(list)
	if len(got) != len(want) {
		t.Fatalf("scanned %d files, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %s, want %s", i, got[i], want[i])
		}
	}
	for _, item := range list.Items {
		if len(item.Digest) != DigestSize*2 {
			t.Errorf("%s: digest length = %d, want %d", item.Path, len(item.Digest), DigestSize*2)
		}
	}
}

func TestScanListBuilder_MaxSizeIsInclusive(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "small", []byte("abc"))
	writeTempFile(t, dir, "large", []byte("abcdefghij"))

	list, err := NewScanListBuilder(dir).MaxSize(3).Build()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	got := scanPaths(list)
	if len(got) != 1 || got[0] != filepath.Join(dir, "small") {
		t.Errorf("scanned %v, want only the small file", got)
	}
}

func TestScanListBuilder_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "keep.go", []byte("keep"))
	writeTempFile(t, dir, "noise.log", []byte("noise"))
	if err := os.Mkdir(filepath.Join(dir, "skip"), 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	writeTempFile(t, filepath.Join(dir, "skip"), "inner", []byte("inner"))

	list, err := NewScanListBuilder(dir).
		Exclude("**/*.log").
		Exclude("skip").
		Build()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	got := scanPaths(list)
	if len(got) != 1 || got[0] != filepath.Join(dir, "keep.go") {
		t.Errorf("scanned %v, want only keep.go", got)
	}
}

func TestScanListBuilder_InvalidExcludePattern(t *testing.T) {
	if _, err := NewScanListBuilder(t.TempDir()).Exclude("[").Build(); err == nil {
		t.Fatal("expected error for invalid exclude pattern")
	}
}

func TestScanListBuilder_IgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, IgnoreFileName, []byte("*.bin\n"))
	writeTempFile(t, dir, "data.bin", []byte("binary"))
	writeTempFile(t, dir, "notes.txt", []byte("text"))

	list, err := NewScanListBuilder(dir).Build()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, p := range scanPaths(list) {
		seen[filepath.Base(p)] = true
	}
	if seen["data.bin"] {
		t.Error("data.bin scanned despite ignore rule")
	}
	if !seen["notes.txt"] {
		t.Error("notes.txt missing from scan")
	}
	if !seen[IgnoreFileName] {
		t.Errorf("%s itself missing from scan", IgnoreFileName)
	}
}

func TestScanListBuilder_RootNotADir(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "plain", []byte("x"))

	_, err := NewScanListBuilder(path).Build()
	var notADir *NotADirError
	if !errors.As(err, &notADir) {
		t.Fatalf("expected NotADirError, got %v", err)
	}
	if notADir.Path != path {
		t.Errorf("error path = %s, want %s", notADir.Path, path)
	}
}

func TestScanListBuilder_MissingRoot(t *testing.T) {
	if _, err := NewScanListBuilder(filepath.Join(t.TempDir(), "gone")).Build(); err == nil {
		t.Fatal("expected error for missing scan root")
	}
}

func TestScanListBuilder_BuilderIsImmutable(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "small", []byte("ab"))
	writeTempFile(t, dir, "large", []byte("abcdefgh"))

	base := NewScanListBuilder(dir)
	bounded := base.MaxSize(2)

	all, err := base.Build()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	some, err := bounded.Build()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if len(all.Items) != 2 {
		t.Errorf("base builder scanned %d files, want 2", len(all.Items))
	}
	if len(some.Items) != 1 {
		t.Errorf("bounded builder scanned %d files, want 1", len(some.Items))
	}
}
