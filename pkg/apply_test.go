package dupescan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// dupeFixture builds a tracked index whose primary and dupes are real files.
func dupeFixture(t *testing.T) (idx *Index, primary, dupe1, dupe2 string) {
	t.Helper()
	dir := t.TempDir()
	primary = writeTempFile(t, dir, "primary.txt", []byte("hello"))
	dupe1 = writeTempFile(t, dir, "copy1.txt", []byte("hello"))
	dupe2 = writeTempFile(t, dir, "copy2.dat", []byte("hello"))

	input := fmt.Sprintf("deadbeef 5 %s\n- %s\n- %s\n", primary, dupe1, dupe2)
	built, err := NewIndexBuilder().WithDupes(true).FromReader(strings.NewReader(input)).Build()
	if err != nil {
		t.Fatalf("index build failed: %v", err)
	}
	return built, primary, dupe1, dupe2
}

func TestIndex_CopyDupes(t *testing.T) {
	idx, _, dupe1, dupe2 := dupeFixture(t)
	dest := t.TempDir()

	var log bytes.Buffer
	if err := idx.CopyDupes(dest, &log, false); err != nil {
		t.Fatalf("CopyDupes failed: %v", err)
	}

	copy1 := filepath.Join(dest, "deadbeef.txt")
	copy2 := filepath.Join(dest, "deadbeef.dat")
	for _, p := range []string{copy1, copy2} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("copy missing: %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("%s content = %q, want hello", p, data)
		}
	}

	for _, line := range []string{
		fmt.Sprintf("cp %s %s\n", dupe1, copy1),
		fmt.Sprintf("cp %s %s\n", dupe2, copy2),
	} {
		if !strings.Contains(log.String(), line) {
			t.Errorf("log missing %q; got:\n%s", line, log.String())
		}
	}
}

func TestIndex_CopyDupesDryRun(t *testing.T) {
	idx, _, _, _ := dupeFixture(t)
	dest := t.TempDir()

	var log bytes.Buffer
	if err := idx.CopyDupes(dest, &log, true); err != nil {
		t.Fatalf("CopyDupes failed: %v", err)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("failed to list dest: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created %d files in dest", len(entries))
	}
	if got := strings.Count(log.String(), "cp "); got != 2 {
		t.Errorf("log has %d cp lines, want 2:\n%s", got, log.String())
	}
}

func TestIndex_DeleteDupes(t *testing.T) {
	idx, primary, dupe1, dupe2 := dupeFixture(t)

	var log bytes.Buffer
	if err := idx.DeleteDupes(&log, false); err != nil {
		t.Fatalf("DeleteDupes failed: %v", err)
	}

	if _, err := os.Stat(primary); err != nil {
		t.Errorf("primary removed: %v", err)
	}
	for _, d := range []string{dupe1, dupe2} {
		if _, err := os.Stat(d); !os.IsNotExist(err) {
			t.Errorf("dupe %s still exists", d)
		}
		if !strings.Contains(log.String(), fmt.Sprintf("rm %s\n", d)) {
			t.Errorf("log missing rm line for %s:\n%s", d, log.String())
		}
	}
}

func TestIndex_DeleteDupesDryRun(t *testing.T) {
	idx, _, dupe1, dupe2 := dupeFixture(t)

	var log bytes.Buffer
	if err := idx.DeleteDupes(&log, true); err != nil {
		t.Fatalf("DeleteDupes failed: %v", err)
	}

	for _, d := range []string{dupe1, dupe2} {
		if _, err := os.Stat(d); err != nil {
			t.Errorf("dry run removed %s", d)
		}
	}
	if got := strings.Count(log.String(), "rm "); got != 2 {
		t.Errorf("log has %d rm lines, want 2:\n%s", got, log.String())
	}
}

func TestIndex_DeleteDupesSkipsMissing(t *testing.T) {
	idx, _, dupe1, dupe2 := dupeFixture(t)
	if err := os.Remove(dupe1); err != nil {
		t.Fatalf("failed to remove fixture dupe: %v", err)
	}

	var log bytes.Buffer
	if err := idx.DeleteDupes(&log, false); err != nil {
		t.Fatalf("DeleteDupes failed: %v", err)
	}

	if strings.Contains(log.String(), dupe1) {
		t.Errorf("log mentions the already-missing dupe:\n%s", log.String())
	}
	if _, err := os.Stat(dupe2); !os.IsNotExist(err) {
		t.Errorf("remaining dupe %s still exists", dupe2)
	}
}
