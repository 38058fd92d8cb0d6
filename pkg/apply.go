package dupescan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyDupes copies every duplicate file in the index into destDir, naming
// each copy after its group digest and keeping the duplicate's extension.
// One "cp src dst" line is written to logW per file. With dryRun set only
// the log lines are produced. Duplicate paths that no longer resolve to a
// regular file are skipped.
func (x *Index) CopyDupes(destDir string, logW io.Writer, dryRun bool) error {
	for digest, g := range x.groups {
		for _, d := range g.Dupes {
			info, err := os.Stat(d)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			dest := filepath.Join(destDir, digest)
			if ext := filepath.Ext(d); ext != "" {
				dest += ext
			}
			if _, err := fmt.Fprintf(logW, "cp %s %s\n", d, dest); err != nil {
				return fmt.Errorf("failed to write copy log: %w", err)
			}
			if dryRun {
				continue
			}
			if err := copyFile(d, dest); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteDupes removes every duplicate file in the index, writing one
// "rm path" line to logW per file. With dryRun set only the log lines are
// produced.
func (x *Index) DeleteDupes(logW io.Writer, dryRun bool) error {
	for _, g := range x.groups {
		for _, d := range g.Dupes {
			info, err := os.Stat(d)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			if _, err := fmt.Fprintf(logW, "rm %s\n", d); err != nil {
				return fmt.Errorf("failed to write delete log: %w", err)
			}
			if dryRun {
				continue
			}
			if err := os.Remove(d); err != nil {
				return fmt.Errorf("failed to delete %s: %w", d, err)
			}
		}
	}
	return nil
}

// copyFile copies src to dst in one pass, truncating any existing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return nil
}
