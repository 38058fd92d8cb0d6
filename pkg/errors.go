package dupescan

import "fmt"

// NotAFileError reports a path that does not resolve to a regular file.
type NotAFileError struct {
	Path string
}

func (e *NotAFileError) Error() string {
	return fmt.Sprintf("not a file path: %s", e.Path)
}

// NotADirError reports a path that does not resolve to a directory.
type NotADirError struct {
	Path string
}

func (e *NotADirError) Error() string {
	return fmt.Sprintf("not a directory path: %s", e.Path)
}

// FormatError reports a malformed line in a persisted index. Line is
// 1-based.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid file format: %s on line %d", e.Reason, e.Line)
}
