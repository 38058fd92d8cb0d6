package dupescan

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// StdStream is the path value that selects the standard streams.
const StdStream = "-"

// OpenReader resolves path to a reader: "-" or an empty path selects
// stdin, anything else opens the named file. Paths ending in .gz are
// decompressed transparently.
func OpenReader(path string) (io.ReadCloser, error) {
	if path == "" || path == StdStream {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		return &gzipReadCloser{zr: zr, f: f}, nil
	}
	return f, nil
}

// OpenWriter resolves path to a writer: "-" or an empty path selects
// stdout, anything else creates the named file. Paths ending in .gz are
// compressed transparently.
func OpenWriter(path string) (io.WriteCloser, error) {
	if path == "" || path == StdStream {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".gz") {
		return &gzipWriteCloser{zw: gzip.NewWriter(f), f: f}, nil
	}
	return f, nil
}

// ReaderName returns a display name for OpenReader's resolution of path.
func ReaderName(path string) string {
	if path == "" || path == StdStream {
		return "stdin"
	}
	return path
}

// WriterName returns a display name for OpenWriter's resolution of path.
func WriterName(path string) string {
	if path == "" || path == StdStream {
		return "stdout"
	}
	return path
}

// Dir returns path, defaulting to the current working directory when empty.
func Dir(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	return path, nil
}

// DirName returns a display name for Dir's resolution of path.
func DirName(path string) string {
	if path == "" {
		return "pwd"
	}
	return path
}

// nopWriteCloser keeps Close from reaching the standard streams.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// gzipReadCloser closes both the gzip stream and the underlying file.
type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReadCloser) Close() error {
	if err := g.zr.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}

// gzipWriteCloser flushes the gzip stream before closing the file.
type gzipWriteCloser struct {
	zw *gzip.Writer
	f  *os.File
}

func (g *gzipWriteCloser) Write(p []byte) (int, error) { return g.zw.Write(p) }

func (g *gzipWriteCloser) Close() error {
	if err := g.zw.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}
