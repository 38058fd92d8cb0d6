package dupescan

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// DigestFile computes the BLAKE2b-256 digest and size of the file at path,
// streaming its contents in DigestChunkSize chunks.
//
// With fast set and a file larger than one chunk, only the first chunk and
// the trailing chunk-minus-one bytes are hashed; the middle of the file is
// skipped entirely. Files no larger than one chunk digest identically in
// both modes.
func DigestFile(path string, fast bool) (FileRecord, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return FileRecord{}, &NotAFileError{Path: path}
	}
	size := uint64(info.Size())

	VerboseLog(2, "[DGST] %s", path)
	f, err := os.Open(path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	adviseSequential(f)

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return FileRecord{}, fmt.Errorf("failed to create digest state: %w", err)
	}

	buf := make([]byte, DigestChunkSize)
	var num uint64
	for num < size {
		n, err := f.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
			num += uint64(n)
		}
		if err == io.EOF {
			// The file shrank under us; digest what was read.
			break
		}
		if err != nil {
			return FileRecord{}, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if fast && num < size && size > DigestChunkSize {
			pos, err := f.Seek(int64(size)-(DigestChunkSize-1), io.SeekStart)
			if err != nil {
				return FileRecord{}, fmt.Errorf("failed to seek in %s: %w", path, err)
			}
			num = uint64(pos)
		}
	}

	return FileRecord{
		Digest: hex.EncodeToString(hasher.Sum(nil)),
		Path:   path,
		Size:   size,
	}, nil
}
