package dupescan

// DigestChunkSize is the read granularity for streaming digests. Fast mode
// hashes at most one chunk from the head and one from the tail of a file.
const DigestChunkSize = 1 << 20

// DigestSize is the BLAKE2b digest length in bytes.
const DigestSize = 32

// DupeMarker is the token in the digest column of a persisted index that
// marks a duplicate continuation line.
const DupeMarker = "-"

// IgnoreFileName is the per-tree ignore file consulted by scans.
const IgnoreFileName = ".dupesignore"

// Size bucket thresholds for FormatSavings.
const (
	sizeKB = uint64(1) << 10
	sizeMB = uint64(1) << 20
	sizeGB = uint64(1) << 30
)

// maxWritevIovecs bounds the iovec count per writev call. 1024 is the
// conservative IOV_MAX floor across supported platforms.
const maxWritevIovecs = 1024
