package hashutil

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
)

// Checksum returns the SHA256 checksum of data in "sha256:<hex>" form
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// PathKey returns a stable file-name-safe key for a path.
// Paths that clean to the same string share a key.
func PathKey(path string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(path)))
	return fmt.Sprintf("%x", sum)
}
