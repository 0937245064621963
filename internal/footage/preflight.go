//go:build unix

package footage

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CheckDiskSpace verifies that dir has at least needBytes available before
// a download starts. A full game of footage runs to a couple of gigabytes;
// failing early beats a truncated file that looks complete.
func CheckDiskSpace(dir string, needBytes uint64) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return fmt.Errorf("statfs %q: %w", dir, err)
	}
	available := stat.Bavail * uint64(stat.Bsize)
	if available < needBytes {
		return fmt.Errorf("insufficient disk space in %q: %d bytes available, %d required", dir, available, needBytes)
	}
	return nil
}
