//go:build !unix

package footage

// CheckDiskSpace is a no-op on platforms without statfs.
func CheckDiskSpace(dir string, needBytes uint64) error {
	return nil
}
