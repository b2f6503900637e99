package fs

import (
	"fmt"
	"os"
)

// RequireDir checks that path is an existing directory. Nothing is created.
func RequireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", path)
	}
	return nil
}

// CheckNonEmptyFile returns the file info of path if it is a regular, non-empty file.
func CheckNonEmptyFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return info, nil
}
