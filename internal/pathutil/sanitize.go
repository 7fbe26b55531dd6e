package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SanitizeOutputPath cleans an output file path and returns it in absolute
// form. The path must name a regular file or a new file in an existing
// directory; symlinks and directories are rejected.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("pathutil: empty output path")
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		dir, derr := os.Stat(filepath.Dir(abs))
		if derr != nil {
			return "", fmt.Errorf("pathutil: output directory: %w", derr)
		}
		if !dir.IsDir() {
			return "", fmt.Errorf("pathutil: %s is not a directory", filepath.Dir(abs))
		}
	case err != nil:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	case info.Mode()&fs.ModeSymlink != 0:
		return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
	case info.IsDir():
		return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
	}
	return abs, nil
}
