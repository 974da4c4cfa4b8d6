package textutil

import (
	"os"
	"path/filepath"
)

// FindWDFile attempts to find a named file relative to the current working
// directory, checking every parent directory until one is found.
// It returns an absolute path, or an empty path if no such file exists.
func FindWDFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(wd, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", nil
		}
		wd = parent
	}
}
