package validation

import (
	"fmt"
	"os"
	"path/filepath"
)

// PrepareDataPath checks a data file path (bookmark database, log file)
// and creates its parent directory.
func PrepareDataPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > 4096 {
		return "", fmt.Errorf("path too long (max 4096 characters)")
	}
	for _, char := range path {
		if char < 32 {
			return "", fmt.Errorf("path contains control characters")
		}
	}

	clean := filepath.Clean(path)
	if info, err := os.Stat(clean); err == nil && info.IsDir() {
		return "", fmt.Errorf("path %s is a directory", clean)
	}

	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", clean, err)
	}
	return clean, nil
}
