// Package safeio guards filesystem access driven by untrusted input:
// client-supplied filenames, archive entry names, and scan paths.
package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// CleanUserPath cleans a user-provided path and rejects traversal attempts.
// Returns paths with forward slashes for cross-platform consistency.
func CleanUserPath(p string) (string, error) {
	c := filepath.Clean(p)
	if strings.Contains(c, "..") {
		return "", errors.New("path traversal detected")
	}
	if filepath.IsAbs(c) {
		return "", errors.New("absolute path not allowed")
	}
	return filepath.ToSlash(c), nil
}

// ReadFileContained reads a file only if it is contained within baseDir.
// Returns an error if the file is outside baseDir or cannot be read.
func ReadFileContained(baseDir, filePath string) ([]byte, error) {
	abs, err := containedPath(baseDir, filePath)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- containment verified above
	return os.ReadFile(abs)
}

// WriteFileContained writes data only if the destination is contained
// within baseDir. Parent directories must already exist.
func WriteFileContained(baseDir, filePath string, data []byte) error {
	abs, err := containedPath(baseDir, filePath)
	if err != nil {
		return err
	}
	return os.WriteFile(abs, data, 0o600)
}

func containedPath(baseDir, filePath string) (string, error) {
	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errors.New("failed to resolve base directory")
	}
	fileAbs, err := filepath.Abs(filePath)
	if err != nil {
		return "", errors.New("failed to resolve file path")
	}

	rel, err := filepath.Rel(baseAbs, fileAbs)
	if err != nil {
		return "", errors.New("failed to compute relative path")
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New("file path is outside base directory")
	}
	return fileAbs, nil
}
