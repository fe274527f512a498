package server

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/licethq/licet/pkg/safeio"
)

// maxArchiveEntryBytes caps a single decompressed entry so a crafted
// archive cannot exhaust disk space.
const maxArchiveEntryBytes = 64 << 20

// stageArchive extracts an uploaded zip archive into the staging
// directory. Entry paths are containment-checked so archive members
// cannot escape the staging tree.
func (s *Server) stageArchive(file *multipart.FileHeader, staging string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = src.Close() }()

	reader, err := zip.NewReader(src, file.Size)
	if err != nil {
		return errors.New("invalid zip archive")
	}

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if err := extractEntry(entry, staging); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, staging string) error {
	rel, err := safeio.CleanUserPath(entry.Name)
	if err != nil {
		return fmt.Errorf("archive entry %s: %w", entry.Name, err)
	}
	dest := filepath.Join(staging, filepath.FromSlash(rel))

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("read archive entry %s: %w", entry.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, maxArchiveEntryBytes))
	if err != nil {
		return fmt.Errorf("read archive entry %s: %w", entry.Name, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("stage archive entry %s: %w", entry.Name, err)
	}
	return safeio.WriteFileContained(staging, dest, data)
}
