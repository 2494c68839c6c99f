package exporter

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	apperrors "github.com/DaSilvaRemi/tooncsv/internal/errors"
)

// archiveEntry pairs a slash-separated relative path with its file payload
type archiveEntry struct {
	RelPath string
	Content string
}

// packArchive bundles the emitted files into a ZIP archive at archivePath.
// Entry names keep their '/' separators regardless of the host platform.
// The archive is built in a temp file beside the destination and renamed
// into place once fully flushed, so a partially written bundle never lands
// at the configured path.
func (w *TreeWriter) packArchive(archivePath string, entries []archiveEntry) error {
	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return apperrors.NewConfigError("failed to create archive directory", err).
			WithContext("archive_path", archivePath)
	}

	tmpPath := archivePath + ".tmp-" + uuid.NewString()
	file, err := os.Create(tmpPath)
	if err != nil {
		return apperrors.NewStorageError("failed to create archive", err).
			WithContext("archive_path", archivePath)
	}

	if err := w.writeArchive(file, entries); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return apperrors.NewStorageError("failed to write archive", err).
			WithContext("archive_path", archivePath)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStorageError("failed to close archive", err).
			WithContext("archive_path", archivePath)
	}

	if err := os.Rename(tmpPath, archivePath); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStorageError("failed to publish archive", err).
			WithContext("archive_path", archivePath)
	}

	w.logger.Debug("Packed archive",
		slog.String("archive_path", archivePath),
		slog.Int("entry_count", len(entries)))

	return nil
}

// writeArchive streams every entry into the open archive file, sorted by
// relative path so the bundle layout is deterministic.
func (w *TreeWriter) writeArchive(dst io.Writer, entries []archiveEntry) error {
	sorted := make([]archiveEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RelPath < sorted[j].RelPath
	})

	zw := zip.NewWriter(dst)

	for _, entry := range sorted {
		header := &zip.FileHeader{
			Name:   entry.RelPath,
			Method: zip.Deflate,
		}
		writer, err := zw.CreateHeader(header)
		if err != nil {
			zw.Close()
			return err
		}
		if w.opts.BOMPrefix {
			if _, err := writer.Write(utf8BOM); err != nil {
				zw.Close()
				return err
			}
		}
		if _, err := io.WriteString(writer, entry.Content); err != nil {
			zw.Close()
			return err
		}
	}

	return zw.Close()
}
