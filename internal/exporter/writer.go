package exporter

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/DaSilvaRemi/tooncsv/internal/errors"
)

// utf8BOM is the byte-order-mark prepended when BOMPrefix is enabled.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV tree writing behavior
type WriteOptions struct {
	// OutDir is the root directory the CSV tree is written under.
	// Created if absent, including intermediate directories.
	OutDir string `validate:"required"`
	// ArchivePath is the ZIP bundle destination. Overwritten if present.
	ArchivePath string `validate:"required"`
	// Flat keeps dotted names as single file stems instead of expanding
	// them into directories.
	Flat bool
	// BOMPrefix adds a UTF-8 BOM to every file for Excel compatibility.
	BOMPrefix bool
}

// WriteResult reports where a successful write landed
type WriteResult struct {
	OutDir      string
	ArchivePath string
}

// TreeWriter writes named CSV datasets as a file tree plus a ZIP bundle
type TreeWriter struct {
	opts     WriteOptions
	logger   *slog.Logger
	validate *validator.Validate
}

// NewTreeWriter creates a new tree writer instance
func NewTreeWriter(opts WriteOptions) *TreeWriter {
	return &TreeWriter{
		opts:     opts,
		logger:   slog.Default(),
		validate: validator.New(),
	}
}

// WithLogger replaces the writer's logger
func (w *TreeWriter) WithLogger(logger *slog.Logger) *TreeWriter {
	w.logger = logger
	return w
}

// WriteCSVs writes datasets with the given options and returns the
// resolved output locations. Convenience wrapper around TreeWriter.
func WriteCSVs(datasets map[string]string, opts WriteOptions) (*WriteResult, error) {
	return NewTreeWriter(opts).Write(datasets)
}

// Write emits one .csv file per dataset under OutDir, packs every emitted
// file into the ZIP archive at ArchivePath, and returns the resolved
// locations. An empty dataset map is valid and produces an existing empty
// directory and an existing empty archive.
//
// Files are written sequentially, one handle at a time. On failure the
// error surfaces immediately; files already flushed stay on disk.
func (w *TreeWriter) Write(datasets map[string]string) (*WriteResult, error) {
	if err := w.validate.Struct(w.opts); err != nil {
		return nil, apperrors.NewConfigError("invalid write options", err)
	}

	outDir, err := filepath.Abs(w.opts.OutDir)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve output directory", err)
	}
	archivePath, err := filepath.Abs(w.opts.ArchivePath)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve archive path", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create output directory", err).
			WithContext("out_dir", outDir)
	}

	// Deterministic order; on sanitization collisions the
	// lexicographically later name wins both on disk and in the archive.
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]archiveEntry, 0, len(names))
	seen := make(map[string]int, len(names))

	for _, name := range names {
		rel := RelativePath(name, w.opts.Flat)

		if err := w.emit(outDir, rel, datasets[name]); err != nil {
			return nil, err
		}

		w.logger.Info("Wrote CSV file",
			slog.String("dataset", name),
			slog.String("relative_path", rel))

		entry := archiveEntry{RelPath: rel, Content: datasets[name]}
		if i, ok := seen[rel]; ok {
			entries[i] = entry
			continue
		}
		seen[rel] = len(entries)
		entries = append(entries, entry)
	}

	if err := w.packArchive(archivePath, entries); err != nil {
		return nil, err
	}

	w.logger.Info("CSV export complete",
		slog.Int("dataset_count", len(datasets)),
		slog.String("out_dir", outDir),
		slog.String("archive_path", archivePath))

	return &WriteResult{OutDir: outDir, ArchivePath: archivePath}, nil
}

// emit writes one dataset's text to its resolved path under outDir.
// The relative path uses '/' separators; content bytes pass through
// untouched so line endings are preserved exactly.
func (w *TreeWriter) emit(outDir, rel, content string) error {
	fullPath := filepath.Join(outDir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", fullPath)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return apperrors.NewStorageError("failed to create file", err).
			WithContext("path", fullPath)
	}

	if w.opts.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return apperrors.NewStorageError("failed to write BOM", err).
				WithContext("path", fullPath)
		}
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return apperrors.NewStorageError("failed to write file", err).
			WithContext("path", fullPath)
	}

	if err := file.Close(); err != nil {
		return apperrors.NewStorageError("failed to close file", err).
			WithContext("path", fullPath)
	}

	return nil
}
