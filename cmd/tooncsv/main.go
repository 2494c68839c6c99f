// Command tooncsv writes named CSV datasets to a file tree and bundles
// them into a ZIP archive.
//
// Datasets come either from a JSON manifest mapping dataset names to CSV
// text (-manifest) or from a directory scan that loads every .csv file
// found under -in (dataset names derived from the relative paths).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DaSilvaRemi/tooncsv/internal/config"
	apperrors "github.com/DaSilvaRemi/tooncsv/internal/errors"
	"github.com/DaSilvaRemi/tooncsv/internal/exporter"
	"github.com/DaSilvaRemi/tooncsv/internal/files"
	"github.com/DaSilvaRemi/tooncsv/internal/infrastructure"
)

func main() {
	manifest := flag.String("manifest", "", "JSON manifest file mapping dataset names to CSV text")
	inDir := flag.String("in", "", "directory of .csv input files to load as datasets")
	out := flag.String("out", "", "output directory for the CSV tree (defaults to config export.out_dir)")
	archive := flag.String("zip", "", "output ZIP archive path (defaults to config export.archive_path)")
	flat := flag.Bool("flat", false, "write all files into one directory instead of nesting by dot segments")
	bom := flag.Bool("bom", false, "prefix each file with a UTF-8 BOM for Excel compatibility")
	flag.Parse()

	// Initialize paths first so every relative location resolves against
	// the executable directory, never the working directory
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetRelativePath(cfg.Logging.FilePath)
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
	}
	logger := infrastructure.GetLogger()
	defer infrastructure.CloseLogFile()

	// Ensure all required directories exist before any work begins
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	opts := resolveOptions(cfg, paths, *out, *archive, *flat, *bom)

	datasets, err := loadDatasets(*manifest, *inDir)
	if err != nil {
		logger.Error("Failed to load datasets", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting CSV export",
		slog.Int("dataset_count", len(datasets)),
		slog.String("out_dir", opts.OutDir),
		slog.String("archive_path", opts.ArchivePath),
		slog.Bool("flat", opts.Flat),
		slog.Bool("bom", opts.BOMPrefix),
		slog.String("executable_dir", paths.ExecutableDir))

	result, err := exporter.NewTreeWriter(opts).WithLogger(logger).Write(datasets)
	if err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d dataset(s)\n", len(datasets))
	fmt.Printf("output directory: %s\n", result.OutDir)
	fmt.Printf("archive: %s\n", result.ArchivePath)
}

// resolveOptions merges config defaults with flag overrides and anchors
// relative locations at the executable directory
func resolveOptions(cfg *config.Config, paths *config.Paths, out, archive string, flat, bom bool) exporter.WriteOptions {
	opts := exporter.WriteOptions{
		OutDir:      cfg.Export.OutDir,
		ArchivePath: cfg.Export.ArchivePath,
		Flat:        cfg.Export.Flat() || flat,
		BOMPrefix:   cfg.Export.IncludeBOM || bom,
	}

	if out != "" {
		opts.OutDir = out
	}
	if archive != "" {
		opts.ArchivePath = archive
	}

	if !filepath.IsAbs(opts.OutDir) {
		opts.OutDir = paths.GetRelativePath(opts.OutDir)
	}
	if !filepath.IsAbs(opts.ArchivePath) {
		opts.ArchivePath = paths.GetRelativePath(opts.ArchivePath)
	}

	return opts
}

// loadDatasets builds the dataset map from a manifest file, a directory
// scan, or both. Manifest entries win on name collisions.
func loadDatasets(manifestPath, inDir string) (map[string]string, error) {
	if manifestPath == "" && inDir == "" {
		return nil, fmt.Errorf("either -manifest or -in is required")
	}

	datasets := make(map[string]string)

	if inDir != "" {
		scanned, err := files.NewDiscovery("").LoadDatasets(inDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load input directory: %w", err)
		}
		for name, content := range scanned {
			datasets[name] = content
		}
	}

	if manifestPath != "" {
		fromManifest, err := loadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		for name, content := range fromManifest {
			datasets[name] = content
		}
	}

	return datasets, nil
}

// loadManifest parses a JSON object of dataset name to CSV text
func loadManifest(path string) (map[string]string, error) {
	if !config.FileExists(path) {
		return nil, apperrors.NewNotFoundError("manifest file not found", nil).
			WithContext("path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read manifest", err).
			WithContext("path", path)
	}

	var datasets map[string]string
	if err := json.Unmarshal(data, &datasets); err != nil {
		return nil, apperrors.NewParsingError("failed to parse manifest", err).
			WithContext("path", path)
	}

	return datasets, nil
}
