package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ExportsDir    string
	ArchivesDir   string
	LogsDir       string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are relative to the executable directory, never the working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return GetPathsForBase(filepath.Dir(exe)), nil
}

// GetPathsForBase builds the path set under an explicit base directory.
// Directory structure:
//
//	base/
//	  ├── data/
//	  │   ├── exports/   (CSV output trees)
//	  │   └── archives/  (ZIP bundles)
//	  └── logs/
func GetPathsForBase(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		ExportsDir:    filepath.Join(dataDir, "exports"),
		ArchivesDir:   filepath.Join(dataDir, "archives"),
		LogsDir:       filepath.Join(baseDir, "logs"),
	}
}

// EnsureDirectories creates all base directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ExportsDir,
		p.ArchivesDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetExportPath returns the full path for a file under the exports directory
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetArchivePath returns the full path for a file under the archives directory
func (p *Paths) GetArchivePath(filename string) string {
	return filepath.Join(p.ArchivesDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
