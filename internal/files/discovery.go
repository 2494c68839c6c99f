// Package files discovers CSV input files and loads them as named datasets.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides CSV file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindCSVFiles finds all .csv files under the specified directory,
// recursively, sorted by path.
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	var found []FileInfo
	err := filepath.WalkDir(fullPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return nil
		}
		found = append(found, FileInfo{
			Path:    path,
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", fullPath, err)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Path < found[j].Path
	})

	return found, nil
}

// LoadDatasets reads every .csv file under dir into a dataset map. Dataset
// names are derived from the file's path relative to dir: separators become
// dots and the .csv extension is dropped, so "reports/daily/prices.csv"
// loads as "reports.daily.prices". The inverse of the nested export layout.
func (d *Discovery) LoadDatasets(dir string) (map[string]string, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	csvFiles, err := d.FindCSVFiles(fullPath)
	if err != nil {
		return nil, err
	}

	datasets := make(map[string]string, len(csvFiles))
	for _, f := range csvFiles {
		rel, err := filepath.Rel(fullPath, f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to relativize %s: %w", f.Path, err)
		}

		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
		}

		datasets[DatasetName(rel)] = string(data)
	}

	return datasets, nil
}

// DatasetName converts a relative CSV file path to a dotted dataset name
func DatasetName(relPath string) string {
	name := filepath.ToSlash(relPath)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".csv") {
		name = name[:len(name)-len(ext)]
	}
	return strings.ReplaceAll(name, "/", ".")
}
