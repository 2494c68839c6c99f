// Package exporter writes named CSV datasets to disk and bundles them into
// a ZIP archive.
//
// This package contains three main components:
//
// Name sanitization and path resolution: dataset names are dot-delimited
// strings; in flat layout the whole name becomes one sanitized file stem,
// in nested layout each dot-separated segment becomes a directory level.
//
// TreeWriter: emits one .csv file per dataset under the output directory,
// optionally prefixed with a UTF-8 BOM for Excel compatibility, and packs
// the emitted set into a ZIP archive mirroring the on-disk layout.
//
// Example usage:
//
//	result, err := exporter.WriteCSVs(datasets, exporter.WriteOptions{
//		OutDir:      "data/exports",
//		ArchivePath: "data/archives/exports.zip",
//		Flat:        false,
//		BOMPrefix:   true,
//	})
package exporter
