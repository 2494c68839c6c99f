package exporter

import (
	"path"
	"strings"
)

// csvExt is the suffix every emitted file carries.
const csvExt = ".csv"

// RelativePath derives the slash-separated relative output path for a
// dataset name.
//
// Flat layout sanitizes the entire name as one token, dots included, so
// "parent.child" becomes "parent.child.csv" directly under the root.
// Nested layout splits on '.' and turns each segment into a directory
// level, so "parent.child" becomes "parent/child.csv". Empty segments
// (from consecutive, leading or trailing dots) are skipped, as is any
// segment that would resolve to "..".
func RelativePath(name string, flat bool) string {
	if flat {
		return SanitizeName(name) + csvExt
	}

	segments := strings.Split(name, ".")
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if s := sanitizeSegment(segment); s != "" {
			parts = append(parts, s)
		}
	}

	if len(parts) == 0 {
		// Name sanitized away entirely; degenerates to a bare .csv file
		// at the output root.
		return csvExt
	}

	parts[len(parts)-1] += csvExt
	return path.Join(parts...)
}
