// Package config provides configuration loading and path resolution for
// tooncsv.
//
// Configuration is loaded from an optional tooncsv.yml file next to the
// executable and overridden by TOONCSV_-prefixed environment variables.
// The Paths type is the single source of truth for where exports, archives
// and logs live on disk.
package config
