package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/DaSilvaRemi/tooncsv/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ExportConfig contains CSV export configuration
type ExportConfig struct {
	OutDir      string `yaml:"out_dir" envconfig:"OUT_DIR" default:"data/exports" validate:"required"`
	ArchivePath string `yaml:"archive_path" envconfig:"ARCHIVE_PATH" default:"data/archives/exports.zip" validate:"required"`
	Layout      string `yaml:"layout" envconfig:"LAYOUT" default:"nested" validate:"oneof=flat nested"`
	IncludeBOM  bool   `yaml:"include_bom" envconfig:"INCLUDE_BOM" default:"false"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/tooncsv.log"`
}

// Flat reports whether the configured layout is the flat one
func (c ExportConfig) Flat() bool {
	return c.Layout == "flat"
}

// Load loads configuration from environment variables and config file.
// Environment variables (TOONCSV_ prefix) take precedence over the file.
func Load() (*Config, error) {
	return LoadFromFile(getConfigFilePath())
}

// LoadFromFile loads configuration from the given YAML file, then applies
// environment overrides and validates the result.
func LoadFromFile(configFile string) (*Config, error) {
	var cfg Config

	// Defaults and environment first so a missing file still yields a
	// complete config
	if err := envconfig.Process("TOONCSV", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileCfg, cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against the struct validation rules
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return apperrors.NewValidationError("invalid configuration", err)
	}
	return nil
}

// loadFromFile reads a YAML config file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence,
// file values beat the struct defaults)
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	if fileConfig.Export.OutDir != "" && !envSet("TOONCSV_EXPORT_OUT_DIR") {
		merged.Export.OutDir = fileConfig.Export.OutDir
	}
	if fileConfig.Export.ArchivePath != "" && !envSet("TOONCSV_EXPORT_ARCHIVE_PATH") {
		merged.Export.ArchivePath = fileConfig.Export.ArchivePath
	}
	if fileConfig.Export.Layout != "" && !envSet("TOONCSV_EXPORT_LAYOUT") {
		merged.Export.Layout = fileConfig.Export.Layout
	}
	if fileConfig.Export.IncludeBOM && !envSet("TOONCSV_EXPORT_INCLUDE_BOM") {
		merged.Export.IncludeBOM = true
	}

	if fileConfig.Logging.Level != "" && !envSet("TOONCSV_LOGGING_LEVEL") {
		merged.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" && !envSet("TOONCSV_LOGGING_FORMAT") {
		merged.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Logging.Output != "" && !envSet("TOONCSV_LOGGING_OUTPUT") {
		merged.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && !envSet("TOONCSV_LOGGING_FILE_PATH") {
		merged.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return merged
}

// envSet reports whether an environment override is present
func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// getConfigFilePath returns the default config file location: tooncsv.yml
// next to the executable, falling back to the working directory.
func getConfigFilePath() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "tooncsv.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "tooncsv.yml"
}
