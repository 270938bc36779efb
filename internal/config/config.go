// =============================================================================
// Cart Parser - Configuration Module
// =============================================================================
//
// This module loads the main application configuration (config.yaml).
// The cart schema itself is fixed and is not configurable; configuration only
// drives the batch commands (directories, report format, logging,
// concurrency).
//
// LOADING:
//   1. Start from DefaultConfig()
//   2. Overlay the YAML file
//   3. Fill any zero values with defaults
//   4. Validate struct tags and create the working directories
//
// =============================================================================

package config

import (
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Report formats written by the batch commands.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatXLSX = "xlsx"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for *.csv cart files.
	// Default: "./input"
	InputDir string `yaml:"input_dir" validate:"required"`

	// OutputDir receives cart reports, error logs and processing summaries.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" validate:"required"`

	// InputArchiveDir receives cart files after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" validate:"required"`

	// OutputArchiveDir receives a copy of every report.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir" validate:"required"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is appended to in addition to stderr. Empty disables it.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormat selects the report writer.
	// Valid values: "json", "xml", "xlsx"
	// Default: "json"
	OutputFormat string `yaml:"output_format" validate:"oneof=json xml xlsx"`

	// OutputNameFormat defines report file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {original}  - Input file name without extension
	// The extension of the output format is appended when missing.
	// Default: "{original}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format" validate:"required"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of carts processed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" validate:"gte=1,lte=256"`

	// ContinueOnError keeps scheduling carts after one fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	// ArchiveOnSuccess moves processed carts into InputArchiveDir.
	// Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success"`

	// DatedArchives files archived carts and reports under YYYY/MM/DD.
	// Default: false
	DatedArchives bool `yaml:"dated_archives"`

	// WatchDebounce delays processing after a file event in watch mode.
	// Default: 500ms
	WatchDebounce time.Duration `yaml:"watch_debounce" validate:"gte=0"`
}

// ShouldContinueOnError reports the effective ContinueOnError setting.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// ShouldArchive reports the effective ArchiveOnSuccess setting.
func (c *MainConfig) ShouldArchive() bool {
	return c.ArchiveOnSuccess == nil || *c.ArchiveOnSuccess
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}

	applyMainConfigDefaults(config)

	if err := validateMainConfig(config); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return config, nil
}

// LoadOrDefault loads configPath when it exists and falls back to
// DefaultConfig otherwise. Parse and validation errors are still returned.
func LoadOrDefault(configPath string) (*MainConfig, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadMainConfig(configPath)
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = FormatJSON
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_{uuid}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.WatchDebounce == 0 {
		config.WatchDebounce = 500 * time.Millisecond
	}
}

// validateMainConfig checks struct tags.
func validateMainConfig(config *MainConfig) error {
	return validator.New().Struct(config)
}

// EnsureDirectories creates every configured directory that does not exist.
func (c *MainConfig) EnsureDirectories() error {
	dirs := []string{
		c.InputDir,
		c.OutputDir,
		c.InputArchiveDir,
		c.OutputArchiveDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}

	return nil
}
