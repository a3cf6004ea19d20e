// Package config provides configuration management for the leapmigrate CLI.
//
// Configuration is layered: built-in defaults, then leapmigrate.yaml, then
// LEAPMIGRATE_* environment variables, then explicitly set flags.
package config

import "github.com/leapstack-labs/leapmigrate/internal/migrate"

// Config holds all CLI configuration options.
type Config struct {
	OutputDir     string                   `koanf:"output_dir"`
	Verbose       bool                     `koanf:"verbose"`
	OutputFormat  string                   `koanf:"output"`
	WriteMappings bool                     `koanf:"write_mappings"`
	Batch         BatchConfig              `koanf:"batch"`
	Dialects      map[string]DialectConfig `koanf:"dialects"`
}

// BatchConfig configures directory conversion.
type BatchConfig struct {
	Concurrency int      `koanf:"concurrency"`
	Extensions  []string `koanf:"extensions"`
}

// DialectConfig overrides built-in dialect settings.
type DialectConfig struct {
	// TempDB is the placeholder naming the scratch database, e.g. "${STAGE_DB}".
	TempDB    string `koanf:"temp_db"`
	Extension string `koanf:"extension"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultConcurrency = migrate.DefaultConcurrency
	EnvPrefix          = "LEAPMIGRATE_"
)

// ConfigFileNames are looked up in the working directory when no config
// file is given.
var ConfigFileNames = []string{"leapmigrate.yaml", "leapmigrate.yml"}
