// Package config provides configuration management for the layerlint CLI.
//
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	Architecture string      `koanf:"architecture"`
	ModelsDir    string      `koanf:"models_dir"`
	SchemaGlobs  []string    `koanf:"schema_globs"`
	Exclude      []string    `koanf:"exclude"`
	StatePath    string      `koanf:"state_path"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Lint         *LintConfig `koanf:"lint"`

	// ProjectRoot is inferred, not read from the file.
	ProjectRoot string `koanf:"-"`
}

// LintConfig holds rule configuration from the project file.
type LintConfig struct {
	Disabled    []string                  `koanf:"disabled"`
	Severity    map[string]string         `koanf:"severity"`
	Rules       map[string]map[string]any `koanf:"rules"`
	KeyStyle    string                    `koanf:"key_style"`
	Parallelism int                       `koanf:"parallelism"`
	FirstOnly   bool                      `koanf:"first_only"`
}

// Default configuration values.
const (
	DefaultArchitecture = "medallion"
	DefaultModelsDir    = "models"
	DefaultStateFile    = ".layerlint/state.db"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// DefaultSchemaGlobs are the schema file patterns searched for column
// definitions when the config file does not set schema_globs.
func DefaultSchemaGlobs() []string {
	return []string{"models/**/*.yml", "models/**/*.yaml"}
}
