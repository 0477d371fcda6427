package interfaces

// Built-in fallbacks used when no configuration source supplies a value
const (
	DefaultOutputPath     = "./generated_tools"
	DefaultInputExtension = ".mat"
)

// Config represents the wizard settings
type Config struct {
	OutputPath        string `toml:"output_path"`
	InputExtension    string `toml:"input_extension"`
	TemplatesLocation string `toml:"templates_location"`
	CopyPath          bool   `toml:"copy_path"`
	MaxAttempts       int    `toml:"max_attempts"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}
