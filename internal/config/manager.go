package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"toolwizard-cli/internal/interfaces"
)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("TOOLWIZARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// SetConfigPath sets the configuration file path
func (m *Manager) SetConfigPath(path string) {
	if path != "" {
		m.v.SetConfigFile(expandPath(path))
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("output_path", interfaces.DefaultOutputPath)
	v.SetDefault("input_extension", interfaces.DefaultInputExtension)
	v.SetDefault("templates_location", "")
	v.SetDefault("copy_path", false)
	v.SetDefault("max_attempts", 0)
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		// Use default config path
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".config", "toolwizard", "config.toml")
	}

	path = expandPath(path)

	// Missing config file is not an error; the defaults stand in
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()

	// Apply flag overrides (highest precedence)
	m.applyFlagOverrides(config)

	return config, nil
}

// applyFlagOverrides applies flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	if val, exists := m.flags["output_path"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.OutputPath = expandPath(str)
		}
	}

	if val, exists := m.flags["input_extension"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.InputExtension = str
		}
	}

	if val, exists := m.flags["templates_location"]; exists && val != nil {
		if str, ok := val.(string); ok && str != "" {
			config.TemplatesLocation = expandPath(str)
		}
	}

	if val, exists := m.flags["copy_path"]; exists && val != nil {
		if b, ok := val.(bool); ok {
			config.CopyPath = b
		}
	}

	if val, exists := m.flags["max_attempts"]; exists && val != nil {
		if n, ok := val.(int); ok && n > 0 {
			config.MaxAttempts = n
		}
	}
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if strings.TrimSpace(config.OutputPath) == "" {
		return fmt.Errorf("output_path cannot be empty")
	}

	// The extension must name an actual suffix, dot included
	if !strings.HasPrefix(config.InputExtension, ".") || len(config.InputExtension) < 2 {
		return fmt.Errorf("invalid input_extension: %q (must start with '.' and name a suffix)", config.InputExtension)
	}

	if config.MaxAttempts < 0 {
		return fmt.Errorf("invalid max_attempts: %d (must be zero or positive)", config.MaxAttempts)
	}

	// An override directory must already exist; the bundled templates
	// cover the unset case
	if config.TemplatesLocation != "" {
		expandedPath := expandPath(config.TemplatesLocation)
		info, err := os.Stat(expandedPath)
		if os.IsNotExist(err) {
			return fmt.Errorf("templates_location does not exist: %s", expandedPath)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("templates_location is not a directory: %s", expandedPath)
		}
	}

	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		OutputPath:        expandPath(m.v.GetString("output_path")),
		InputExtension:    m.v.GetString("input_extension"),
		TemplatesLocation: expandPath(m.v.GetString("templates_location")),
		CopyPath:          m.v.GetBool("copy_path"),
		MaxAttempts:       m.v.GetInt("max_attempts"),
	}
}

// MergeConfig merges another configuration into this manager
func (m *Manager) MergeConfig(other *interfaces.Config) {
	if other == nil {
		return
	}

	if other.OutputPath != "" {
		m.v.Set("output_path", other.OutputPath)
	}
	if other.InputExtension != "" {
		m.v.Set("input_extension", other.InputExtension)
	}
	if other.TemplatesLocation != "" {
		m.v.Set("templates_location", other.TemplatesLocation)
	}
	if other.CopyPath {
		m.v.Set("copy_path", other.CopyPath)
	}
	if other.MaxAttempts > 0 {
		m.v.Set("max_attempts", other.MaxAttempts)
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
