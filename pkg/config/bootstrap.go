package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BootstrapFileName is the file LoadBootstrapConfig reads from the config directory.
const BootstrapFileName = "simconv_config.yaml"

// Output formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// BootstrapConfig holds the settings loaded from simconv_config.yaml
type BootstrapConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings from bootstrap
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogPath string `yaml:"log_path,omitempty"`
}

// OutputConfig controls how conversion results are written
type OutputConfig struct {
	Format string `yaml:"format"`
}

// DefaultBootstrapConfig is used when no config directory is given.
func DefaultBootstrapConfig() *BootstrapConfig {
	return &BootstrapConfig{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Format: FormatYAML},
	}
}

// LoadBootstrapConfig loads the bootstrap configuration from simconv_config.yaml
func LoadBootstrapConfig(configDir string) (*BootstrapConfig, error) {
	bootstrapConfigPath := filepath.Join(configDir, BootstrapFileName)

	data, err := os.ReadFile(bootstrapConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error reading bootstrap config file '%s': %w", bootstrapConfigPath, err)
	}

	bootstrapCfg := DefaultBootstrapConfig()
	if err := yaml.Unmarshal(data, bootstrapCfg); err != nil {
		return nil, fmt.Errorf("error parsing bootstrap config file '%s': %w", bootstrapConfigPath, err)
	}

	if err := bootstrapCfg.Validate(); err != nil {
		return nil, err
	}

	return bootstrapCfg, nil
}

// Validate checks required fields and enumerated values.
func (c *BootstrapConfig) Validate() error {
	if c.Logging.Level == "" {
		return fmt.Errorf("missing required field in bootstrap config: logging.level")
	}
	if c.Output.Format == "" {
		return fmt.Errorf("missing required field in bootstrap config: output.format")
	}
	if c.Output.Format != FormatYAML && c.Output.Format != FormatJSON {
		return fmt.Errorf("invalid value in bootstrap config: output.format '%s' (expected %s or %s)",
			c.Output.Format, FormatYAML, FormatJSON)
	}
	return nil
}
