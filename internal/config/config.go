// Package config handles daetool configuration loading and management.
package config

import "fmt"

// Config holds all daetool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MeshConfig holds mesh building settings.
type MeshConfig struct {
	YUp         bool   `yaml:"y_up"`         // rotate X_UP/Z_UP models to +Y
	FlipV       bool   `yaml:"flip_v"`       // texture V becomes 1-V
	FlatNormals bool   `yaml:"flat_normals"` // ignore authored normals
	ColorGroup  string `yaml:"color_group"`  // vertex color channel, empty for the bound one
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "yaml"
}

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "warn",
		},
		Mesh: MeshConfig{
			YUp: true,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// Validate reports settings that have no meaning.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Output.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	return nil
}
