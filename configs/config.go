package configs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/single-pyo3/single-pyo3/compilation"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFileName is the project config file looked up in the working directory when none is given.
const DefaultConfigFileName = "single-pyo3.json"

// ProjectConfig describes every option of a build.
type ProjectConfig struct {
	// Compilation describes the configuration used to build the module.
	Compilation *compilation.CompilationConfig `json:"compilation" yaml:"compilation"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// LoggingConfig describes the configuration options for logging.
type LoggingConfig struct {
	// Level is the minimum severity of emitted logs, e.g. "debug" or "info".
	Level string `json:"level" yaml:"level"`

	// LogDirectory describes the directory where structured log files will be written. If the string is empty, then
	// no log files are kept.
	LogDirectory string `json:"logDirectory" yaml:"logDirectory"`

	// NoColor disables colorized console output.
	NoColor bool `json:"noColor" yaml:"noColor"`
}

// isYAML returns whether path should be parsed as YAML rather than JSON.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ReadProjectConfigFromFile reads a ProjectConfig from a provided file path. Files ending in .yaml or .yml are parsed
// as YAML, anything else as JSON. Options missing from the file keep their default values.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration on top of the defaults
	projectConfig := GetDefaultProjectConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(b, projectConfig)
	} else {
		err = json.Unmarshal(b, projectConfig)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse project config '%s'", path)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in the format matching its extension.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	var (
		b   []byte
		err error
	)
	if isYAML(path) {
		b, err = yaml.Marshal(p)
	} else {
		b, err = json.MarshalIndent(p, "", "\t")
	}
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// LogLevel parses the configured log level. An empty level means the default info level.
func (p *ProjectConfig) LogLevel() (zerolog.Level, error) {
	if p.Logging.Level == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(p.Logging.Level)
	if err != nil {
		return zerolog.NoLevel, errors.Errorf("invalid log level '%s'", p.Logging.Level)
	}
	return level, nil
}

// Validate returns an error if the ProjectConfig cannot be used for a build.
func (p *ProjectConfig) Validate() error {
	if p.Compilation == nil {
		return errors.Errorf("compilation config must be provided")
	}
	if err := p.Compilation.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if _, err := p.LogLevel(); err != nil {
		return err
	}
	return nil
}
