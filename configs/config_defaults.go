package configs

import (
	"github.com/rs/zerolog"
	"github.com/single-pyo3/single-pyo3/compilation"
)

// GetDefaultProjectConfig obtains a default configuration for a project.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Compilation: compilation.NewCompilationConfig(),
		Logging: LoggingConfig{
			Level:        zerolog.InfoLevel.String(),
			LogDirectory: "",
			NoColor:      false,
		},
	}
}
