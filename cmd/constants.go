package cmd

import "github.com/single-pyo3/single-pyo3/configs"

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = configs.DefaultConfigFileName

// DefaultCompilationPlatform describes the default compilation platform to use if one is not provided
const DefaultCompilationPlatform = "cargo"

// ConfigFlagDescription describes the --config flag shared by commands that read a project config.
const ConfigFlagDescription = "path to a JSON or YAML config file (default is " + DefaultProjectConfigFilename + " in the working directory, if present)"
