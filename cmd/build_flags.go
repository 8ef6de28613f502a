package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/single-pyo3/single-pyo3/compilation"
	"github.com/single-pyo3/single-pyo3/compilation/project"
	"github.com/single-pyo3/single-pyo3/configs"
	"github.com/spf13/cobra"
)

// addBuildFlags adds the various flags for the build command
func addBuildFlags(cmd *cobra.Command) error {
	defaultConfig := configs.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	cmd.Flags().SortFlags = false

	// Config file
	cmd.Flags().String("config", "", ConfigFlagDescription)

	// Binding library
	cmd.Flags().String("pyo3", "",
		fmt.Sprintf("%s version requirement, or %q for the development branch (default is %q)",
			defaultConfig.Compilation.Binding.Crate, project.UpstreamMarker, defaultConfig.Compilation.Binding.Version))
	cmd.Flags().Bool("github", false,
		fmt.Sprintf("build against the %s development branch, same as --pyo3 %s", defaultConfig.Compilation.Binding.Crate, project.UpstreamMarker))

	// Toolchain
	cmd.Flags().String("platform", "",
		fmt.Sprintf("toolchain driver, one of %s (unless a config file is provided, default is %q)",
			strings.Join(compilation.GetSupportedCompilationPlatforms(), ", "), defaultConfig.Compilation.Platform))
	cmd.Flags().Bool("release", defaultConfig.Compilation.Toolchain.Release, "build with the release profile, --release=false builds the debug profile")
	cmd.Flags().String("target", "", "target triple to build for")
	cmd.Flags().String("cargo", "", "path of the toolchain executable")
	cmd.Flags().StringSlice("cargo-args", []string{}, "extra arguments passed to the toolchain")

	// Project store
	cmd.Flags().String("project-root", "", "directory ephemeral projects are created in (default is the system temporary directory)")
	cmd.Flags().Bool("isolated", false, "build in a fresh project instead of reusing the module's project")

	// Logging
	cmd.Flags().BoolP("verbose", "v", false, "enable debug logging, including the project directory")
	cmd.Flags().String("log-dir", "", "directory to write a structured log file to")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	return nil
}

// updateProjectConfigWithBuildFlags will update the given projectConfig with any CLI arguments that were provided to
// the build command
func updateProjectConfigWithBuildFlags(cmd *cobra.Command, projectConfig *configs.ProjectConfig) error {
	var err error

	// --pyo3 and --github both select the binding library version, so only one may be used
	if cmd.Flags().Changed("pyo3") && cmd.Flags().Changed("github") {
		return errors.Errorf("--pyo3 and --github cannot be used together")
	}

	// Update binding override
	if cmd.Flags().Changed("pyo3") {
		projectConfig.Compilation.Override, err = cmd.Flags().GetString("pyo3")
		if err != nil {
			return err
		}
	}

	// Update binding override to the upstream branch
	if cmd.Flags().Changed("github") {
		github, err := cmd.Flags().GetBool("github")
		if err != nil {
			return err
		}
		if github {
			projectConfig.Compilation.Override = project.UpstreamMarker
		}
	}

	// Update platform
	if cmd.Flags().Changed("platform") {
		projectConfig.Compilation.Platform, err = cmd.Flags().GetString("platform")
		if err != nil {
			return err
		}
	}

	// Update build profile
	if cmd.Flags().Changed("release") {
		projectConfig.Compilation.Toolchain.Release, err = cmd.Flags().GetBool("release")
		if err != nil {
			return err
		}
	}

	// Update target triple
	if cmd.Flags().Changed("target") {
		projectConfig.Compilation.Toolchain.Target, err = cmd.Flags().GetString("target")
		if err != nil {
			return err
		}
	}

	// Update toolchain executable
	if cmd.Flags().Changed("cargo") {
		projectConfig.Compilation.Toolchain.Path, err = cmd.Flags().GetString("cargo")
		if err != nil {
			return err
		}
	}

	// Append toolchain arguments
	if cmd.Flags().Changed("cargo-args") {
		args, err := cmd.Flags().GetStringSlice("cargo-args")
		if err != nil {
			return err
		}
		projectConfig.Compilation.Toolchain.Args = append(projectConfig.Compilation.Toolchain.Args, args...)
	}

	// Update project root
	if cmd.Flags().Changed("project-root") {
		projectConfig.Compilation.ProjectRoot, err = cmd.Flags().GetString("project-root")
		if err != nil {
			return err
		}
	}

	// Update project isolation
	if cmd.Flags().Changed("isolated") {
		projectConfig.Compilation.Isolated, err = cmd.Flags().GetBool("isolated")
		if err != nil {
			return err
		}
	}

	return updateProjectConfigWithLoggingFlags(cmd, projectConfig)
}

// updateProjectConfigWithLoggingFlags will update the logging configuration with the --verbose, --log-dir and
// --no-color flags, for the commands that define them
func updateProjectConfigWithLoggingFlags(cmd *cobra.Command, projectConfig *configs.ProjectConfig) error {
	var err error

	// Update log level
	if cmd.Flags().Changed("verbose") {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		if verbose {
			projectConfig.Logging.Level = zerolog.DebugLevel.String()
		}
	}

	// Update log directory
	if cmd.Flags().Changed("log-dir") {
		projectConfig.Logging.LogDirectory, err = cmd.Flags().GetString("log-dir")
		if err != nil {
			return err
		}
	}

	// Update colorization
	if cmd.Flags().Changed("no-color") {
		projectConfig.Logging.NoColor, err = cmd.Flags().GetBool("no-color")
		if err != nil {
			return err
		}
	}
	return nil
}
