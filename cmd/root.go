package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/single-pyo3/single-pyo3/cmd/exitcodes"
	"github.com/single-pyo3/single-pyo3/compilation"
	"github.com/single-pyo3/single-pyo3/compilation/platforms"
	"github.com/single-pyo3/single-pyo3/events"
	"github.com/single-pyo3/single-pyo3/logging"
	"github.com/single-pyo3/single-pyo3/logging/colors"
	"github.com/single-pyo3/single-pyo3/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootCmd builds a single source file. Other operations are sub-commands.
var rootCmd = &cobra.Command{
	Use:   "single-pyo3 [flags] <source.rs>",
	Short: "Builds a single Rust source file into a Python extension module",
	Long: `Builds a single Rust source file into a Python extension module.

Dependencies are declared in comments at the top of the file:

  // rand = "0.8"
  // serde = { version = "1", features = ["derive"] }

A Cargo project for the module is generated in the temporary directory and
reused across runs, and the built library is copied next to the source file.`,
	Version:           version.GetInfo().Short(),
	Args:              cmdValidateBuildArgs,
	ValidArgsFunction: cmdValidBuildArgs,
	RunE:              cmdRunBuild,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// cmdLogger is the logger used by all commands. It writes unstructured output to stderr.
var cmdLogger = logging.NewLogger(zerolog.InfoLevel)

func init() {
	// Add all the flags allowed for the build command
	err := addBuildFlags(rootCmd)
	if err != nil {
		cmdLogger.Panic("Failed to initialize the build command", err)
	}

	// Log the toolchain command line of every compiler at debug level
	events.SubscribeAny(logBuildCommand)
}

// Execute runs the root command.
func Execute() error {
	// Add stderr as an unstructured, colorized output stream for the command logger
	cmdLogger.AddWriter(os.Stderr, logging.UNSTRUCTURED, true)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}

// cmdValidBuildArgs will return which flags and source files are valid for dynamic completion for the build command
func cmdValidBuildArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// A source file was already given, so only suggest the flags that have not been used yet
	if len(args) > 0 {
		var unusedFlags []string
		cmd.Flags().VisitAll(func(flag *pflag.Flag) {
			if !flag.Changed {
				unusedFlags = append(unusedFlags, "--"+flag.Name)
			}
		})
		return unusedFlags, cobra.ShellCompDirectiveNoFileComp
	}

	// Otherwise complete Rust source files
	return []string{"rs"}, cobra.ShellCompDirectiveFilterFileExt
}

// cmdValidateBuildArgs makes sure that exactly one source file is provided to the build command
func cmdValidateBuildArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("expected exactly one Rust source file, got %d arguments", len(args))
		cmdLogger.Error("Failed to validate args to the build command", err)
		return exitcodes.NewHandledErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
	}
	return nil
}

// cmdRunBuild reads the project configuration, applies the command line flags to it and builds the source file.
func cmdRunBuild(cmd *cobra.Command, args []string) error {
	projectConfig, err := readProjectConfig(cmd)
	if err != nil {
		return cmdFailure("Failed to read the project configuration", err)
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithBuildFlags(cmd, projectConfig)
	if err != nil {
		return cmdFailure("Failed to run the build command", err)
	}
	if err = projectConfig.Validate(); err != nil {
		return cmdFailure("Invalid project configuration", err)
	}

	// Logging must be set up before the compiler creates its sub-loggers
	logs, err := setupLogging(projectConfig)
	if err != nil {
		return cmdFailure("Failed to set up logging", err)
	}
	defer logs.Close()

	compiler, err := projectConfig.Compilation.NewCompiler(logs.Mirror())
	if err != nil {
		return cmdFailure("Failed to run the build command", err)
	}

	// Terminate the toolchain on keyboard interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := compiler.Compile(ctx, args[0])
	if result != nil && result.Project != nil {
		cmdLogger.Debug("Project directory: ", colors.Bold, result.Project.Root, colors.Reset)
	}
	if err != nil {
		return cmdFailure("Failed to build "+args[0], err)
	}
	return nil
}

// logBuildCommand logs the toolchain invocation at debug level when the builder exposes its arguments.
func logBuildCommand(event compilation.BuildStartingEvent) error {
	if cargo, ok := event.Builder.(*platforms.CargoBuilder); ok {
		cmdLogger.Debug("Running ", colors.Bold, strings.Join(cargo.CommandLine(), " "), colors.Reset, " in ", event.ProjectDir)
	}
	return nil
}

// cmdFailure logs err and returns it with the exit code it maps to, marked as already reported.
func cmdFailure(msg string, err error) error {
	cmdLogger.Error(msg, err)
	return exitcodes.NewHandledErrorWithExitCode(err, exitcodes.ExitCodeForError(err))
}
