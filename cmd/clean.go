package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/single-pyo3/single-pyo3/cmd/exitcodes"
	"github.com/single-pyo3/single-pyo3/compilation/project"
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/single-pyo3/single-pyo3/logging/colors"
	"github.com/single-pyo3/single-pyo3/utils"
	"github.com/spf13/cobra"
)

// cleanCmd represents the command provider for removing ephemeral projects
var cleanCmd = &cobra.Command{
	Use:   "clean <source.rs|module>",
	Short: "Removes the ephemeral projects of a module",
	Long: `Removes the ephemeral projects of a module, including the shared project and any
isolated ones, together with their build output`,
	Args:          cmdValidateCleanArgs,
	RunE:          cmdRunClean,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cleanCmd.Flags().String("config", "", ConfigFlagDescription)
	cleanCmd.Flags().String("project-root", "", "directory ephemeral projects are created in (default is the system temporary directory)")

	// Add the clean command and its associated flags to the root command
	rootCmd.AddCommand(cleanCmd)
}

// cmdValidateCleanArgs makes sure that exactly one source file or module name is provided to the clean command
func cmdValidateCleanArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("clean expects exactly one source file or module name, got %d arguments", len(args))
		cmdLogger.Error("Failed to validate args to the clean command", err)
		return exitcodes.NewHandledErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
	}
	return nil
}

// crateNameFromArgument returns the crate name referenced by a source file path or a bare module name.
func crateNameFromArgument(arg string) (string, error) {
	name := arg
	if strings.HasSuffix(arg, ".rs") || strings.ContainsRune(arg, filepath.Separator) || strings.ContainsRune(arg, '/') {
		name = utils.GetFileNameWithoutExtension(arg)
	}
	if err := types.ValidateCrateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// cmdRunClean removes every project stored for the module
func cmdRunClean(cmd *cobra.Command, args []string) error {
	projectConfig, err := readProjectConfig(cmd)
	if err != nil {
		return cmdFailure("Failed to read the project configuration", err)
	}
	if cmd.Flags().Changed("project-root") {
		projectConfig.Compilation.ProjectRoot, err = cmd.Flags().GetString("project-root")
		if err != nil {
			return cmdFailure("Failed to run the clean command", err)
		}
	}

	crateName, err := crateNameFromArgument(args[0])
	if err != nil {
		return cmdFailure("Failed to run the clean command", err)
	}

	store := project.NewProjectStore(projectConfig.Compilation.ProjectRoot, false)
	keys, err := store.Keys(crateName)
	if err != nil {
		return cmdFailure("Failed to run the clean command", err)
	}
	if len(keys) == 0 {
		cmdLogger.Info("No projects found for ", colors.Bold, crateName, colors.Reset, " in ", store.Root())
		return nil
	}

	for _, key := range keys {
		if err = store.Remove(key); err != nil {
			return cmdFailure("Failed to run the clean command", err)
		}
		cmdLogger.Info("Removed ", colors.Bold, store.Resolve(key).Root, colors.Reset)
	}
	return nil
}
