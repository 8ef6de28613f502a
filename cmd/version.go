package cmd

import (
	"fmt"

	"github.com/single-pyo3/single-pyo3/compilation/platforms"
	"github.com/single-pyo3/single-pyo3/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command that displays build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long: `Print detailed version and build information for single-pyo3.

This includes the semantic version, git commit hash, build timestamp,
Go version used to compile the binary, the default binding library
version and the version of cargo found on PATH.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetInfo()
		fmt.Fprint(cmd.OutOrStdout(), info.String())

		// Report the toolchain on PATH, since it decides what can be built
		if v, err := platforms.GetSystemCargoVersion("cargo"); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  Cargo:      %s\n", v.String())
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "  Cargo:      not found\n")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
