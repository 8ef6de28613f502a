package cmd

import (
	"testing"

	"github.com/single-pyo3/single-pyo3/compilation/project"
	"github.com/single-pyo3/single-pyo3/configs"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBuildFlagsCommand returns a command with the build flags parsed from args.
func newBuildFlagsCommand(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	require.NoError(t, addBuildFlags(cmd))
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestUpdateProjectConfigWithBuildFlagsDefaults(t *testing.T) {
	projectConfig := configs.GetDefaultProjectConfig()
	require.NoError(t, updateProjectConfigWithBuildFlags(newBuildFlagsCommand(t), projectConfig))
	assert.Equal(t, configs.GetDefaultProjectConfig(), projectConfig)
}

func TestUpdateProjectConfigWithBuildFlags(t *testing.T) {
	projectConfig := configs.GetDefaultProjectConfig()
	projectConfig.Compilation.Toolchain.Args = []string{"--locked"}

	cmd := newBuildFlagsCommand(t,
		"--pyo3", "0.14",
		"--platform", "zigbuild",
		"--release=false",
		"--target", "aarch64-unknown-linux-gnu",
		"--cargo", "/opt/cargo",
		"--cargo-args", "-q,--offline",
		"--project-root", "/var/tmp/pyo3",
		"--isolated",
		"-v",
		"--log-dir", "logs",
		"--no-color",
	)
	require.NoError(t, updateProjectConfigWithBuildFlags(cmd, projectConfig))

	compilationConfig := projectConfig.Compilation
	assert.Equal(t, "0.14", compilationConfig.Override)
	assert.Equal(t, "zigbuild", compilationConfig.Platform)
	assert.False(t, compilationConfig.Toolchain.Release)
	assert.Equal(t, "aarch64-unknown-linux-gnu", compilationConfig.Toolchain.Target)
	assert.Equal(t, "/opt/cargo", compilationConfig.Toolchain.Path)
	assert.Equal(t, []string{"--locked", "-q", "--offline"}, compilationConfig.Toolchain.Args)
	assert.Equal(t, "/var/tmp/pyo3", compilationConfig.ProjectRoot)
	assert.True(t, compilationConfig.Isolated)

	assert.Equal(t, "debug", projectConfig.Logging.Level)
	assert.Equal(t, "logs", projectConfig.Logging.LogDirectory)
	assert.True(t, projectConfig.Logging.NoColor)
	require.NoError(t, projectConfig.Validate())
}

func TestUpdateProjectConfigWithGithubFlag(t *testing.T) {
	projectConfig := configs.GetDefaultProjectConfig()
	require.NoError(t, updateProjectConfigWithBuildFlags(newBuildFlagsCommand(t, "--github"), projectConfig))
	assert.Equal(t, project.UpstreamMarker, projectConfig.Compilation.Override)

	// A config file override survives --github=false
	projectConfig = configs.GetDefaultProjectConfig()
	projectConfig.Compilation.Override = "0.12"
	require.NoError(t, updateProjectConfigWithBuildFlags(newBuildFlagsCommand(t, "--github=false"), projectConfig))
	assert.Equal(t, "0.12", projectConfig.Compilation.Override)

	projectConfig = configs.GetDefaultProjectConfig()
	err := updateProjectConfigWithBuildFlags(newBuildFlagsCommand(t, "--github", "--pyo3", "0.14"), projectConfig)
	assert.Error(t, err)
}

func TestCrateNameFromArgument(t *testing.T) {
	tests := map[string]string{
		"foo":              "foo",
		"foo.rs":           "foo",
		"src/my-mod.rs":    "my-mod",
		"/abs/path/bar.rs": "bar",
		"my_mod":           "my_mod",
	}
	for arg, expected := range tests {
		name, err := crateNameFromArgument(arg)
		require.NoError(t, err, arg)
		assert.Equal(t, expected, name, arg)
	}

	for _, arg := range []string{"", ".rs", "1foo", "../", "foo bar"} {
		_, err := crateNameFromArgument(arg)
		assert.Error(t, err, arg)
	}
}
