package platforms

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeToolchain writes an executable shell script that stands in for cargo.
func writeFakeToolchain(t *testing.T, script string) string {
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-cargo")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755))
	return path
}

func TestCargoBuilderArguments(t *testing.T) {
	builder := NewCargoBuilder()
	assert.Equal(t, []string{"build", "--release"}, builder.Arguments())

	builder.Release = false
	builder.Target = "x86_64-unknown-linux-gnu"
	builder.Args = []string{"--locked", "-q"}
	assert.Equal(t, []string{"build", "--target", "x86_64-unknown-linux-gnu", "--locked", "-q"}, builder.Arguments())

	zig := &CargoBuilder{Platform: "zigbuild", Subcommand: []string{"zigbuild"}, Release: true}
	assert.Equal(t, []string{"zigbuild", "--release"}, zig.Arguments())
	assert.Equal(t, "zigbuild", zig.Name())
	assert.Equal(t, []string{"cargo", "zigbuild", "--release"}, zig.CommandLine())
}

func TestCargoBuilderOutputDirectory(t *testing.T) {
	builder := NewCargoBuilder()
	assert.Equal(t, filepath.Join("proj", "target", "release"), builder.OutputDirectory("proj"))

	builder.Release = false
	assert.Equal(t, filepath.Join("proj", "target", "debug"), builder.OutputDirectory("proj"))

	builder.Target = "aarch64-apple-darwin"
	assert.Equal(t, filepath.Join("proj", "target", "aarch64-apple-darwin", "debug"), builder.OutputDirectory("proj"))
}

func TestCargoBuilderBuildSuccess(t *testing.T) {
	builder := NewCargoBuilder()
	builder.Path = writeFakeToolchain(t, `pwd -P; echo "args: $*"; echo "env: $SINGLE_PYO3_TEST"; echo warning 1>&2`)
	builder.Env = map[string]string{"SINGLE_PYO3_TEST": "present"}

	var mirror bytes.Buffer
	builder.Mirror = &mirror

	projectDir := t.TempDir()
	var stdout, stderr bytes.Buffer
	result, err := builder.Build(context.Background(), projectDir, &stdout, &stderr)
	require.NoError(t, err)

	resolvedProjectDir, err := filepath.EvalSymlinks(projectDir)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), resolvedProjectDir)
	assert.Contains(t, stdout.String(), "args: build --release")
	assert.Contains(t, stdout.String(), "env: present")
	assert.Equal(t, "warning\n", stderr.String())
	assert.Contains(t, mirror.String(), "warning")
	assert.Contains(t, mirror.String(), "env: present")

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, filepath.Join(projectDir, "target", "release"), result.OutputDir)
	assert.Equal(t, []string{builder.Path, "build", "--release"}, result.Command)
}

func TestCargoBuilderBuildFailure(t *testing.T) {
	builder := NewCargoBuilder()
	builder.Path = writeFakeToolchain(t, "echo 'error[E0425]: cannot find value' 1>&2; exit 101")

	var stderr bytes.Buffer
	result, err := builder.Build(context.Background(), t.TempDir(), nil, &stderr)

	var buildErr *types.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.True(t, buildErr.Launched())
	assert.Equal(t, 101, buildErr.ExitCode)
	assert.Equal(t, 101, result.ExitCode)
	assert.Contains(t, stderr.String(), "E0425")
}

func TestCargoBuilderBuildCancelled(t *testing.T) {
	builder := NewCargoBuilder()
	builder.Path = writeFakeToolchain(t, "exec sleep 30")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err := builder.Build(ctx, t.TempDir(), nil, nil)

	var buildErr *types.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.True(t, buildErr.Interrupted)
	assert.True(t, buildErr.Launched())
	assert.Equal(t, -1, buildErr.ExitCode)
	assert.Contains(t, buildErr.Error(), "interrupted")
	assert.NotContains(t, buildErr.Error(), "could not be started")
}

func TestCargoBuilderBuildMissingExecutable(t *testing.T) {
	builder := NewCargoBuilder()
	builder.Path = filepath.Join(t.TempDir(), "does-not-exist")

	_, err := builder.Build(context.Background(), t.TempDir(), nil, nil)

	var buildErr *types.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.False(t, buildErr.Launched())
	assert.False(t, buildErr.Interrupted)
	assert.Equal(t, -1, buildErr.ExitCode)
}

func TestCargoBuilderCheckTools(t *testing.T) {
	original := execLookPath
	defer func() { execLookPath = original }()

	var looked string
	execLookPath = func(name string) (string, error) {
		looked = name
		return "/usr/bin/" + name, nil
	}
	builder := NewCargoBuilder()
	builder.Path = "cross"
	require.NoError(t, builder.CheckTools())
	assert.Equal(t, "cross", looked)

	execLookPath = func(name string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	}
	err := builder.CheckTools()
	var buildErr *types.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, -1, buildErr.ExitCode)
}

func TestParseCargoVersion(t *testing.T) {
	v, err := ParseCargoVersion("cargo 1.75.0 (1d8b05cdd 2023-11-20)\n")
	require.NoError(t, err)
	assert.Equal(t, "1.75.0", v.String())

	v, err = ParseCargoVersion("cargo 1.77.0-nightly (7bb7b5395 2024-01-20)")
	require.NoError(t, err)
	assert.Equal(t, int64(77), v.Minor())
	assert.Equal(t, "nightly", v.Prerelease())

	_, err = ParseCargoVersion("cargo: command not found")
	assert.Error(t, err)
}
