package platforms

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/single-pyo3/single-pyo3/utils"
	"golang.org/x/exp/slices"
)

const (
	// ReleaseProfileDirectory is the output directory name of an optimized build.
	ReleaseProfileDirectory = "release"
	// DebugProfileDirectory is the output directory name of an unoptimized build.
	DebugProfileDirectory = "debug"
	// TargetDirectoryName is the directory cargo writes all build output into.
	TargetDirectoryName = "target"
)

// execLookPath is exec.LookPath, swapped out in tests.
var execLookPath = exec.LookPath

// CargoBuilder drives a cargo-compatible toolchain.
type CargoBuilder struct {
	// Platform is the identifier this builder was registered under.
	Platform string `json:"-" yaml:"-"`

	// Path is the toolchain executable.
	Path string `json:"path" yaml:"path"`

	// Subcommand is placed between the executable and the build flags, e.g. "build" or "zigbuild".
	Subcommand []string `json:"-" yaml:"-"`

	// Release selects the optimized profile.
	Release bool `json:"release" yaml:"release"`

	// Target is an optional target triple. Output then moves into target/<triple>/<profile>.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Args are appended to the build command.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	// Env is added to the inherited environment of the toolchain process.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`

	// Mirror, when set, receives a copy of both output streams, e.g. a log file.
	Mirror io.Writer `json:"-" yaml:"-"`
}

// NewCargoBuilder returns a CargoBuilder that runs `cargo build --release`.
func NewCargoBuilder() *CargoBuilder {
	return &CargoBuilder{
		Platform:   "cargo",
		Path:       "cargo",
		Subcommand: []string{"build"},
		Release:    true,
	}
}

// Name returns the platform identifier of the builder.
func (c *CargoBuilder) Name() string {
	if c.Platform == "" {
		return "cargo"
	}
	return c.Platform
}

// executable returns the toolchain binary to run.
func (c *CargoBuilder) executable() string {
	if c.Path == "" {
		return "cargo"
	}
	return c.Path
}

// Arguments returns the arguments passed to the toolchain executable.
func (c *CargoBuilder) Arguments() []string {
	args := append([]string{}, c.Subcommand...)
	if len(args) == 0 {
		args = append(args, "build")
	}
	if c.Release {
		args = append(args, "--release")
	}
	if c.Target != "" {
		args = append(args, "--target", c.Target)
	}
	return append(args, c.Args...)
}

// CommandLine returns the executable followed by its arguments.
func (c *CargoBuilder) CommandLine() []string {
	return append([]string{c.executable()}, c.Arguments()...)
}

// environment returns the process environment, or nil to inherit it unchanged.
func (c *CargoBuilder) environment() []string {
	if len(c.Env) == 0 {
		return nil
	}

	// Sort the keys so the command line is reproducible in logs
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	env := os.Environ()
	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", k, c.Env[k]))
	}
	return env
}

// CheckTools verifies the toolchain executable can be found. A missing executable is reported as a BuildError that
// was never launched.
func (c *CargoBuilder) CheckTools() error {
	if _, err := execLookPath(c.executable()); err != nil {
		return &types.BuildError{Builder: c.Name(), ExitCode: -1, Err: errors.WithStack(err)}
	}
	return nil
}

// Build runs the toolchain in projectDir and waits for it to exit. The exit status is the only success signal.
func (c *CargoBuilder) Build(ctx context.Context, projectDir string, stdout io.Writer, stderr io.Writer) (*BuildResult, error) {
	args := c.Arguments()
	cmd := exec.CommandContext(ctx, c.executable(), args...)
	cmd.Dir = projectDir
	cmd.Env = c.environment()

	err := utils.RunCommandWithForwardedOutput(cmd, stdout, stderr, c.Mirror)
	exitCode, ran := utils.ExitCodeFromError(err)

	result := &BuildResult{
		ProjectDir: projectDir,
		OutputDir:  c.OutputDirectory(projectDir),
		Command:    append([]string{c.executable()}, args...),
		ExitCode:   exitCode,
	}
	if err != nil {
		// A process that ran but has no exit code was killed by a signal
		return result, &types.BuildError{
			Builder:     c.Name(),
			ProjectDir:  projectDir,
			ExitCode:    exitCode,
			Interrupted: ran && exitCode < 0,
			Err:         errors.WithStack(err),
		}
	}
	return result, nil
}

// OutputDirectory returns <projectDir>/target[/<triple>]/<release|debug>.
func (c *CargoBuilder) OutputDirectory(projectDir string) string {
	dir := filepath.Join(projectDir, TargetDirectoryName)
	if c.Target != "" {
		dir = filepath.Join(dir, c.Target)
	}
	if c.Release {
		return filepath.Join(dir, ReleaseProfileDirectory)
	}
	return filepath.Join(dir, DebugProfileDirectory)
}

// Version returns the version of the toolchain executable.
func (c *CargoBuilder) Version() (*semver.Version, error) {
	return GetSystemCargoVersion(c.executable())
}
