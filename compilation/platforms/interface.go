package platforms

import (
	"context"
	"io"

	"github.com/Masterminds/semver"
)

// Builder describes a toolchain driver that compiles a synthesized project into a shared library.
type Builder interface {
	// Name returns the identifier of the driver, used in diagnostics.
	Name() string

	// Build runs the toolchain in projectDir, forwarding its output to stdout and stderr as it is produced. A failed
	// or unlaunchable build is reported as a *types.BuildError.
	Build(ctx context.Context, projectDir string, stdout io.Writer, stderr io.Writer) (*BuildResult, error)

	// OutputDirectory returns the directory in which a successful build leaves its artifacts.
	OutputDirectory(projectDir string) string
}

// ToolChecker is implemented by builders that can verify their external tools are available before building.
type ToolChecker interface {
	CheckTools() error
}

// BuildResult describes a finished toolchain run.
type BuildResult struct {
	// ProjectDir is the directory the toolchain ran in.
	ProjectDir string

	// OutputDir is the directory the toolchain writes its artifacts to.
	OutputDir string

	// Command is the executable and arguments that were run.
	Command []string

	// ExitCode is the exit status of the toolchain subprocess.
	ExitCode int
}

// VersionReporter is implemented by builders that can report the version of their toolchain.
type VersionReporter interface {
	Version() (*semver.Version, error)
}
