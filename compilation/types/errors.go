package types

import "fmt"

// InputError indicates the source file is missing, unreadable, or its name cannot be used as a module name. It is
// reported before any project synthesis.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid source file '%s': %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// SynthesisError indicates a filesystem failure while creating or writing the ephemeral project. Nothing written
// before the failure is cleaned up.
type SynthesisError struct {
	ProjectDir string
	Err        error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("could not synthesize project at '%s': %v", e.ProjectDir, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// BuildError indicates the toolchain subprocess exited with a non-zero status or could not be launched at all.
type BuildError struct {
	// Builder is the name of the toolchain driver that failed.
	Builder string

	// ProjectDir is the directory the build ran in.
	ProjectDir string

	// ExitCode is the subprocess exit code, or -1 if the subprocess never ran or was terminated by a signal.
	ExitCode int

	// Interrupted is set when the subprocess started but was terminated by a signal, e.g. on cancellation.
	Interrupted bool

	Err error
}

func (e *BuildError) Error() string {
	if e.Interrupted {
		return fmt.Sprintf("%s build in '%s' was interrupted: %v", e.Builder, e.ProjectDir, e.Err)
	}
	if !e.Launched() {
		return fmt.Sprintf("%s build could not be started in '%s': %v", e.Builder, e.ProjectDir, e.Err)
	}
	return fmt.Sprintf("%s build failed in '%s' with exit code %d", e.Builder, e.ProjectDir, e.ExitCode)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Launched returns whether the subprocess started.
func (e *BuildError) Launched() bool {
	return e.ExitCode >= 0 || e.Interrupted
}

// ArtifactNotFoundError indicates the build reported success but the expected library is absent from the output
// directory. This points at a toolchain version or naming-convention mismatch rather than a compilation failure.
type ArtifactNotFoundError struct {
	// Directory is the output directory that was searched.
	Directory string

	// Expected is the file name that was looked for.
	Expected string

	Err error
}

func (e *ArtifactNotFoundError) Error() string {
	msg := fmt.Sprintf("build succeeded but '%s' was not found in '%s'", e.Expected, e.Directory)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ArtifactNotFoundError) Unwrap() error {
	return e.Err
}
