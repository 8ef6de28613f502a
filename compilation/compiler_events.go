package compilation

import (
	"github.com/single-pyo3/single-pyo3/compilation/platforms"
	"github.com/single-pyo3/single-pyo3/compilation/project"
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/single-pyo3/single-pyo3/events"
)

// CompilerEvents defines event emitters for a Compiler. A handler returning an error aborts the compilation and the
// error is returned from Compile.
type CompilerEvents struct {
	// ProjectSynthesized emits events once the ephemeral project has been written to disk.
	ProjectSynthesized events.EventEmitter[ProjectSynthesizedEvent]

	// BuildStarting emits events right before the toolchain is launched.
	BuildStarting events.EventEmitter[BuildStartingEvent]

	// BuildFinished emits events after the toolchain exited, whether or not it succeeded.
	BuildFinished events.EventEmitter[BuildFinishedEvent]

	// ArtifactInstalled emits events once the shared library has been copied next to the source file.
	ArtifactInstalled events.EventEmitter[ArtifactInstalledEvent]
}

// ProjectSynthesizedEvent describes an event where a Compiler wrote the manifest and entry point of a project.
type ProjectSynthesizedEvent struct {
	Source  *types.SourceUnit
	Project *project.EphemeralProject
}

// BuildStartingEvent describes an event where a Compiler is about to run its Builder over a project.
type BuildStartingEvent struct {
	Source     *types.SourceUnit
	Builder    platforms.Builder
	ProjectDir string
}

// BuildFinishedEvent describes an event where the Builder of a Compiler returned.
type BuildFinishedEvent struct {
	Source *types.SourceUnit

	// Result is nil if the toolchain could not be launched.
	Result *platforms.BuildResult

	// Err is the error returned by the Builder, if any.
	Err error
}

// ArtifactInstalledEvent describes an event where a Compiler placed the built library at its destination.
type ArtifactInstalledEvent struct {
	Source   *types.SourceUnit
	Artifact *types.BuildArtifact
}
