package compilation

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/single-pyo3/single-pyo3/compilation/platforms"
	"github.com/single-pyo3/single-pyo3/compilation/project"
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/single-pyo3/single-pyo3/logging"
	"github.com/single-pyo3/single-pyo3/logging/colors"
)

// Compiler builds a single source file into a shared library placed next to it. It runs the scanner, the project
// synthesizer, the toolchain driver and the artifact locator in that order and stops at the first failure.
type Compiler struct {
	// Synthesizer writes the ephemeral project.
	Synthesizer *project.Synthesizer

	// Builder runs the toolchain.
	Builder platforms.Builder

	// Platform decides the shared library naming convention. Defaults to runtime.GOOS.
	Platform string

	// Override replaces the binding library's version requirement.
	Override string

	// Stdout and Stderr receive the toolchain output as it is produced.
	Stdout io.Writer
	Stderr io.Writer

	// Events describes the event system for the Compiler.
	Events CompilerEvents

	logger *logging.Logger
}

// CompileResult describes what a Compile call produced. Fields are filled in as the pipeline progresses, so a
// failed call returns the stages that completed.
type CompileResult struct {
	Source       *types.SourceUnit
	Declarations []types.DependencyDeclaration
	Project      *project.EphemeralProject
	Build        *platforms.BuildResult
	Artifact     *types.BuildArtifact
}

// NewCompiler creates a Compiler for the host platform that forwards toolchain output to the process' own stdout
// and stderr.
func NewCompiler(synthesizer *project.Synthesizer, builder platforms.Builder) *Compiler {
	return &Compiler{
		Synthesizer: synthesizer,
		Builder:     builder,
		Platform:    runtime.GOOS,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		logger:      logging.GlobalLogger.NewSubLogger("module", "compiler"),
	}
}

// Compile builds the source file at sourcePath. Failures are returned as one of the error kinds in the types
// package, except for a failed copy to the destination which is a plain wrapped error.
func (c *Compiler) Compile(ctx context.Context, sourcePath string) (*CompileResult, error) {
	result := &CompileResult{}

	unit, err := types.NewSourceUnit(sourcePath)
	if err != nil {
		return result, err
	}
	result.Source = unit

	result.Declarations = ScanDependencies(unit.Contents)
	c.logger.Debug("Found ", len(result.Declarations), " dependency declarations in ", unit.Path, logging.StructuredLogInfo{
		"dependencies": types.DependencyNames(result.Declarations),
	})

	result.Project, err = c.Synthesizer.Synthesize(unit, result.Declarations, c.Override)
	if err != nil {
		return result, err
	}

	err = c.Events.ProjectSynthesized.Publish(ProjectSynthesizedEvent{Source: unit, Project: result.Project})
	if err != nil {
		return result, err
	}

	if err = c.checkTools(result.Project.Root); err != nil {
		return result, err
	}

	err = c.Events.BuildStarting.Publish(BuildStartingEvent{Source: unit, Builder: c.Builder, ProjectDir: result.Project.Root})
	if err != nil {
		return result, err
	}

	c.logger.Info("Building ", colors.Bold, unit.ModuleName, colors.Reset, " with ", c.Builder.Name())
	result.Build, err = c.Builder.Build(ctx, result.Project.Root, c.Stdout, c.Stderr)
	if publishErr := c.Events.BuildFinished.Publish(BuildFinishedEvent{Source: unit, Result: result.Build, Err: err}); publishErr != nil && err == nil {
		err = publishErr
	}
	if err != nil {
		return result, err
	}

	locator := &Locator{Platform: c.Platform}
	result.Artifact, err = locator.Install(unit, c.Builder.OutputDirectory(result.Project.Root))
	if err != nil {
		return result, err
	}

	err = c.Events.ArtifactInstalled.Publish(ArtifactInstalledEvent{Source: unit, Artifact: result.Artifact})
	if err != nil {
		return result, err
	}

	NotifyArtifactHashStatus(unit.ModuleName, result.Artifact, ArtifactHashRecord{
		Dependencies: types.DependencyNames(result.Declarations),
		Override:     c.Override,
	}, result.Project.Root, c.logger)

	c.logger.Info("Built ", colors.GreenBold, result.Artifact.DestinationPath, colors.Reset)
	return result, nil
}

// checkTools verifies the toolchain is available, if the builder supports it, and reports its version when debug
// logging is enabled.
func (c *Compiler) checkTools(projectDir string) error {
	if checker, ok := c.Builder.(platforms.ToolChecker); ok {
		if err := checker.CheckTools(); err != nil {
			var buildErr *types.BuildError
			if errors.As(err, &buildErr) && buildErr.ProjectDir == "" {
				buildErr.ProjectDir = projectDir
			}
			return err
		}
	}

	if reporter, ok := c.Builder.(platforms.VersionReporter); ok && c.logger.Level() <= zerolog.DebugLevel {
		if v, err := reporter.Version(); err != nil {
			c.logger.Warn("Could not determine the toolchain version", err)
		} else {
			c.logger.Debug("Using ", c.Builder.Name(), " ", v.String())
		}
	}
	return nil
}
