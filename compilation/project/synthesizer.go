package project

import (
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/single-pyo3/single-pyo3/logging"
	"github.com/single-pyo3/single-pyo3/logging/colors"
	"github.com/single-pyo3/single-pyo3/utils"
)

// Synthesizer writes ephemeral Cargo projects into a ProjectStore.
type Synthesizer struct {
	store   *ProjectStore
	pkg     PackageOptions
	binding BindingOptions
	logger  *logging.Logger
}

// NewSynthesizer creates a Synthesizer that writes into store using the given package metadata and binding library.
func NewSynthesizer(store *ProjectStore, pkg PackageOptions, binding BindingOptions) *Synthesizer {
	return &Synthesizer{
		store:   store,
		pkg:     pkg,
		binding: binding,
		logger:  logging.GlobalLogger.NewSubLogger("module", "project"),
	}
}

// Store returns the ProjectStore projects are written into.
func (s *Synthesizer) Store() *ProjectStore {
	return s.store
}

// Synthesize ensures the project for unit exists and regenerates its manifest and entry point from the current
// inputs. Both files are rewritten on every call, so no declaration from an earlier run survives. Any filesystem
// failure is returned as a SynthesisError and nothing is rolled back.
func (s *Synthesizer) Synthesize(unit *types.SourceUnit, declarations []types.DependencyDeclaration, override string) (*EphemeralProject, error) {
	project, err := s.store.Ensure(s.store.Key(unit.CrateName))
	if err != nil {
		return nil, &types.SynthesisError{ProjectDir: project.Root, Err: err}
	}
	s.logger.Debug("Using project directory ", colors.Bold, project.Root, colors.Reset)

	if !IsVersionRequirement(override) {
		s.logger.Warn("The ", s.binding.Crate, " override '", override, "' does not look like a version requirement, passing it through unchanged")
	}

	manifest, err := NewManifest(unit, declarations, s.pkg, s.binding, override).Render()
	if err != nil {
		return nil, &types.SynthesisError{ProjectDir: project.Root, Err: err}
	}
	if err = utils.WriteFile(project.ManifestPath, manifest); err != nil {
		return nil, &types.SynthesisError{ProjectDir: project.Root, Err: err}
	}

	if err = utils.WriteFile(project.EntryPointPath, unit.Contents); err != nil {
		return nil, &types.SynthesisError{ProjectDir: project.Root, Err: err}
	}

	s.logger.Debug("Wrote manifest with ", len(declarations), " declared dependencies", logging.StructuredLogInfo{
		"dependencies": types.DependencyNames(declarations),
		"manifest":     project.ManifestPath,
	})
	return project, nil
}
