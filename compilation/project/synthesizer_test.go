package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSynthesizer(t *testing.T) *Synthesizer {
	return NewSynthesizer(NewProjectStore(t.TempDir(), false), DefaultPackageOptions(), DefaultBindingOptions())
}

func readDependencies(t *testing.T, manifestPath string) map[string]any {
	b, err := os.ReadFile(manifestPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, toml.Unmarshal(b, &decoded))
	return decoded["dependencies"].(map[string]any)
}

func TestSynthesizeCreatesProject(t *testing.T) {
	synthesizer := newTestSynthesizer(t)
	unit := &types.SourceUnit{CrateName: "foo", ModuleName: "foo", Contents: []byte("// rand = \"*\"\nfn x() {}\n")}
	declarations := []types.DependencyDeclaration{{Name: "rand", Specifier: `"*"`, Raw: `rand = "*"`}}

	project, err := synthesizer.Synthesize(unit, declarations, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(synthesizer.Store().Root(), "foo"), project.Root)

	source, err := os.ReadFile(project.EntryPointPath)
	require.NoError(t, err)
	assert.Equal(t, unit.Contents, source)

	deps := readDependencies(t, project.ManifestPath)
	assert.Contains(t, deps, "pyo3")
	assert.Equal(t, "*", deps["rand"])
}

func TestSynthesizeRegeneratesManifest(t *testing.T) {
	synthesizer := newTestSynthesizer(t)
	unit := &types.SourceUnit{CrateName: "foo", ModuleName: "foo", Contents: []byte("first")}

	first := []types.DependencyDeclaration{
		{Name: "rand", Raw: `rand = "*"`},
		{Name: "serde", Raw: `serde = "1"`},
	}
	_, err := synthesizer.Synthesize(unit, first, "")
	require.NoError(t, err)

	unit = &types.SourceUnit{CrateName: "foo", ModuleName: "foo", Contents: []byte("second")}
	second := []types.DependencyDeclaration{{Name: "itertools", Raw: `itertools = "0.10"`}}
	project, err := synthesizer.Synthesize(unit, second, "")
	require.NoError(t, err)

	deps := readDependencies(t, project.ManifestPath)
	assert.Len(t, deps, 2)
	assert.Contains(t, deps, "pyo3")
	assert.Equal(t, "0.10", deps["itertools"])
	assert.NotContains(t, deps, "rand")
	assert.NotContains(t, deps, "serde")

	source, err := os.ReadFile(project.EntryPointPath)
	require.NoError(t, err)
	assert.Equal(t, "second", string(source))
}

func TestSynthesizeFilesystemFailure(t *testing.T) {
	// A regular file where the store root should be makes directory creation fail.
	root := filepath.Join(t.TempDir(), "not-a-directory")
	require.NoError(t, os.WriteFile(root, nil, 0644))

	synthesizer := NewSynthesizer(NewProjectStore(root, false), DefaultPackageOptions(), DefaultBindingOptions())
	_, err := synthesizer.Synthesize(&types.SourceUnit{CrateName: "foo", ModuleName: "foo"}, nil, "")

	var synthesisErr *types.SynthesisError
	require.True(t, errors.As(err, &synthesisErr))
	assert.Equal(t, filepath.Join(root, "foo"), synthesisErr.ProjectDir)
}
