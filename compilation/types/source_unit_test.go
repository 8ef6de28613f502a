package types

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceUnit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my-module.rs")
	require.NoError(t, os.WriteFile(path, []byte("// rand = \"*\"\nfn main() {}\n"), 0644))

	unit, err := NewSourceUnit(path)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(unit.Path))
	assert.Equal(t, "my-module", unit.CrateName)
	assert.Equal(t, "my_module", unit.ModuleName)
	assert.Equal(t, dir, unit.Directory())
	assert.Equal(t, "// rand = \"*\"\nfn main() {}\n", string(unit.Contents))
}

func TestNewSourceUnitMissingFile(t *testing.T) {
	_, err := NewSourceUnit(filepath.Join(t.TempDir(), "missing.rs"))

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewSourceUnitDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "foo.rs")
	require.NoError(t, os.Mkdir(dir, 0755))

	_, err := NewSourceUnit(dir)
	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestNewSourceUnitInvalidName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1bad name.rs")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewSourceUnit(path)
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Contains(t, err.Error(), "not a valid crate name")
}

func TestValidateCrateName(t *testing.T) {
	for _, name := range []string{"foo", "foo_bar", "foo-bar", "_private", "Foo2"} {
		assert.NoError(t, ValidateCrateName(name), name)
	}
	for _, name := range []string{"", "2foo", "foo.bar", "foo bar", "-foo", "föo"} {
		assert.Error(t, ValidateCrateName(name), name)
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	var buildErr error = &BuildError{Builder: "cargo", ProjectDir: "/tmp/foo", ExitCode: 101}
	var missingErr error = &ArtifactNotFoundError{Directory: "/tmp/foo/target/release", Expected: "libfoo.so"}

	var asBuild *BuildError
	var asMissing *ArtifactNotFoundError
	assert.True(t, errors.As(buildErr, &asBuild))
	assert.False(t, errors.As(buildErr, &asMissing))
	assert.True(t, errors.As(missingErr, &asMissing))
	assert.False(t, errors.As(missingErr, &asBuild))

	assert.True(t, asBuild.Launched())
	assert.Contains(t, buildErr.Error(), "exit code 101")

	notLaunched := &BuildError{Builder: "cargo", ExitCode: -1, Err: errors.New("executable file not found")}
	assert.False(t, notLaunched.Launched())
	assert.Contains(t, notLaunched.Error(), "could not be started")

	interrupted := &BuildError{Builder: "cargo", ExitCode: -1, Interrupted: true, Err: errors.New("signal: killed")}
	assert.True(t, interrupted.Launched())
	assert.Contains(t, interrupted.Error(), "was interrupted")
}

func TestDependencyDeclarationString(t *testing.T) {
	assert.Equal(t, `rand = "*"`, DependencyDeclaration{Name: "rand", Specifier: `"*"`, Raw: `rand = "*"`}.String())
	assert.Equal(t, `rand = "0.8"`, DependencyDeclaration{Name: "rand", Specifier: `"0.8"`}.String())
	assert.Equal(t, []string{"a", "b", "a"}, DependencyNames([]DependencyDeclaration{{Name: "a"}, {Name: "b"}, {Name: "a"}}))
}
