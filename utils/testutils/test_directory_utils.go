package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/single-pyo3/single-pyo3/utils"
	"github.com/stretchr/testify/require"
)

// CopyToTestDirectory copies the file at the provided filePath (relative to the working directory of the test) into
// an ephemeral directory used for unit tests. Returns the absolute path of the copy.
func CopyToTestDirectory(t *testing.T, filePath string) string {
	// Construct our file path relative to our working directory
	cwd, err := os.Getwd()
	require.NoError(t, err)
	sourcePath := filepath.Join(cwd, filePath)

	// Verify the file path exists
	sourcePathInfo, err := os.Stat(sourcePath)
	require.NoError(t, err)
	require.False(t, sourcePathInfo.IsDir())

	// Obtain an isolated test directory path and copy our source there.
	targetPath := filepath.Join(t.TempDir(), "singlePyo3Test", sourcePathInfo.Name())
	require.NoError(t, utils.CopyFile(sourcePath, targetPath))

	// Get a normalized absolute path
	targetPath, err = filepath.Abs(targetPath)
	require.NoError(t, err)
	return targetPath
}

// WriteSourceFile writes contents to name inside a fresh temporary directory and returns its absolute path.
func WriteSourceFile(t *testing.T, name string, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// ExecuteInDirectory executes the given method in a given test directory. It changes the current working directory
// to the directory specified, runs the provided method, then restores the working directory. This wraps tests so
// any file artifacts generated do not end up in the codebase directories.
func ExecuteInDirectory(t *testing.T, testPath string, method func()) {
	// Backup our old working directory
	cwd, err := os.Getwd()
	require.NoError(t, err)

	// Check if the test path refers to a file or directory, as we'll want to change our working directory to a
	// directory path.
	testPathInfo, err := os.Stat(testPath)
	require.NoError(t, err)

	testDirectory := testPath
	if !testPathInfo.IsDir() {
		testDirectory = filepath.Dir(testPath)
	}

	// Change our working directory to the test directory
	require.NoError(t, os.Chdir(testDirectory))

	// Restore our working directory even if the method fails the test.
	defer func() {
		require.NoError(t, os.Chdir(cwd))
	}()

	method()
}
