package compilation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/single-pyo3/single-pyo3/utils"
)

// Locator finds the library a build produced and copies it next to the source file.
type Locator struct {
	// Platform decides the library naming convention, e.g. "linux" or "darwin".
	Platform string
}

// Locate returns the path of the library built for module inside outputDir. A missing or empty output directory, or
// a missing library, is reported as an ArtifactNotFoundError.
func (l *Locator) Locate(outputDir string, module string) (string, error) {
	expected := ToolchainArtifactName(l.Platform, module)

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", &types.ArtifactNotFoundError{Directory: outputDir, Expected: expected, Err: err}
	}
	if len(entries) == 0 {
		return "", &types.ArtifactNotFoundError{Directory: outputDir, Expected: expected, Err: fmt.Errorf("output directory is empty")}
	}

	artifactPath := filepath.Join(outputDir, expected)
	info, err := os.Stat(artifactPath)
	if err != nil {
		return "", &types.ArtifactNotFoundError{Directory: outputDir, Expected: expected, Err: err}
	}
	if info.IsDir() {
		return "", &types.ArtifactNotFoundError{Directory: outputDir, Expected: expected, Err: fmt.Errorf("'%s' is a directory", artifactPath)}
	}
	return artifactPath, nil
}

// Install locates the library built for unit, copies it to <source dir>/<module><ext> and hashes the copy. An existing
// file at the destination is overwritten. The toolchain's own copy stays in place.
func (l *Locator) Install(unit *types.SourceUnit, outputDir string) (*types.BuildArtifact, error) {
	sourcePath, err := l.Locate(outputDir, unit.ModuleName)
	if err != nil {
		return nil, err
	}

	destinationPath := filepath.Join(unit.Directory(), OutputArtifactName(l.Platform, unit.ModuleName))
	if err = utils.CopyFile(sourcePath, destinationPath); err != nil {
		return nil, errors.Wrapf(err, "could not copy '%s' to '%s'", sourcePath, destinationPath)
	}

	hash, err := HashFile(destinationPath)
	if err != nil {
		return nil, err
	}

	return &types.BuildArtifact{
		SourcePath:      sourcePath,
		DestinationPath: destinationPath,
		Hash:            hash,
	}, nil
}

// HashFile returns the hex-encoded SHA-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err = io.Copy(hasher, f); err != nil {
		return "", errors.WithStack(err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
