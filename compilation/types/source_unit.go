package types

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/single-pyo3/single-pyo3/utils"
)

// crateNamePattern matches names Cargo accepts for both the package and its library target.
var crateNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// SourceUnit describes the single Rust source file a module is built from. It is read once per invocation and never
// mutated afterwards.
type SourceUnit struct {
	// Path is the absolute path of the source file.
	Path string

	// CrateName is the file stem, used as the Cargo package name and as the ephemeral project key.
	CrateName string

	// ModuleName is the crate name with dashes replaced by underscores. It names the library target, the Python
	// module and the output artifact.
	ModuleName string

	// Contents holds the raw bytes of the source file.
	Contents []byte
}

// NewSourceUnit reads the source file at the provided path and derives its names. Any failure is returned as an
// InputError.
func NewSourceUnit(path string) (*SourceUnit, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, &InputError{Path: absPath, Err: err}
	}
	if info.IsDir() {
		return nil, &InputError{Path: absPath, Err: fmt.Errorf("source path refers to a directory")}
	}

	crateName := utils.GetFileNameWithoutExtension(absPath)
	if err = ValidateCrateName(crateName); err != nil {
		return nil, &InputError{Path: absPath, Err: err}
	}

	contents, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &InputError{Path: absPath, Err: err}
	}

	return &SourceUnit{
		Path:       absPath,
		CrateName:  crateName,
		ModuleName: ModuleNameFromCrateName(crateName),
		Contents:   contents,
	}, nil
}

// Directory returns the directory containing the source file. Built artifacts are placed here.
func (s *SourceUnit) Directory() string {
	return filepath.Dir(s.Path)
}

// ValidateCrateName returns an error if name cannot be used as a Cargo package and library name.
func ValidateCrateName(name string) error {
	if name == "" {
		return fmt.Errorf("module name is empty")
	}
	if !crateNamePattern.MatchString(name) {
		return fmt.Errorf("module name '%s' is not a valid crate name (expected letters, digits, '_' or '-', not starting with a digit)", name)
	}
	return nil
}

// ModuleNameFromCrateName converts a crate name into the name of its library target.
func ModuleNameFromCrateName(crateName string) string {
	return strings.ReplaceAll(crateName, "-", "_")
}
