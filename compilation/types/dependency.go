package types

import (
	"fmt"

	"github.com/single-pyo3/single-pyo3/utils"
)

// DependencyDeclaration is a dependency name and its specifier, scanned from a leading comment of a source file. The
// specifier is toolchain syntax and is never interpreted here.
type DependencyDeclaration struct {
	// Name is the dependency (crate) name.
	Name string

	// Specifier is everything to the right of the '=' sign, trimmed. It may be empty.
	Specifier string

	// Line is the 1-based line number the declaration was found on.
	Line int

	// Raw is the declaration text after the comment prefix, trimmed. It is written to the manifest verbatim.
	Raw string
}

// String returns the manifest line for this declaration.
func (d DependencyDeclaration) String() string {
	if d.Raw != "" {
		return d.Raw
	}
	return fmt.Sprintf("%s = %s", d.Name, d.Specifier)
}

// DependencyNames returns the names of the given declarations in order, including duplicates.
func DependencyNames(declarations []DependencyDeclaration) []string {
	return utils.SliceSelect(declarations, func(d DependencyDeclaration) string {
		return d.Name
	})
}
