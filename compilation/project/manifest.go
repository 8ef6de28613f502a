package project

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/single-pyo3/single-pyo3/compilation/types"
)

const (
	// DefaultPackageVersion is the version given to every synthesized package.
	DefaultPackageVersion = "0.1.0"

	// DefaultPackageEdition is the Rust edition of every synthesized package.
	DefaultPackageEdition = "2018"

	// CrateTypeCDylib makes Cargo produce a C-compatible shared library.
	CrateTypeCDylib = "cdylib"
)

// PackageOptions holds the package metadata that does not come from the source file.
type PackageOptions struct {
	Version string `json:"version" yaml:"version"`
	Edition string `json:"edition" yaml:"edition"`
}

// DefaultPackageOptions returns the built-in package metadata.
func DefaultPackageOptions() PackageOptions {
	return PackageOptions{
		Version: DefaultPackageVersion,
		Edition: DefaultPackageEdition,
	}
}

// PackageSection is the [package] table of Cargo.toml.
type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// LibSection is the [lib] table of Cargo.toml.
type LibSection struct {
	Name      string   `toml:"name"`
	CrateType []string `toml:"crate-type"`
}

// Manifest is the Cargo.toml of an ephemeral project.
type Manifest struct {
	Package PackageSection
	Lib     LibSection

	// BindingName and Binding form the first [dependencies] entry.
	BindingName string
	Binding     BindingDependency

	// Dependencies are appended after the binding entry, verbatim and in order.
	Dependencies []types.DependencyDeclaration
}

// NewManifest builds the manifest for a source unit.
func NewManifest(unit *types.SourceUnit, declarations []types.DependencyDeclaration, pkg PackageOptions, binding BindingOptions, override string) *Manifest {
	return &Manifest{
		Package: PackageSection{
			Name:    unit.CrateName,
			Version: pkg.Version,
			Edition: pkg.Edition,
		},
		Lib: LibSection{
			Name:      unit.ModuleName,
			CrateType: []string{CrateTypeCDylib},
		},
		BindingName:  binding.Crate,
		Binding:      binding.Resolve(override),
		Dependencies: declarations,
	}
}

// Render serializes the manifest. The [package] and [lib] tables and the binding entry are TOML-encoded; declaration
// lines are copied as-is, so malformed specifiers are left for Cargo to reject.
func (m *Manifest) Render() ([]byte, error) {
	var buf bytes.Buffer

	header := struct {
		Package PackageSection `toml:"package"`
		Lib     LibSection     `toml:"lib"`
	}{
		Package: m.Package,
		Lib:     m.Lib,
	}
	if err := toml.NewEncoder(&buf).Encode(header); err != nil {
		return nil, errors.WithStack(err)
	}

	buf.WriteString("\n[dependencies]\n")

	bindingEncoder := toml.NewEncoder(&buf)
	bindingEncoder.SetTablesInline(true)
	if err := bindingEncoder.Encode(map[string]BindingDependency{m.BindingName: m.Binding}); err != nil {
		return nil, errors.WithStack(err)
	}

	for _, declaration := range m.Dependencies {
		buf.WriteString(declaration.String())
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}
