package project

import (
	"github.com/Masterminds/semver"
	"golang.org/x/exp/slices"
)

const (
	// UpstreamMarker is the override value selecting the binding library's upstream development branch.
	UpstreamMarker = "upstream"

	// DefaultBindingCrate is the extension-binding library every module depends on.
	DefaultBindingCrate = "pyo3"

	// DefaultBindingVersion is the version requirement used when no override is given.
	DefaultBindingVersion = "0.13"

	// DefaultBindingGitURL is the repository used for UpstreamMarker.
	DefaultBindingGitURL = "https://github.com/PyO3/pyo3"

	// DefaultBindingBranch is the branch used for UpstreamMarker.
	DefaultBindingBranch = "main"

	// ExtensionModuleFeature makes pyo3 link against the interpreter at load time instead of build time.
	ExtensionModuleFeature = "extension-module"
)

// BindingOptions describes how the binding-library dependency is declared in generated manifests.
type BindingOptions struct {
	// Crate is the dependency name of the binding library.
	Crate string `json:"crate" yaml:"crate"`

	// Version is the default version requirement.
	Version string `json:"version" yaml:"version"`

	// Features are enabled on the binding library.
	Features []string `json:"features" yaml:"features"`

	// GitURL and Branch are used when the upstream marker is selected.
	GitURL string `json:"gitUrl" yaml:"gitUrl"`
	Branch string `json:"branch" yaml:"branch"`
}

// DefaultBindingOptions returns the built-in pyo3 binding declaration.
func DefaultBindingOptions() BindingOptions {
	return BindingOptions{
		Crate:    DefaultBindingCrate,
		Version:  DefaultBindingVersion,
		Features: []string{ExtensionModuleFeature},
		GitURL:   DefaultBindingGitURL,
		Branch:   DefaultBindingBranch,
	}
}

// BindingDependency is the manifest entry for the binding library.
type BindingDependency struct {
	Version  string   `toml:"version,omitempty"`
	Git      string   `toml:"git,omitempty"`
	Branch   string   `toml:"branch,omitempty"`
	Features []string `toml:"features,omitempty"`
}

// Resolve produces the binding dependency for the given override. An empty override uses the default version, the
// UpstreamMarker selects the upstream git branch, and anything else is used as the version requirement verbatim.
func (b BindingOptions) Resolve(override string) BindingDependency {
	dependency := BindingDependency{
		Features: slices.Clone(b.Features),
	}

	switch override {
	case "":
		dependency.Version = b.Version
	case UpstreamMarker:
		dependency.Git = b.GitURL
		dependency.Branch = b.Branch
	default:
		dependency.Version = override
	}
	return dependency
}

// IsVersionRequirement reports whether override parses as a version requirement. Overrides that do not are still
// passed to the toolchain unchanged; this is only used to warn early.
func IsVersionRequirement(override string) bool {
	if override == "" || override == UpstreamMarker {
		return true
	}
	_, err := semver.NewConstraint(override)
	return err == nil
}
