package compilation

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver"
	"github.com/single-pyo3/single-pyo3/compilation/platforms"
	"github.com/single-pyo3/single-pyo3/compilation/project"
	"golang.org/x/exp/slices"
)

// supportedEditions lists the Rust editions a generated manifest may declare.
var supportedEditions = []string{"2015", "2018", "2021", "2024"}

// CompilationConfig describes the configuration options used to build a single source file into a module.
type CompilationConfig struct {
	// Platform references an identifier indicating which toolchain driver to use (see
	// GetSupportedCompilationPlatforms).
	Platform string `json:"platform" yaml:"platform"`

	// ProjectRoot is the directory ephemeral projects are created in. Empty selects the system temporary directory.
	ProjectRoot string `json:"projectRoot" yaml:"projectRoot"`

	// Isolated gives every invocation its own project instead of reusing one per module.
	Isolated bool `json:"isolated" yaml:"isolated"`

	// Package describes the [package] metadata of generated manifests.
	Package project.PackageOptions `json:"package" yaml:"package"`

	// Binding describes the binding-library dependency of generated manifests.
	Binding project.BindingOptions `json:"binding" yaml:"binding"`

	// Override replaces the binding library's version requirement. "upstream" selects its development branch.
	Override string `json:"override" yaml:"override"`

	// Toolchain describes how the toolchain is invoked.
	Toolchain ToolchainConfig `json:"toolchain" yaml:"toolchain"`
}

// ToolchainConfig describes the toolchain invocation.
type ToolchainConfig struct {
	// Path overrides the platform's executable.
	Path string `json:"path" yaml:"path"`

	// Release selects the optimized profile.
	Release bool `json:"release" yaml:"release"`

	// Target is an optional target triple.
	Target string `json:"target" yaml:"target"`

	// Args are appended to the build command.
	Args []string `json:"args" yaml:"args"`

	// Env is added to the environment of the toolchain process.
	Env map[string]string `json:"env" yaml:"env"`
}

// NewCompilationConfig returns a CompilationConfig with default values.
func NewCompilationConfig() *CompilationConfig {
	return &CompilationConfig{
		Platform: "cargo",
		Package:  project.DefaultPackageOptions(),
		Binding:  project.DefaultBindingOptions(),
		Toolchain: ToolchainConfig{
			Release: true,
		},
	}
}

// Validate returns an error if the config cannot be used to build a module.
func (c *CompilationConfig) Validate() error {
	if !IsSupportedCompilationPlatform(c.Platform) {
		return fmt.Errorf("compilation platform '%s' is unsupported (supported: %v)", c.Platform, GetSupportedCompilationPlatforms())
	}
	if c.Binding.Crate == "" {
		return fmt.Errorf("binding crate name must not be empty")
	}
	if _, err := semver.NewVersion(c.Package.Version); err != nil {
		return fmt.Errorf("package version '%s' is not a valid semantic version: %v", c.Package.Version, err)
	}
	if !slices.Contains(supportedEditions, c.Package.Edition) {
		return fmt.Errorf("package edition '%s' is unsupported (supported: %v)", c.Package.Edition, supportedEditions)
	}
	return nil
}

// NewBuilder creates the toolchain driver described by the config. When mirror is non-nil it receives a copy of the
// toolchain output.
func (c *CompilationConfig) NewBuilder(mirror io.Writer) (*platforms.CargoBuilder, error) {
	builder := GetDefaultBuilder(c.Platform)
	if builder == nil {
		return nil, fmt.Errorf("compilation platform '%s' is unsupported", c.Platform)
	}
	if c.Toolchain.Path != "" {
		builder.Path = c.Toolchain.Path
	}
	builder.Release = c.Toolchain.Release
	builder.Target = c.Toolchain.Target
	builder.Args = append([]string{}, c.Toolchain.Args...)
	builder.Env = c.Toolchain.Env
	builder.Mirror = mirror
	return builder, nil
}

// NewCompiler creates a Compiler from the config. Toolchain output is mirrored to mirror when it is non-nil.
func (c *CompilationConfig) NewCompiler(mirror io.Writer) (*Compiler, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	builder, err := c.NewBuilder(mirror)
	if err != nil {
		return nil, err
	}

	store := project.NewProjectStore(c.ProjectRoot, c.Isolated)
	compiler := NewCompiler(project.NewSynthesizer(store, c.Package, c.Binding), builder)
	compiler.Override = c.Override
	return compiler, nil
}
