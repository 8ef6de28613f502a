// Package version reports the single-pyo3 release, the commit it was built from and the binding library version
// generated projects depend on by default.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/single-pyo3/single-pyo3/compilation/project"
)

// Version is the release of the tool. It can be overridden with -ldflags "-X .../version.Version=...".
var Version = "0.1.0"

// Info describes the running build.
type Info struct {
	Version string

	// Commit is the abbreviated VCS revision, or empty when the binary was built outside a checkout.
	Commit string

	// Dirty is set when the checkout had uncommitted changes.
	Dirty bool

	GoVersion string

	// Binding is the binding library and version requirement used when no override is given, e.g. "pyo3 0.13".
	Binding string
}

// GetInfo collects the version information of the running binary.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		GoVersion: runtime.Version(),
		Binding:   project.DefaultBindingCrate + " " + project.DefaultBindingVersion,
	}

	if build, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range build.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Commit = setting.Value
				if len(info.Commit) > 7 {
					info.Commit = info.Commit[:7]
				}
			case "vcs.modified":
				info.Dirty = setting.Value == "true"
			}
		}
	}
	return info
}

// revision returns the commit with a "-dirty" suffix when needed.
func (i Info) revision() string {
	if i.Dirty {
		return i.Commit + "-dirty"
	}
	return i.Commit
}

// String returns the multi-line output of the version command.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("single-pyo3 version %s\n", i.Version))
	if i.Commit != "" {
		sb.WriteString(fmt.Sprintf("  Commit:     %s\n", i.revision()))
	}
	sb.WriteString(fmt.Sprintf("  Go version: %s\n", i.GoVersion))
	sb.WriteString(fmt.Sprintf("  Binding:    %s\n", i.Binding))
	return sb.String()
}

// Short returns the single-line form used by --version.
func (i Info) Short() string {
	if i.Commit == "" {
		return i.Version
	}
	return i.Version + "+" + i.revision()
}
