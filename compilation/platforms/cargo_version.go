package platforms

import (
	"fmt"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"github.com/single-pyo3/single-pyo3/utils"
)

// versionPattern matches the first x.y.z version in toolchain output, including a prerelease suffix such as
// "-nightly".
var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?`)

// GetSystemCargoVersion runs `<path> --version` and parses the toolchain version from its output.
func GetSystemCargoVersion(path string) (*semver.Version, error) {
	_, _, out, err := utils.RunCommandWithOutputAndError(exec.Command(path, "--version"))
	if err != nil {
		return nil, fmt.Errorf("error while executing %s:\nOUTPUT:\n%s\nERROR: %s\n", path, string(out), err.Error())
	}
	return ParseCargoVersion(string(out))
}

// ParseCargoVersion parses the version out of `cargo --version` output such as "cargo 1.75.0 (1d8b05cdd 2023-11-20)".
func ParseCargoVersion(output string) (*semver.Version, error) {
	versionStr := versionPattern.FindString(output)
	if versionStr == "" {
		return nil, errors.Errorf("could not parse a version from '%s'", output)
	}
	return semver.NewVersion(versionStr)
}
