package compilation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharedLibraryExtension(t *testing.T) {
	tests := map[string]string{
		PlatformLinux:   ".so",
		"freebsd":       ".so",
		"openbsd":       ".so",
		PlatformDarwin:  ".dylib",
		PlatformIOS:     ".dylib",
		PlatformWindows: ".dll",
	}
	for platform, expected := range tests {
		assert.Equal(t, expected, SharedLibraryExtension(platform), platform)
	}
}

func TestArtifactNames(t *testing.T) {
	assert.Equal(t, "libfoo.so", ToolchainArtifactName(PlatformLinux, "foo"))
	assert.Equal(t, "libfoo.dylib", ToolchainArtifactName(PlatformDarwin, "foo"))
	assert.Equal(t, "foo.dll", ToolchainArtifactName(PlatformWindows, "foo"))

	assert.Equal(t, "foo.so", OutputArtifactName(PlatformLinux, "foo"))
	assert.Equal(t, "foo.dylib", OutputArtifactName(PlatformDarwin, "foo"))
	assert.Equal(t, "foo.dll", OutputArtifactName(PlatformWindows, "foo"))
}
