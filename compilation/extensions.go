package compilation

// Platform identifiers, matching runtime.GOOS values.
const (
	PlatformLinux   = "linux"
	PlatformDarwin  = "darwin"
	PlatformIOS     = "ios"
	PlatformWindows = "windows"
)

// SharedLibraryExtension returns the dynamic library extension, including the leading dot, for a platform. Unknown
// platforms are treated as unix-like.
func SharedLibraryExtension(platform string) string {
	switch platform {
	case PlatformDarwin, PlatformIOS:
		return ".dylib"
	case PlatformWindows:
		return ".dll"
	default:
		return ".so"
	}
}

// ToolchainArtifactName returns the file name the toolchain gives the library built for module. Unix-like platforms
// prefix it with "lib", Windows does not.
func ToolchainArtifactName(platform string, module string) string {
	if platform == PlatformWindows {
		return module + SharedLibraryExtension(platform)
	}
	return "lib" + module + SharedLibraryExtension(platform)
}

// OutputArtifactName returns the file name of the library once copied next to its source file.
func OutputArtifactName(platform string, module string) string {
	return module + SharedLibraryExtension(platform)
}
