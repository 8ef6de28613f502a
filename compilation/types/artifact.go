package types

// BuildArtifact describes the shared library produced by a build and the location it was copied to.
type BuildArtifact struct {
	// SourcePath is the toolchain's output file inside the ephemeral project. It is left in place.
	SourcePath string

	// DestinationPath is the user-facing copy next to the original source file.
	DestinationPath string

	// Hash is the hex-encoded SHA-256 digest of the artifact contents.
	Hash string
}
