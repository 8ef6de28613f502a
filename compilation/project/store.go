package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/single-pyo3/single-pyo3/utils"
)

const (
	// ManifestFileName is the Cargo project descriptor written into every ephemeral project.
	ManifestFileName = "Cargo.toml"

	// SourceDirectoryName is the Cargo source subdirectory.
	SourceDirectoryName = "src"

	// EntryPointFileName is the library entry point Cargo compiles.
	EntryPointFileName = "lib.rs"
)

// EphemeralProject describes the on-disk Cargo project synthesized for one module.
type EphemeralProject struct {
	// Key is the store key the project lives under, normally the crate name.
	Key string

	// Root is the project directory.
	Root string

	// ManifestPath is the path of Cargo.toml.
	ManifestPath string

	// SourceDir is the path of the src directory.
	SourceDir string

	// EntryPointPath is the path of src/lib.rs.
	EntryPointPath string
}

// ProjectStore maps keys (module names) to project directories under a root path. The mapping is deterministic, so
// separate invocations for the same module reuse the same directory and whatever incremental state the toolchain
// left in it. Nothing guards concurrent use of the same key.
type ProjectStore struct {
	root     string
	isolated bool
}

// NewProjectStore creates a ProjectStore rooted at root, or at the system temp directory if root is empty. If isolated
// is true, Key appends a random suffix so every invocation gets its own project.
func NewProjectStore(root string, isolated bool) *ProjectStore {
	if root == "" {
		root = os.TempDir()
	}
	return &ProjectStore{
		root:     root,
		isolated: isolated,
	}
}

// Root returns the directory all projects are created under.
func (s *ProjectStore) Root() string {
	return s.root
}

// Isolated returns whether keys are made unique per call.
func (s *ProjectStore) Isolated() bool {
	return s.isolated
}

// Key returns the store key for the given crate name.
func (s *ProjectStore) Key(crateName string) string {
	if s.isolated {
		return crateName + "-" + uuid.NewString()
	}
	return crateName
}

// Resolve returns the project layout for key without touching the filesystem.
func (s *ProjectStore) Resolve(key string) *EphemeralProject {
	root := filepath.Join(s.root, key)
	sourceDir := filepath.Join(root, SourceDirectoryName)
	return &EphemeralProject{
		Key:            key,
		Root:           root,
		ManifestPath:   filepath.Join(root, ManifestFileName),
		SourceDir:      sourceDir,
		EntryPointPath: filepath.Join(sourceDir, EntryPointFileName),
	}
}

// Ensure resolves the project for key and creates its directory layout if it does not exist yet.
func (s *ProjectStore) Ensure(key string) (*EphemeralProject, error) {
	project := s.Resolve(key)
	if err := utils.MakeDirectory(project.SourceDir); err != nil {
		return project, err
	}
	return project, nil
}

// Exists returns whether a project directory exists for key.
func (s *ProjectStore) Exists(key string) bool {
	info, err := os.Stat(s.Resolve(key).Root)
	return err == nil && info.IsDir()
}

// Remove deletes the project directory for key, including any toolchain output. Missing projects are ignored.
func (s *ProjectStore) Remove(key string) error {
	return utils.DeleteDirectory(s.Resolve(key).Root)
}

// Keys returns the keys of every project stored for crateName: the shared project and any isolated ones. Only keys
// whose directory exists are returned.
func (s *ProjectStore) Keys(crateName string) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	dirs := utils.SliceWhere(entries, fs.DirEntry.IsDir)
	prefix := crateName + "-"
	return utils.SliceWhere(utils.SliceSelect(dirs, fs.DirEntry.Name), func(name string) bool {
		if name == crateName {
			return true
		}
		// Isolated keys end in a UUID. Anything else belongs to a different crate, e.g. "foo-bar" for "foo".
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		_, err := uuid.Parse(strings.TrimPrefix(name, prefix))
		return err == nil
	}), nil
}
