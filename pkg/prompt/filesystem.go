package prompt

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FileSystem provides the file operations used to read user override
// templates. Implementations can use the OS file system or an in-memory
// store for tests.
type FileSystem interface {
	// ReadFile reads the contents of a file.
	ReadFile(path string) ([]byte, error)

	// FileExists checks if a regular file exists and is accessible.
	FileExists(path string) bool
}

// OSFileSystem implements FileSystem using the OS file system
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS file system instance.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile reads the contents of a file.
func (fs *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileExists checks if a file exists and is accessible.
// Returns false if the path is a directory or doesn't exist.
func (fs *OSFileSystem) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// BuiltinTemplatesDir is the location of the shipped templates inside an
// installation directory.
const BuiltinTemplatesDir = "Prompts/v1/templates_en"

// embeddedLabel prefixes built-in paths that live inside the binary.
const embeddedLabel = "embedded:"

// BuiltinAssets locates the shipped templates.
type BuiltinAssets struct {
	// FS is rooted at the installation directory.
	FS fs.FS
	// Dir is the on-disk installation directory, empty for embedded assets.
	Dir string
}

// EmbeddedAssets returns the templates compiled into the binary.
func EmbeddedAssets() BuiltinAssets {
	return BuiltinAssets{FS: embeddedTemplates}
}

// DirAssets returns the templates installed under dir.
func DirAssets(dir string) BuiltinAssets {
	return BuiltinAssets{FS: os.DirFS(dir), Dir: dir}
}

// fsPath is the slash-separated path of a template inside FS.
func (a BuiltinAssets) fsPath(relativePath string) string {
	return path.Join(BuiltinTemplatesDir, filepath.ToSlash(relativePath))
}

// DisplayPath is the path reported to operators for a template.
func (a BuiltinAssets) DisplayPath(relativePath string) string {
	if a.Dir == "" {
		return embeddedLabel + a.fsPath(relativePath)
	}
	return filepath.Join(a.Dir, filepath.FromSlash(a.fsPath(relativePath)))
}

func (a BuiltinAssets) exists(relativePath string) bool {
	p := a.fsPath(relativePath)
	if a.FS == nil || !fs.ValidPath(p) {
		return false
	}
	info, err := fs.Stat(a.FS, p)
	return err == nil && !info.IsDir()
}

func (a BuiltinAssets) read(relativePath string) ([]byte, error) {
	return fs.ReadFile(a.FS, a.fsPath(relativePath))
}
