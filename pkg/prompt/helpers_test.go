package prompt

import (
	"os"
	"strings"
)

// MockFileSystem is an in-memory FileSystem for testing
type MockFileSystem struct {
	files map[string][]byte
	// readErr, when set, is returned by ReadFile for existing files
	readErr error
}

func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{files: make(map[string][]byte)}
}

func (fs *MockFileSystem) WriteFile(path string, content []byte) {
	fs.files[path] = content
}

func (fs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if content, exists := fs.files[path]; exists {
		if fs.readErr != nil {
			return nil, fs.readErr
		}
		return content, nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (fs *MockFileSystem) FileExists(path string) bool {
	_, exists := fs.files[path]
	return exists
}

// staticDataDir is a DataDirResolver returning a fixed directory
type staticDataDir string

func (d staticDataDir) DataDir() string { return string(d) }

// staticSettings is an in-memory config.Settings
type staticSettings map[string]string

func (s staticSettings) Lookup(key string) (string, bool) {
	val, ok := s[key]
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return val, true
}
