package prompt

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/bryankaraffa/go-taskprompt/pkg/config"
	"github.com/bryankaraffa/go-taskprompt/pkg/logging"
)

// DataDirResolver supplies the directory that holds user override templates.
type DataDirResolver interface {
	DataDir() string
}

// TemplateSources lists the candidate locations for one template.
type TemplateSources struct {
	RelativePath string `json:"relativePath" yaml:"relativePath"`
	TemplateSet  string `json:"templateSet" yaml:"templateSet"`
	CustomPath   string `json:"customPath" yaml:"customPath"`
	BuiltInPath  string `json:"builtInPath" yaml:"builtInPath"`
}

// TemplateStore finds template text, preferring a user override under
// <dataDir>/<templateSet>/ and falling back to the shipped templates.
type TemplateStore struct {
	resolver DataDirResolver
	settings config.Settings
	fs       FileSystem
	assets   BuiltinAssets
	logger   *zap.Logger
}

// NewTemplateStore creates a template store.
func NewTemplateStore(resolver DataDirResolver, settings config.Settings, fs FileSystem, assets BuiltinAssets, logger *zap.Logger) *TemplateStore {
	return &TemplateStore{
		resolver: resolver,
		settings: settings,
		fs:       fs,
		assets:   assets,
		logger:   logging.OrNop(logger),
	}
}

// TemplateSet returns the active template set (TEMPLATES_USE, default "en").
func (s *TemplateStore) TemplateSet() string {
	if s.settings != nil {
		if set, ok := s.settings.Lookup(config.KeyTemplatesUse); ok {
			return strings.TrimSpace(set)
		}
	}
	return config.DefaultTemplateSet
}

// Sources returns the override and built-in locations for relativePath.
func (s *TemplateStore) Sources(relativePath string) TemplateSources {
	set := s.TemplateSet()
	return TemplateSources{
		RelativePath: relativePath,
		TemplateSet:  set,
		CustomPath:   filepath.Join(s.resolver.DataDir(), set, filepath.FromSlash(relativePath)),
		BuiltInPath:  s.assets.DisplayPath(relativePath),
	}
}

// Load returns the text of the template at relativePath. A missing template
// yields a *TemplateNotFoundError naming both locations tried.
func (s *TemplateStore) Load(relativePath string) (string, error) {
	src := s.Sources(relativePath)

	if s.fs.FileExists(src.CustomPath) {
		data, err := s.fs.ReadFile(src.CustomPath)
		if err != nil {
			return "", &TemplateError{Op: "read", Path: src.CustomPath, Err: err}
		}
		s.logger.Debug("loaded override template", zap.String("template", relativePath), zap.String("path", src.CustomPath))
		return string(data), nil
	}

	if s.assets.exists(relativePath) {
		data, err := s.assets.read(relativePath)
		if err != nil {
			return "", &TemplateError{Op: "read", Path: src.BuiltInPath, Err: err}
		}
		s.logger.Debug("loaded built-in template", zap.String("template", relativePath), zap.String("path", src.BuiltInPath))
		return string(data), nil
	}

	return "", &TemplateNotFoundError{
		RelativePath: relativePath,
		CustomPath:   src.CustomPath,
		BuiltInPath:  src.BuiltInPath,
	}
}

// MustLoad is like Load but panics on failure. It is meant for templates that
// ship with the binary, where a miss means a broken installation.
func (s *TemplateStore) MustLoad(relativePath string) string {
	text, err := s.Load(relativePath)
	if err != nil {
		panic(err)
	}
	return text
}
