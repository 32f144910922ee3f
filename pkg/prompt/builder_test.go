package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bryankaraffa/go-taskprompt/pkg/config"
)

func newTestBuilder(settings staticSettings, fs *MockFileSystem, builtIn map[string]string, logger *zap.Logger) *Builder {
	store := NewTemplateStore(staticDataDir("/data"), settings, fs, testAssets(builtIn), logger)
	return NewBuilderWithDeps(store, NewCustomizer(settings), logger)
}

func TestBuild(t *testing.T) {
	b := newTestBuilder(staticSettings{}, NewMockFileSystem(), map[string]string{
		"researchMode/index.md": "Research {{ topic }}",
	}, nil)

	text, err := b.Build(BuildRequest{
		Template: "researchMode/index.md",
		Key:      "RESEARCH_MODE",
		Params:   Params{{Name: "topic", Value: "caching"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Research caching", text)
}

func TestBuildUsesOverrideTemplate(t *testing.T) {
	fs := NewMockFileSystem()
	fs.WriteFile(filepath.Join("/data", "en", "researchMode", "index.md"), []byte("Custom {topic}"))

	b := newTestBuilder(staticSettings{}, fs, map[string]string{
		"researchMode/index.md": "Research {{ topic }}",
	}, nil)

	text, err := b.Build(BuildRequest{
		Template: "researchMode/index.md",
		Params:   Params{{Name: "topic", Value: "caching"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom caching", text)
}

func TestBuildCustomizesAfterRendering(t *testing.T) {
	settings := staticSettings{"MCP_PROMPT_RESEARCH_MODE_APPEND": `Keep it short.\nCite {{ topic }}.`}
	b := newTestBuilder(settings, NewMockFileSystem(), map[string]string{
		"researchMode/index.md": "Research {{ topic }}",
	}, nil)

	text, err := b.Build(BuildRequest{
		Template: "researchMode/index.md",
		Key:      "RESEARCH_MODE",
		Params:   Params{{Name: "topic", Value: "caching"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Research caching\n\nKeep it short.\nCite {{ topic }}.", text)
}

func TestBuildOverrideReplacesRenderedPrompt(t *testing.T) {
	settings := staticSettings{"MCP_PROMPT_RESEARCH_MODE": "Replaced"}
	b := newTestBuilder(settings, NewMockFileSystem(), map[string]string{
		"researchMode/index.md": "Research {{ topic }}",
	}, nil)

	text, err := b.Build(BuildRequest{Template: "researchMode/index.md", Key: "RESEARCH_MODE"})
	require.NoError(t, err)
	assert.Equal(t, "Replaced", text)
}

func TestBuildWithoutKeySkipsCustomization(t *testing.T) {
	settings := staticSettings{"MCP_PROMPT_": "should not apply"}
	b := newTestBuilder(settings, NewMockFileSystem(), map[string]string{"a.md": "plain"}, nil)

	text, err := b.Build(BuildRequest{Template: "a.md"})
	require.NoError(t, err)
	assert.Equal(t, "plain", text)
}

func TestBuildTemplateNotFound(t *testing.T) {
	b := newTestBuilder(staticSettings{}, NewMockFileSystem(), nil, nil)

	_, err := b.Build(BuildRequest{Template: "missing.md", Key: "MISSING"})
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
	assert.Panics(t, func() { b.MustBuild(BuildRequest{Template: "missing.md"}) })
}

func TestBuildLogsCustomization(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	settings := staticSettings{"MCP_PROMPT_PLAN_TASK": "Replaced"}
	b := newTestBuilder(settings, NewMockFileSystem(), map[string]string{"planTask/index.md": "Plan"}, zap.New(core))

	_, err := b.Build(BuildRequest{Template: "planTask/index.md", Key: "PLAN_TASK"})
	require.NoError(t, err)

	entries := logs.FilterMessage("prompt customized from environment").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "PLAN_TASK", entries[0].ContextMap()["key"])
	assert.Equal(t, "MCP_PROMPT_PLAN_TASK", entries[0].ContextMap()["override"])
}

func TestNewDefaultBuilderEmbedded(t *testing.T) {
	b := NewDefaultBuilder(staticSettings{}, staticDataDir(t.TempDir()), nil)

	text, err := b.Build(BuildRequest{
		Template: "researchMode/index.md",
		Key:      "RESEARCH_MODE",
		Params:   Params{{Name: "topic", Value: "caching"}},
	})
	require.NoError(t, err)
	assert.Contains(t, text, "# Research Mode")
	assert.Contains(t, text, "caching")

	src := b.Store().Sources("researchMode/index.md")
	assert.Equal(t, "embedded:Prompts/v1/templates_en/researchMode/index.md", src.BuiltInPath)
}

func TestNewDefaultBuilderAssetsDir(t *testing.T) {
	installDir := t.TempDir()
	dir := filepath.Join(installDir, "Prompts", "v1", "templates_en", "planTask")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("Installed {description}"), 0o644))

	settings := staticSettings{config.KeyAssetsDir: installDir}
	b := NewDefaultBuilder(settings, staticDataDir(t.TempDir()), nil)

	text, err := b.Build(BuildRequest{
		Template: "planTask/index.md",
		Params:   Params{{Name: "description", Value: "ship it"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Installed ship it", text)

	_, err = b.Build(BuildRequest{Template: "researchMode/index.md"})
	assert.True(t, errors.Is(err, ErrTemplateNotFound))
}
