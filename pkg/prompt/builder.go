package prompt

import (
	"strings"

	"go.uber.org/zap"

	"github.com/bryankaraffa/go-taskprompt/pkg/config"
	"github.com/bryankaraffa/go-taskprompt/pkg/logging"
)

// BuildRequest names a template, the parameters to render into it and the
// key under which operators may customize the result.
type BuildRequest struct {
	// Template is the template path relative to the template set
	Template string
	// Key is the logical prompt name (e.g. "RESEARCH_MODE"); empty skips customization
	Key string
	// Params are substituted in order
	Params Params
}

// Builder runs the load, render and customize steps for one prompt.
type Builder struct {
	store      *TemplateStore
	customizer *Customizer
	logger     *zap.Logger
}

// NewDefaultBuilder creates a builder reading override templates from the
// OS file system. Built-in templates come from MCP_ASSETS_DIR when it is set,
// otherwise from the copies embedded in the binary.
//
// Example:
//
//	settings := config.New()
//	resolver := workspace.NewResolver(workspace.NewRootStore(), settings, logger)
//	builder := prompt.NewDefaultBuilder(settings, resolver, logger)
//	text, err := builder.Build(prompt.BuildRequest{
//		Template: "researchMode/index.md",
//		Key:      "RESEARCH_MODE",
//		Params:   prompt.Params{{Name: "topic", Value: "caching"}},
//	})
func NewDefaultBuilder(settings config.Settings, resolver DataDirResolver, logger *zap.Logger) *Builder {
	assets := EmbeddedAssets()
	if dir, ok := settings.Lookup(config.KeyAssetsDir); ok {
		assets = DirAssets(strings.TrimSpace(dir))
	}
	store := NewTemplateStore(resolver, settings, NewOSFileSystem(), assets, logger)
	return NewBuilderWithDeps(store, NewCustomizer(settings), logger)
}

// NewBuilderWithDeps creates a builder from explicit collaborators.
// This is primarily useful for testing or when a custom FileSystem is needed.
func NewBuilderWithDeps(store *TemplateStore, customizer *Customizer, logger *zap.Logger) *Builder {
	return &Builder{
		store:      store,
		customizer: customizer,
		logger:     logging.OrNop(logger),
	}
}

// Store returns the template store used by the builder.
func (b *Builder) Store() *TemplateStore {
	return b.store
}

// Build loads, renders and customizes a prompt. Lookup failures are returned
// as is, so callers can test for ErrTemplateNotFound.
func (b *Builder) Build(req BuildRequest) (string, error) {
	text, err := b.store.Load(req.Template)
	if err != nil {
		return "", err
	}
	return b.finish(text, req), nil
}

// MustBuild is like Build but panics when the template cannot be loaded.
// Use it only for templates that ship with the binary.
func (b *Builder) MustBuild(req BuildRequest) string {
	return b.finish(b.store.MustLoad(req.Template), req)
}

func (b *Builder) finish(text string, req BuildRequest) string {
	rendered := Render(text, req.Params)
	if req.Key == "" {
		return rendered
	}
	out := b.customizer.Apply(rendered, req.Key)
	if out != rendered {
		b.logger.Debug("prompt customized from environment",
			zap.String("key", req.Key),
			zap.String("override", OverrideKey(req.Key)),
			zap.String("append", AppendKey(req.Key)))
	}
	return out
}
