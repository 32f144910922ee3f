package workspace

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/bryankaraffa/go-taskprompt/pkg/config"
	"github.com/bryankaraffa/go-taskprompt/pkg/logging"
)

// AppName names the per-user data directory used by global installs.
const AppName = "taskprompt"

// DefaultLocalDataDir is the data directory, relative to the workspace root,
// used when DATA_DIR is not set and the tool is installed per project.
const DefaultLocalDataDir = "data"

// Strategy names, in precedence order.
const (
	StrategyListRoots       = "list-roots"
	StrategyInitializeRoots = "initialize-roots"
	StrategyEnvOverride     = "env-override"
	StrategyWorkingDir      = "working-dir"
	StrategyHomeDir         = "home-dir"
	StrategyFallback        = "fallback"
)

// Strategy is one step of workspace root resolution. Resolve reports
// ok=false when the strategy has nothing to offer.
type Strategy struct {
	Name    string
	Resolve func() (string, bool)
}

// System provides the process-level lookups the resolver falls back on.
type System struct {
	Getwd         func() (string, error)
	UserHomeDir   func() (string, error)
	UserConfigDir func() (string, error)
	GOOS          string
}

// OSSystem returns the System backed by the os package.
func OSSystem() System {
	return System{
		Getwd:         os.Getwd,
		UserHomeDir:   os.UserHomeDir,
		UserConfigDir: os.UserConfigDir,
		GOOS:          runtime.GOOS,
	}
}

// ResolvedPaths is the result of a single resolution pass.
type ResolvedPaths struct {
	WorkspaceRoot string `json:"workspaceRoot" yaml:"workspaceRoot"`
	DataDir       string `json:"dataDir" yaml:"dataDir"`
	// Strategy names the workspace root strategy that produced WorkspaceRoot.
	Strategy string `json:"strategy" yaml:"strategy"`
}

// Resolver derives the workspace root and data directory on every call.
// Nothing is cached, so changes to the root hints or the environment are
// picked up immediately.
type Resolver struct {
	roots    *RootStore
	settings config.Settings
	logger   *zap.Logger
	sys      System
}

// NewResolver creates a resolver backed by the real process environment.
//
// Example:
//
//	roots := NewRootStore()
//	resolver := NewResolver(roots, config.New(), logger)
//	fmt.Println(resolver.DataDir())
func NewResolver(roots *RootStore, settings config.Settings, logger *zap.Logger) *Resolver {
	return NewResolverWithDeps(roots, settings, logger, OSSystem())
}

// NewResolverWithDeps creates a resolver with explicit process lookups.
// Missing functions in sys are treated as failing lookups.
func NewResolverWithDeps(roots *RootStore, settings config.Settings, logger *zap.Logger, sys System) *Resolver {
	if roots == nil {
		roots = NewRootStore()
	}
	return &Resolver{
		roots:    roots,
		settings: settings,
		logger:   logging.OrNop(logger),
		sys:      sys,
	}
}

// Roots returns the root store the resolver reads from.
func (r *Resolver) Roots() *RootStore {
	return r.roots
}

// Strategies returns the workspace root strategies in precedence order. The
// last one always succeeds with ".".
func (r *Resolver) Strategies() []Strategy {
	return []Strategy{
		{Name: StrategyListRoots, Resolve: func() (string, bool) {
			return firstNonBlank(r.roots.Snapshot().ListRoots)
		}},
		{Name: StrategyInitializeRoots, Resolve: func() (string, bool) {
			return firstNonBlank(r.roots.Snapshot().InitializeRoots)
		}},
		{Name: StrategyEnvOverride, Resolve: func() (string, bool) {
			root, ok := r.lookupTrimmed(config.KeyWorkspaceRoot)
			if !ok {
				return "", false
			}
			return r.absolute(root), true
		}},
		{Name: StrategyWorkingDir, Resolve: func() (string, bool) {
			return r.callDir("working directory", r.sys.Getwd)
		}},
		{Name: StrategyHomeDir, Resolve: func() (string, bool) {
			return r.callDir("home directory", r.sys.UserHomeDir)
		}},
		{Name: StrategyFallback, Resolve: func() (string, bool) {
			return ".", true
		}},
	}
}

// WorkspaceRoot returns the current workspace root. It never fails.
func (r *Resolver) WorkspaceRoot() string {
	root, _ := r.Explain()
	return root
}

// Explain returns the workspace root together with the name of the strategy
// that produced it.
func (r *Resolver) Explain() (string, string) {
	return runStrategies(r.Strategies())
}

// DataDir returns the absolute data directory.
func (r *Resolver) DataDir() string {
	return r.dataDir(r.WorkspaceRoot)
}

// Resolve computes both paths, evaluating the workspace root only once.
func (r *Resolver) Resolve() ResolvedPaths {
	root, strategy := r.Explain()
	return ResolvedPaths{
		WorkspaceRoot: root,
		DataDir:       r.dataDir(func() string { return root }),
		Strategy:      strategy,
	}
}

func (r *Resolver) dataDir(workspaceRoot func() string) string {
	dir, ok := r.lookupTrimmed(config.KeyDataDir)
	defaulted := !ok
	if defaulted {
		dir = r.defaultDataDir()
	}

	if !filepath.IsAbs(dir) {
		dir = r.absolute(filepath.Join(workspaceRoot(), dir))
	}

	if defaulted {
		r.logger.Info("DATA_DIR not set, using default data directory", zap.String("path", dir))
	}
	return dir
}

// defaultDataDir returns "data" for per-project installs, or the per-user
// application directory for global installs.
func (r *Resolver) defaultDataDir() string {
	global, _ := r.lookupTrimmed(config.KeyGlobalInstall)
	if !cast.ToBool(global) {
		return DefaultLocalDataDir
	}

	if r.sys.GOOS == "windows" {
		if dir, ok := r.callDir("user config directory", r.sys.UserConfigDir); ok {
			return filepath.Join(dir, AppName)
		}
	}
	if home, ok := r.callDir("home directory", r.sys.UserHomeDir); ok {
		return filepath.Join(home, "."+AppName)
	}
	return DefaultLocalDataDir
}

// absolute resolves p against the working directory. p is returned as is
// when the working directory cannot be determined.
func (r *Resolver) absolute(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	wd, ok := r.callDir("working directory", r.sys.Getwd)
	if !ok || !filepath.IsAbs(wd) {
		return p
	}
	return filepath.Join(wd, p)
}

func (r *Resolver) lookupTrimmed(key string) (string, bool) {
	if r.settings == nil {
		return "", false
	}
	val, ok := r.settings.Lookup(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(val), true
}

func (r *Resolver) callDir(what string, fn func() (string, error)) (string, bool) {
	if fn == nil {
		return "", false
	}
	dir, err := fn()
	if err != nil {
		r.logger.Debug("cannot determine "+what, zap.Error(err))
		return "", false
	}
	if strings.TrimSpace(dir) == "" {
		return "", false
	}
	return dir, true
}

// runStrategies returns the first present result. "." is the last resort so
// resolution always yields a path.
func runStrategies(strategies []Strategy) (string, string) {
	for _, s := range strategies {
		if p, ok := s.Resolve(); ok {
			return p, s.Name
		}
	}
	return ".", StrategyFallback
}

func firstNonBlank(paths []string) (string, bool) {
	for _, p := range paths {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}
