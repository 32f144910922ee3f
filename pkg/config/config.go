// Package config reads the settings that steer path resolution, template
// lookup and prompt customization.
//
// Values come from the process environment, an optional config file and an
// optional .env file, in that order of precedence. Nothing is cached: every
// Lookup reflects the environment at the time of the call.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Setting keys. Each key is the lower-cased name of the environment variable
// that sets it, so a config file uses the same vocabulary as the environment.
const (
	KeyDataDir       = "data_dir"
	KeyWorkspaceRoot = "mcp_workspace_root"
	KeyTemplatesUse  = "templates_use"
	KeyGlobalInstall = "mcp_global_install"
	KeyAssetsDir     = "mcp_assets_dir"
	KeyLogLevel      = "taskprompt_log_level"
	KeyLogFormat     = "taskprompt_log_format"
	KeyLogFile       = "taskprompt_log_file"
)

// Environment variable names bound to the keys above.
const (
	EnvDataDir       = "DATA_DIR"
	EnvWorkspaceRoot = "MCP_WORKSPACE_ROOT"
	EnvTemplatesUse  = "TEMPLATES_USE"
	EnvGlobalInstall = "MCP_GLOBAL_INSTALL"
	EnvAssetsDir     = "MCP_ASSETS_DIR"
	EnvLogLevel      = "TASKPROMPT_LOG_LEVEL"
	EnvLogFormat     = "TASKPROMPT_LOG_FORMAT"
	EnvLogFile       = "TASKPROMPT_LOG_FILE"
)

// DefaultTemplateSet is used when TEMPLATES_USE is blank.
const DefaultTemplateSet = "en"

// Settings is the read-only view of configuration the pipeline depends on.
// Lookup reports ok=false for keys that are unset or whitespace-only.
type Settings interface {
	Lookup(key string) (string, bool)
}

// Source is a viper-backed Settings implementation.
type Source struct {
	v *viper.Viper
}

// New returns a Source reading from the environment only.
func New() *Source {
	v := viper.New()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	// Bind environment variables (these override config file values)
	_ = v.BindEnv(KeyDataDir, EnvDataDir)
	_ = v.BindEnv(KeyWorkspaceRoot, EnvWorkspaceRoot)
	_ = v.BindEnv(KeyTemplatesUse, EnvTemplatesUse)
	_ = v.BindEnv(KeyGlobalInstall, EnvGlobalInstall)
	_ = v.BindEnv(KeyAssetsDir, EnvAssetsDir)
	_ = v.BindEnv(KeyLogLevel, EnvLogLevel)
	_ = v.BindEnv(KeyLogFormat, EnvLogFormat)
	_ = v.BindEnv(KeyLogFile, EnvLogFile)

	// Prompt customization keys are derived at call time (MCP_PROMPT_<KEY>),
	// so they cannot be bound up front.
	v.AutomaticEnv()

	return &Source{v: v}
}

// Load returns a Source that also reads the given config file. An empty path
// behaves like New.
func Load(path string) (*Source, error) {
	s := New()
	if path == "" {
		return s, nil
	}
	s.v.SetConfigFile(path)
	if err := s.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return s, nil
}

// Lookup returns the raw value for key. Absent and blank values are both
// reported as not set.
func (s *Source) Lookup(key string) (string, bool) {
	val := s.v.GetString(strings.ToLower(key))
	if strings.TrimSpace(val) == "" {
		return "", false
	}
	return val, true
}

// String returns the value for key, or "" when it is not set.
func (s *Source) String(key string) string {
	val, _ := s.Lookup(key)
	return val
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Variables already present in the environment are left untouched and
// missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
