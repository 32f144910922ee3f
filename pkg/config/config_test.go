package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupReadsEnvironment(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/taskprompt-data")
	t.Setenv(EnvWorkspaceRoot, "/tmp/ws")

	s := New()

	val, ok := s.Lookup(KeyDataDir)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/taskprompt-data", val)

	val, ok = s.Lookup(KeyWorkspaceRoot)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/ws", val)
}

func TestLookupTreatsBlankAsUnset(t *testing.T) {
	s := New()

	t.Setenv(EnvDataDir, "")
	_, ok := s.Lookup(KeyDataDir)
	assert.False(t, ok)

	t.Setenv(EnvDataDir, "   \t")
	_, ok = s.Lookup(KeyDataDir)
	assert.False(t, ok)
	assert.Equal(t, "", s.String(KeyDataDir))
}

func TestLookupIsNotCached(t *testing.T) {
	s := New()

	t.Setenv(EnvTemplatesUse, "zh")
	assert.Equal(t, "zh", s.String(KeyTemplatesUse))

	t.Setenv(EnvTemplatesUse, "fr")
	assert.Equal(t, "fr", s.String(KeyTemplatesUse))
}

func TestLookupDynamicPromptKeys(t *testing.T) {
	t.Setenv("MCP_PROMPT_RESEARCH_MODE", "custom")
	s := New()

	val, ok := s.Lookup("MCP_PROMPT_RESEARCH_MODE")
	assert.True(t, ok)
	assert.Equal(t, "custom", val)

	_, ok = s.Lookup("MCP_PROMPT_RESEARCH_MODE_APPEND")
	assert.False(t, ok)
}

func TestLookupPreservesSurroundingWhitespace(t *testing.T) {
	t.Setenv("MCP_PROMPT_X", "  padded  ")
	s := New()

	val, ok := s.Lookup("MCP_PROMPT_X")
	assert.True(t, ok)
	assert.Equal(t, "  padded  ", val)
}

func TestLogDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, "info", s.String(KeyLogLevel))
	assert.Equal(t, "console", s.String(KeyLogFormat))
	assert.Equal(t, "", s.String(KeyLogFile))
}

func TestLoadConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "taskprompt.yaml")
	configContent := `
data_dir: "from-file"
templates_use: "zh"
taskprompt_log_level: "debug"
`
	err := os.WriteFile(configFile, []byte(configContent), 0o644)
	require.NoError(t, err)

	s, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file", s.String(KeyDataDir))
	assert.Equal(t, "zh", s.String(KeyTemplatesUse))
	assert.Equal(t, "debug", s.String(KeyLogLevel))

	// Environment wins over the file
	t.Setenv(EnvDataDir, "from-env")
	assert.Equal(t, "from-env", s.String(KeyDataDir))
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestLoadDotEnv(t *testing.T) {
	tempDir := t.TempDir()
	envFile := filepath.Join(tempDir, ".env")
	content := "TASKPROMPT_TEST_FROM_DOTENV=loaded\nTASKPROMPT_TEST_PRESET=from-file\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	t.Setenv("TASKPROMPT_TEST_PRESET", "from-env")
	t.Setenv("TASKPROMPT_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("TASKPROMPT_TEST_FROM_DOTENV"))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "loaded", os.Getenv("TASKPROMPT_TEST_FROM_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("TASKPROMPT_TEST_PRESET"))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
