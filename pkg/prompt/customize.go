package prompt

import (
	"strings"

	"github.com/bryankaraffa/go-taskprompt/pkg/config"
)

// PromptEnvPrefix is the prefix of the prompt customization variables.
const PromptEnvPrefix = "MCP_PROMPT"

// appendSeparator goes between a prompt and appended operator text.
const appendSeparator = "\n\n"

var escapeDecoder = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "\r")

// Customizer applies operator-supplied overrides to rendered prompts.
//
// For a prompt key K, MCP_PROMPT_K replaces the prompt entirely and
// MCP_PROMPT_K_APPEND is appended after a blank line. The override wins when
// both are set.
type Customizer struct {
	settings config.Settings
}

// NewCustomizer creates a customizer reading from settings.
func NewCustomizer(settings config.Settings) *Customizer {
	return &Customizer{settings: settings}
}

// OverrideKey returns the variable that replaces prompt key.
func OverrideKey(key string) string {
	return PromptEnvPrefix + "_" + strings.ToUpper(key)
}

// AppendKey returns the variable appended to prompt key.
func AppendKey(key string) string {
	return OverrideKey(key) + "_APPEND"
}

// Apply returns basePrompt with any customization for key applied.
func (c *Customizer) Apply(basePrompt, key string) string {
	if c.settings == nil {
		return basePrompt
	}
	if override, ok := c.settings.Lookup(OverrideKey(key)); ok {
		return DecodeEscapes(override)
	}
	if extra, ok := c.settings.Lookup(AppendKey(key)); ok {
		return basePrompt + appendSeparator + DecodeEscapes(extra)
	}
	return basePrompt
}

// DecodeEscapes turns the two-character sequences \n, \t and \r into the
// characters they name. Nothing else is interpreted.
func DecodeEscapes(s string) string {
	return escapeDecoder.Replace(s)
}
