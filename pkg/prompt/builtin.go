package prompt

import "embed"

// embeddedTemplates holds Prompts/v1/templates_en so the binary works without
// an installation directory.
//
//go:embed Prompts
var embeddedTemplates embed.FS
