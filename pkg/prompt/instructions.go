package prompt

// InstructionsTemplate is the shipped guidance for agents using the tool.
const InstructionsTemplate = "instructions/index.md"

// InstructionsKey is the customization key for the instructions prompt.
const InstructionsKey = "INSTRUCTIONS"

// GetInstructions returns the agent instructions with the data directory
// filled in. Operators can override or extend them through
// MCP_PROMPT_INSTRUCTIONS and MCP_PROMPT_INSTRUCTIONS_APPEND, or by placing
// instructions/index.md in the template set under the data directory.
//
// The instructions cover:
//   - Where working data lives
//   - How prompts are customized
//   - Which template sets are available
func GetInstructions(b *Builder, dataDir string) string {
	return b.MustBuild(BuildRequest{
		Template: InstructionsTemplate,
		Key:      InstructionsKey,
		Params: Params{
			{Name: "dataDir", Value: dataDir},
			{Name: "templateSet", Value: b.Store().TemplateSet()},
		},
	})
}
