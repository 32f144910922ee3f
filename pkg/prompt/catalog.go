package prompt

import "strings"

// CatalogEntry ties a shipped template to its customization key.
type CatalogEntry struct {
	Key         string `json:"key" yaml:"key"`
	Template    string `json:"template" yaml:"template"`
	Description string `json:"description" yaml:"description"`
}

// Catalog lists the prompts shipped with the binary.
var Catalog = []CatalogEntry{
	{Key: InstructionsKey, Template: InstructionsTemplate, Description: "Guidance for agents using the tool"},
	{Key: "RESEARCH_MODE", Template: "researchMode/index.md", Description: "Enter research mode on a topic"},
	{Key: "PLAN_TASK", Template: "planTask/index.md", Description: "Plan a task from a description"},
	{Key: "INIT_PROJECT_RULES", Template: "initProjectRules/index.md", Description: "Create the project rules file"},
}

// LookupCatalog finds a catalog entry by key, ignoring case.
func LookupCatalog(key string) (CatalogEntry, bool) {
	for _, entry := range Catalog {
		if strings.EqualFold(entry.Key, key) {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}
