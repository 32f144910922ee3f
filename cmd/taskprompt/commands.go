package main

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bryankaraffa/go-taskprompt/pkg/prompt"
	"github.com/bryankaraffa/go-taskprompt/pkg/workspace"
)

func newPathsCmd(a *app) *cobra.Command {
	var (
		initRoots []string
		listRoots []string
		explain   bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Show the resolved workspace root and data directory",
		Long: `Show the workspace root and data directory as the server would resolve them.

Root hints can be supplied as file URIs or local paths. --list-root hints take
precedence over --root hints, which take precedence over MCP_WORKSPACE_ROOT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(initRoots) > 0 {
				roots, err := rootsFromArgs(initRoots)
				if err != nil {
					return err
				}
				a.roots.HandleInitialize(roots)
			}
			if len(listRoots) > 0 {
				roots, err := rootsFromArgs(listRoots)
				if err != nil {
					return err
				}
				a.roots.HandleListRoots(roots)
			}

			resolved := a.resolver.Resolve()
			if !explain {
				return writeOutput(cmd.OutOrStdout(), output, resolved, func(w io.Writer) {
					fmt.Fprintf(w, "Workspace root: %s (%s)\n", resolved.WorkspaceRoot, resolved.Strategy)
					fmt.Fprintf(w, "Data directory: %s\n", resolved.DataDir)
				})
			}

			report := explainReport{Resolved: resolved}
			for _, s := range a.resolver.Strategies() {
				p, ok := s.Resolve()
				report.Candidates = append(report.Candidates, candidate{Strategy: s.Name, Path: p, Present: ok})
			}
			return writeOutput(cmd.OutOrStdout(), output, report, func(w io.Writer) {
				selected := color.New(color.FgGreen, color.Bold).SprintFunc()
				absent := color.New(color.Faint).SprintFunc()

				fmt.Fprintln(w, "Workspace root strategies:")
				for _, c := range report.Candidates {
					line := fmt.Sprintf("   %-17s %s", c.Strategy, c.Path)
					switch {
					case c.Strategy == resolved.Strategy:
						line = selected(fmt.Sprintf(" * %-17s %s", c.Strategy, c.Path))
					case !c.Present:
						line = absent(fmt.Sprintf("   %-17s -", c.Strategy))
					}
					fmt.Fprintln(w, line)
				}
				fmt.Fprintf(w, "\nWorkspace root: %s (%s)\n", resolved.WorkspaceRoot, resolved.Strategy)
				fmt.Fprintf(w, "Data directory: %s\n", resolved.DataDir)
			})
		},
	}

	cmd.Flags().StringArrayVar(&initRoots, "root", nil, "Root hint supplied at initialization (repeatable)")
	cmd.Flags().StringArrayVar(&listRoots, "list-root", nil, "Root hint from a roots list response (repeatable)")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show every strategy and the path it would produce")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

type candidate struct {
	Strategy string `json:"strategy" yaml:"strategy"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Present  bool   `json:"present" yaml:"present"`
}

type explainReport struct {
	Resolved   workspace.ResolvedPaths `json:"resolved" yaml:"resolved"`
	Candidates []candidate             `json:"candidates" yaml:"candidates"`
}

// rootsFromArgs accepts file URIs or local paths. Relative paths are made
// absolute against the working directory.
func rootsFromArgs(args []string) ([]workspace.Root, error) {
	roots := make([]workspace.Root, 0, len(args))
	for _, arg := range args {
		if strings.Contains(arg, "://") {
			roots = append(roots, workspace.Root{URI: arg})
			continue
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid root %q: %w", arg, err)
		}
		p := filepath.ToSlash(abs)
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		roots = append(roots, workspace.Root{URI: (&url.URL{Scheme: "file", Path: p}).String()})
	}
	return roots, nil
}

func newTemplateCmd(a *app) *cobra.Command {
	var (
		where  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "template [relative-path]",
		Short: "Print the raw text of a template",
		Long: `Print a template exactly as it would be loaded, before any parameters are
substituted. A file under <data-dir>/<template-set>/ wins over the built-in copy.`,
		Example: "  taskprompt template researchMode/index.md\n  taskprompt template planTask/index.md --where",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.builder.Store()
			if where {
				src := store.Sources(args[0])
				return writeOutput(cmd.OutOrStdout(), output, src, func(w io.Writer) {
					fmt.Fprintf(w, "Template set: %s\n", src.TemplateSet)
					fmt.Fprintf(w, "Override:     %s\n", src.CustomPath)
					fmt.Fprintf(w, "Built-in:     %s\n", src.BuiltInPath)
				})
			}

			text, err := store.Load(args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&where, "where", false, "Show the locations searched instead of the text")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format for --where: text, json or yaml")
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	var (
		key    string
		params []string
	)

	cmd := &cobra.Command{
		Use:   "prompt [catalog-key | relative-path]",
		Short: "Render a prompt with parameters and customization applied",
		Long: `Render a prompt. The argument is either a catalog key (see "taskprompt list")
or a template path relative to the template set. Parameters are substituted in
the order given, then MCP_PROMPT_<KEY> or MCP_PROMPT_<KEY>_APPEND is applied.`,
		Example: `  taskprompt prompt RESEARCH_MODE --param topic=caching
  taskprompt prompt custom/review.md --key REVIEW --param "files=a.go, b.go"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := prompt.BuildRequest{Template: args[0], Key: key}
			if entry, ok := prompt.LookupCatalog(args[0]); ok {
				req.Template = entry.Template
				if req.Key == "" {
					req.Key = entry.Key
				}
			}

			parsed, err := parseParams(params)
			if err != nil {
				return err
			}
			req.Params = parsed

			text, err := a.builder.Build(req)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Customization key (defaults to the catalog key)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Template parameter as name=value (repeatable, applied in order)")
	return cmd
}

// parseParams turns name=value pairs into ordered parameters.
func parseParams(pairs []string) (prompt.Params, error) {
	params := make(prompt.Params, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected name=value", pair)
		}
		params = append(params, prompt.Param{Name: name, Value: value})
	}
	return params, nil
}

func newListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the prompts shipped with the binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOutput(cmd.OutOrStdout(), output, prompt.Catalog, func(w io.Writer) {
				fmt.Fprintf(w, "Template set: %s\n\n", a.builder.Store().TemplateSet())
				for _, entry := range prompt.Catalog {
					fmt.Fprintf(w, "  %-20s %-28s %s\n", entry.Key, entry.Template, entry.Description)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func newInstructionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "instructions",
		Short: "Print guidelines for agents using the task tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), prompt.GetInstructions(a.builder, a.resolver.DataDir()))
			return err
		},
	}
}
