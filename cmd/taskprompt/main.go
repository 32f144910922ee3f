// Package main provides the CLI entry point for the task prompt tool
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryankaraffa/go-taskprompt/pkg/config"
	"github.com/bryankaraffa/go-taskprompt/pkg/logging"
	"github.com/bryankaraffa/go-taskprompt/pkg/prompt"
	"github.com/bryankaraffa/go-taskprompt/pkg/workspace"
)

// app holds what every command needs once flags have been parsed.
type app struct {
	configFile string
	envFiles   []string
	logOpts    logging.Options
	noColor    bool

	settings *config.Source
	logger   *zap.Logger
	roots    *workspace.RootStore
	resolver *workspace.Resolver
	builder  *prompt.Builder
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "taskprompt",
		Short: "Resolve workspace paths and render customizable agent prompts",
		Long: "A CLI tool that resolves the workspace root and data directory the way the task server does, " +
			"and renders its prompt templates with user overrides and environment customization applied.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (yaml, json or toml) read below the environment")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "Dotenv files to load (default .env)")
	flags.StringVar(&a.logOpts.Level, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logOpts.Format, "log-format", "", "Log format: console or json")
	flags.StringVar(&a.logOpts.File, "log-file", "", "Also write JSON logs to this rotated file")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newPathsCmd(a),
		newTemplateCmd(a),
		newPromptCmd(a),
		newListCmd(a),
		newInstructionsCmd(a),
		newVersionCmd(),
		newDocsCmd(rootCmd),
	)
	return rootCmd
}

// setup loads configuration and wires the resolution pipeline.
func (a *app) setup(cmd *cobra.Command) error {
	if a.noColor {
		color.NoColor = true
	}

	if err := config.LoadDotEnv(a.envFiles...); err != nil {
		return err
	}

	settings, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.settings = settings

	opts := logging.Options{
		Level:  settings.String(config.KeyLogLevel),
		Format: settings.String(config.KeyLogFormat),
		File:   settings.String(config.KeyLogFile),
	}
	if cmd.Flags().Changed("log-level") {
		opts.Level = a.logOpts.Level
	}
	if cmd.Flags().Changed("log-format") {
		opts.Format = a.logOpts.Format
	}
	if cmd.Flags().Changed("log-file") {
		opts.File = a.logOpts.File
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.logger = logger

	a.roots = workspace.NewRootStore()
	a.resolver = workspace.NewResolver(a.roots, settings, logger)
	a.builder = prompt.NewDefaultBuilder(settings, a.resolver, logger)

	logger.Debug("configuration loaded",
		zap.String("config_file", a.configFile),
		zap.String("command", cmd.Name()))
	return nil
}

// execute runs the CLI and returns the process exit code. Templates that ship
// with the binary are loaded with MustBuild, so a broken installation panics
// with a template error; that is reported like any other failure.
func execute(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			var notFound *prompt.TemplateNotFoundError
			var templateErr *prompt.TemplateError
			if !ok || (!errors.As(err, &notFound) && !errors.As(err, &templateErr)) {
				panic(r)
			}
			fmt.Fprintln(stderr, err)
			code = 1
		}
	}()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
