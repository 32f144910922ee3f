package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newDocsCmd(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate documentation for all commands",
		Long:  `Generate Markdown documentation for all commands in the CLI.`,
		// Docs generation needs no configuration or logger.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output")
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return err
			}
			rootCmd.DisableAutoGenTag = true
			if err := doc.GenMarkdownTree(rootCmd, outputDir); err != nil {
				return err
			}
			// The root page doubles as the index
			rootFile := filepath.Join(outputDir, rootCmd.Name()+".md")
			readmeFile := filepath.Join(outputDir, "README.md")
			if _, err := os.Stat(rootFile); err == nil {
				return os.Rename(rootFile, readmeFile)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "./docs", "Output directory for generated documentation")
	return cmd
}
