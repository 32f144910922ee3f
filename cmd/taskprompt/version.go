package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set during build time via -ldflags
var version = "dev"

// gitSHA is set during build time via -ldflags
var gitSHA = "unknown"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print detailed version information including build details",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "taskprompt version %s\n", version)
			fmt.Fprintf(w, "Git SHA: %s\n", gitSHA)
			fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
