// Command directory serves the employee directory web application.
//
// With no subcommand it runs the HTTP server. The burn subcommand is the
// CPU worker the server launches for /stress-cpu.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := serveCommand()

	root := &cobra.Command{
		Use:           "directory",
		Short:         "Employee directory web application",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(serve)
	root.AddCommand(burnCommand())
	return root
}
