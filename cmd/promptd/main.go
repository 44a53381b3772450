package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prompt-fun/promptd/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "promptd",
		Short: "prompt.fun backend daemon",
		Long:  "prompt.fun daemon for serving the terminal API and ingesting knowledge documents",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.IngestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
