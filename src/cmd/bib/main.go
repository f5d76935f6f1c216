package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bib",
		Short:         "Bibliography library CLI (BibTeX clipboard + @String constants)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Attach subcommands
	root.AddCommand(newCopyCmd())
	root.AddCommand(newPasteCmd())
	root.AddCommand(newStringsCmd())
	root.AddCommand(newCiteCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newFormatCmd())
	root.AddCommand(newVerifyCmd())
	return root
}

func execute() error {
	return newRootCmd().Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
