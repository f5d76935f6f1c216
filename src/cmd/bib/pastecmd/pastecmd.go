package pastecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bibshelf/src/internal/appenv"
	"bibshelf/src/internal/bibtex"
	"bibshelf/src/internal/sanitize"
)

// New returns the paste command which imports BibTeX from the clipboard into the library.
func New() *cobra.Command {
	var library string
	var fromApp bool
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Import BibTeX entries and @String constants from the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := appenv.Open(library)
			if err != nil {
				return err
			}
			defer env.Close()

			text := env.Clipboard.GetContentsPrimary()
			if fromApp {
				text = env.Clipboard.GetContents()
			}
			text = sanitize.CleanString(text, 0)
			if text == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "clipboard is empty")
				return err
			}
			doc, err := bibtex.Parse(text)
			if err != nil {
				return err
			}
			for i := range doc.Entries {
				sanitize.CleanEntry(&doc.Entries[i])
			}
			for i := range doc.Strings {
				sanitize.CleanConstant(&doc.Strings[i])
			}
			if dryRun {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "would import %d entries and %d constants\n", len(doc.Entries), len(doc.Strings))
				return err
			}
			if err := env.Library.AddEntries(doc.Entries...); err != nil {
				return err
			}
			added, updated := env.Library.MergeStrings(doc.Strings)
			if err := env.Save(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries; constants: %d added, %d updated\n", len(doc.Entries), added, updated)
			return err
		},
	}
	cmd.Flags().StringVar(&library, "library", "", "Library file (default $BIB_LIBRARY or data/library.yaml)")
	cmd.Flags().BoolVar(&fromApp, "app", false, "Read the application clipboard instead of the primary selection")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without changing the library")
	return cmd
}
