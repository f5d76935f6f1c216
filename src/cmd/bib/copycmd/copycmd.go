package copycmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bibshelf/src/internal/appenv"
	"bibshelf/src/internal/cite"
	"bibshelf/src/internal/schema"
)

// New returns the copy command which puts entries (and the string constants
// they reference) on the clipboard and the primary selection.
func New() *cobra.Command {
	var library string
	var withCitation bool
	cmd := &cobra.Command{
		Use:   "copy [key...]",
		Short: "Copy entries as BibTeX to the clipboard (all entries when no key is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := appenv.Open(library)
			if err != nil {
				return err
			}
			defer env.Close()

			entries := env.Library.Entries
			if len(args) > 0 {
				if entries, err = env.Library.FindByKeys(args); err != nil {
					return err
				}
			}
			if withCitation {
				err = env.Clipboard.SetContentWithCitation(entries, env.Types, citations(entries, env.Library.StringValues()))
			} else {
				err = env.Clipboard.SetContent(entries, env.Types)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "copied %d entries\n", len(entries))
			return err
		},
	}
	cmd.Flags().StringVar(&library, "library", "", "Library file (default $BIB_LIBRARY or data/library.yaml)")
	cmd.Flags().BoolVar(&withCitation, "citation", false, "Offer an APA citation as the plain-text clipboard flavor")
	return cmd
}

func citations(entries []schema.Entry, constants []schema.StringConstant) string {
	lookup := cite.FromConstants(constants)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, cite.APA(e, lookup))
	}
	return strings.Join(lines, "\n")
}
