package citecmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bibshelf/src/internal/appenv"
	"bibshelf/src/internal/cite"
)

// New returns the cite command which prints APA7 and in‑text citations for a
// key; with --copy the APA text also goes to the clipboards, with --html an HTML
// rendering goes to the application clipboard.
func New() *cobra.Command {
	var library string
	var copyText, asHTML bool
	cmd := &cobra.Command{
		Use:   "cite <key>",
		Short: "Print APA7 citation and in-text citation for a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := appenv.Open(library)
			if err != nil {
				return err
			}
			defer env.Close()
			found, err := env.Library.FindByKeys([]string{strings.TrimSpace(args[0])})
			if err != nil {
				return err
			}
			lookup := cite.FromConstants(env.Library.StringValues())
			citation := cite.APA(found[0], lookup)
			inline := cite.InText(found[0], lookup)
			if asHTML {
				fragment := cite.HTML(found[0], lookup)
				if err := env.Clipboard.SetHTML(fragment, citation); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nhtml:\n%s\n", fragment)
				if err != nil {
					return err
				}
			} else if copyText {
				if err := env.Clipboard.SetText(citation); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "\ncitation:\n%s\n\nin text:\n%s\n\n", citation, inline)
			return err
		},
	}
	cmd.Flags().StringVar(&library, "library", "", "Library file (default $BIB_LIBRARY or data/library.yaml)")
	cmd.Flags().BoolVar(&copyText, "copy", false, "Also copy the citation to the clipboard")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Copy the citation as HTML (plain citation as fallback flavor)")
	return cmd
}
