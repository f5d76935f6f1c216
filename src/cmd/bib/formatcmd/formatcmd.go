package formatcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bibshelf/src/internal/bibtex"
	"bibshelf/src/internal/config"
	"bibshelf/src/internal/entrytype"
)

// New returns the format command that rewrites a .bib file in canonical form.
func New() *cobra.Command {
	var width int
	var toStdout bool
	cmd := &cobra.Command{
		Use:   "format FILE",
		Short: "Rewrite a .bib file in canonical form (constants first, wrapped at width)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if width <= 0 {
				width = cfg.WrapWidth
			}
			if width <= 0 {
				width = 120
			}
			path := args[0]
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			doc, err := bibtex.Parse(string(b))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			w := bibtex.NewWriter(bibtex.Options{WrapWidth: width, NonWrappableFields: cfg.NonWrappableFields})
			out, err := w.Document(doc.Entries, entrytype.NewRegistry(), doc.Strings)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if toStdout {
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "formatted %s (width=%d)\n", path, width)
			return err
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap width for field values (default $BIB_WRAP_WIDTH or 120)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the result instead of rewriting the file")
	return cmd
}
