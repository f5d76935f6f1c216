package exportcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bibshelf/src/internal/appenv"
)

// New returns the export command which writes the whole library as a BibTeX file.
func New() *cobra.Command {
	var out string
	var library string
	cmd := &cobra.Command{
		Use:   "export-bib",
		Short: "Export the library (constants first, then entries) to a BibTeX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := appenv.Open(library)
			if err != nil {
				return err
			}
			defer env.Close()
			if out == "" {
				out = filepath.ToSlash(filepath.Join(filepath.Dir(env.Path), "library.bib"))
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := env.Library.ExportBib(f, env.Writer, env.Types); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output bib file path (default library.bib next to the library)")
	cmd.Flags().StringVar(&library, "library", "", "Library file (default $BIB_LIBRARY or data/library.yaml)")
	return cmd
}
