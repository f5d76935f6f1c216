package stringscmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bibshelf/src/internal/appenv"
	"bibshelf/src/internal/constants"
)

// New returns the strings command group for editing @String constants.
func New() *cobra.Command {
	var library string
	cmd := &cobra.Command{
		Use:   "strings",
		Short: "List and edit the library's @String constants",
	}
	cmd.PersistentFlags().StringVar(&library, "library", "", "Library file (default $BIB_LIBRARY or data/library.yaml)")
	cmd.AddCommand(newList(&library), newShow(&library), newAdd(&library), newRemove(&library), newResort(&library))
	return cmd
}

// edit opens the library, loads the constants model, applies fn and saves.
func edit(library string, fn func(m *constants.Model) error) error {
	env, err := appenv.Open(library)
	if err != nil {
		return err
	}
	defer env.Close()
	m := constants.NewModel(env.Library)
	m.Subscribe(func(c constants.Change) {
		env.Log.Sugar().Debugw("constants changed", "kind", c.Kind, "index", c.Index)
	})
	m.SetValues()
	if err := fn(m); err != nil {
		return err
	}
	if m.State() != constants.Dirty {
		return nil
	}
	m.StoreSettings()
	return env.Save()
}

func newList(library *string) *cobra.Command {
	var stored bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print constants sorted by name (or in stored order with --stored)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := appenv.Open(*library)
			if err != nil {
				return err
			}
			defer env.Close()
			out := cmd.OutOrStdout()
			if stored {
				for _, c := range env.Library.StringValues() {
					if _, err := fmt.Fprintf(out, "%s = %s\n", c.Name, c.Content); err != nil {
						return err
					}
				}
				return nil
			}
			m := constants.NewModel(env.Library)
			m.SetValues()
			for _, it := range m.Strings() {
				if _, err := fmt.Fprintf(out, "%s = %s\n", it.Name, it.Content); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stored, "stored", false, "Keep the order stored in the library")
	return cmd
}

func newShow(library *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the content of one constant (exact, case-sensitive name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := appenv.Open(*library)
			if err != nil {
				return err
			}
			defer env.Close()
			c, ok := env.Library.StringByName(args[0])
			if !ok {
				return fmt.Errorf("no constant named %s", args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Content)
			return err
		},
	}
}

func newAdd(library *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "add <name> <content>",
		Short: "Add a constant, or replace the content of an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, content := args[0], args[1]
			err := edit(*library, func(m *constants.Model) error {
				if i := m.IndexOf(name); i >= 0 {
					if err := m.Update(i, name, content); err != nil {
						return err
					}
				} else {
					m.Add(constants.NewItem(name, content))
				}
				if force {
					return nil
				}
				return m.Validate()
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", name)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Save even if the constants do not validate")
	return cmd
}

func newRemove(library *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a constant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := edit(*library, func(m *constants.Model) error {
				i := m.IndexOf(args[0])
				if i < 0 {
					return fmt.Errorf("no constant named %s", args[0])
				}
				return m.Remove(i)
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return err
		},
	}
}

func newResort(library *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resort",
		Short: "Store the constants sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := appenv.Open(*library)
			if err != nil {
				return err
			}
			defer env.Close()
			m := constants.NewModel(env.Library)
			for _, c := range env.Library.StringValues() {
				m.Add(&constants.Item{ID: c.ID, Name: c.Name, Content: c.Content})
			}
			m.ResortStrings()
			m.StoreSettings()
			if err := env.Save(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sorted %d constants\n", m.Len())
			return err
		},
	}
}
