package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newVarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Inspect and edit stored placeholder variables",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get NAME",
			Short: "Print a stored variable",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, ok, err := c.app.Var(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return zerr.With(zerr.New(fmt.Sprintf("variable '%s' is not set", args[0])), "variable", args[0])
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			},
		},
		&cobra.Command{
			Use:   "set NAME VALUE",
			Short: "Store a variable",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return c.app.SetVar(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored variables",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				vars, err := c.app.Vars()
				if err != nil {
					return err
				}
				for _, name := range slices.Sorted(maps.Keys(vars)) {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, vars[name]); err != nil {
						return err
					}
				}
				return nil
			},
		},
	)
	return cmd
}
