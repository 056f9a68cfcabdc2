package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every fragment of the manifest and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, _ := cmd.Flags().GetString("manifest")
			fragments, err := c.app.Resolve(cmd.Context(), manifest)
			if err != nil {
				return err
			}
			return render(cmd, fragments)
		},
	}
}
