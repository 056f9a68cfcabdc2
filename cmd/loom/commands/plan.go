package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the module load plan of the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, _ := cmd.Flags().GetString("manifest")
			plan, err := c.app.Plan(cmd.Context(), manifest)
			if err != nil {
				return err
			}
			return render(cmd, plan)
		},
	}
}
