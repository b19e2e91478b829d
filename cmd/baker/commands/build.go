package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [-- args...]",
		Short: "Compile stale sources and link the artifact",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd)
			opts.Run, _ = cmd.Flags().GetBool("run")
			opts.RunArgs = args
			return c.app.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("run", "r", false, "Run the artifact after a successful build, passing trailing args through")
	return cmd
}
