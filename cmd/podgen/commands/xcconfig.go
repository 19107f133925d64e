package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newXcconfigCmd() *cobra.Command {
	var configuration string
	cmd := &cobra.Command{
		Use:   "xcconfig <target>",
		Short: "Print the settings document of one target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.app.Xcconfig(c.manifest, args[0], configuration)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		},
	}
	cmd.Flags().StringVar(&configuration, "configuration", "Debug", "Build configuration of an aggregate target")
	return cmd
}
