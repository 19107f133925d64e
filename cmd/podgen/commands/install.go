package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.trai.ch/podgen/internal/app"
	"go.trai.ch/podgen/internal/ui/style"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	var opts app.InstallOptions
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Generate the settings documents and project plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := c.app.Install(cmd.Context(), c.manifest, opts)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", "", "Write documents below this directory instead of the sandbox")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Report every installation phase")
	return cmd
}

func printSummary(w io.Writer, s *app.InstallSummary) {
	check := color.New(color.FgGreen, color.Bold).SprintFunc()
	_, _ = fmt.Fprintf(w, "%s %d native targets, %d of %d documents changed in %s\n",
		check(style.Check), len(s.NativeTargets), len(s.Changed), s.Documents, s.OutDir)
	for _, path := range s.Changed {
		_, _ = fmt.Fprintf(w, "  %s %s\n", style.Bullet, style.Dim(path))
	}
	if s.Recorded > 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", style.Dim(fmt.Sprintf("%d digests recorded", s.Recorded)))
	}
}
