// Package commands implements the CLI commands of podgen.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/podgen/internal/app"
	"go.trai.ch/podgen/internal/build"
)

// DefaultManifest is the manifest read when --config is not given.
const DefaultManifest = "podgen.yaml"

// Application represents the application logic interface.
type Application interface {
	Install(ctx context.Context, manifestPath string, opts app.InstallOptions) (*app.InstallSummary, error)
	Xcconfig(manifestPath, label, configuration string) (string, error)
	Graph(manifestPath string, w io.Writer) error
}

// LogSettings adjusts the logger from the global flags.
type LogSettings interface {
	SetJSON(enable bool)
	SetQuiet(quiet bool)
}

// CLI represents the command line interface for podgen.
type CLI struct {
	app      Application
	logs     LogSettings
	rootCmd  *cobra.Command
	manifest string
	jsonLogs bool
	quiet    bool
}

// New creates a new CLI. logs may be nil.
func New(a Application, logs LogSettings) *CLI {
	c := &CLI{app: a, logs: logs}

	rootCmd := &cobra.Command{
		Use:           "podgen",
		Short:         "Generate the build settings and target graph of a Pods project",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if c.logs == nil {
				return
			}
			c.logs.SetJSON(c.jsonLogs)
			c.logs.SetQuiet(c.quiet)
		},
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.manifest, "config", "c", DefaultManifest, "Path to the installation manifest")
	flags.BoolVar(&c.jsonLogs, "json", false, "Log as JSON")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "Only log warnings and errors")

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newXcconfigCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
