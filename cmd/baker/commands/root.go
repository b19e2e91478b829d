// Package commands implements the CLI commands for the baker build tool.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/baker/internal/app"
	"go.trai.ch/baker/internal/build"
)

// CLI represents the command line interface for baker.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "baker",
		Short:         "An incremental build engine for C and C++",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default baker.yaml)")
	rootCmd.PersistentFlags().StringP("build-type", "t", "", "Override the configured build type (debug, release_small, release_fast, release_safe)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

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

// options assembles app options from the persistent flags.
func (c *CLI) options(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	buildType, _ := cmd.Flags().GetString("build-type")
	return app.Options{
		ConfigPath: configPath,
		BuildType:  buildType,
	}
}
