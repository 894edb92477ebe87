package commands

import "github.com/spf13/cobra"

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Copy helper scripts and the development tree, then generate the worker script",
		Args:  cobra.NoArgs,
		RunE:  c.runStage("build", c.app.Build),
	}
}

func (c *CLI) newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy helper scripts and the development tree into the distribution tree",
		Args:  cobra.NoArgs,
		RunE:  c.runStage("copy", c.app.Copy),
	}
}

func (c *CLI) newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the precache manifest and write the worker script",
		Args:  cobra.NoArgs,
		RunE:  c.runStage("generate", c.app.Generate),
	}
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the distribution tree and copied helper scripts",
		Args:  cobra.NoArgs,
		RunE:  c.runStage("clean", c.app.Clean),
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever the development or helper trees change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), c.options())
		},
	}
}
