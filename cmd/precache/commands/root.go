// Package commands implements the CLI commands for the precache build pipeline.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/precache/internal/adapters/telemetry"
	"go.trai.ch/precache/internal/app"
	"go.trai.ch/precache/internal/build"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/ui/output"
	"go.trai.ch/precache/internal/ui/style"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for precache.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	jsonLogs   bool
	traceFile  string

	closeTrace func() error
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.Options) error
	Copy(ctx context.Context, opts app.Options) error
	Generate(ctx context.Context, opts app.Options) error
	Clean(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.Options) error
	SetJSONLogs(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "precache",
		Short:         "Build static assets and generate an offline precache manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "",
		fmt.Sprintf("Path to the config file (default: discover %s)", domain.ConfigFileName))
	flags.BoolVar(&c.jsonLogs, "json", false, "Write logs as JSON")
	flags.StringVar(&c.traceFile, "trace", "", "Write OpenTelemetry spans as JSON to this file")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		c.app.SetJSONLogs(c.jsonLogs)
		return c.startTracing()
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCopyCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()

	if c.closeTrace != nil {
		if closeErr := c.closeTrace(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
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

func (c *CLI) options() app.Options {
	return app.Options{ConfigPath: c.configPath}
}

// startTracing exports spans to the --trace file, if one was given.
func (c *CLI) startTracing() error {
	if c.traceFile == "" {
		return nil
	}

	//nolint:gosec // The trace path is chosen by the user running the command
	f, err := os.OpenFile(c.traceFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.PrivateFilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open trace file"), "path", c.traceFile)
	}

	shutdown, err := telemetry.Setup(f)
	if err != nil {
		_ = f.Close()
		return err
	}

	c.closeTrace = func() error {
		shutdownErr := shutdown(context.Background())
		if err := f.Close(); err != nil && shutdownErr == nil {
			return zerr.Wrap(err, "failed to close trace file")
		}
		return shutdownErr
	}
	return nil
}

// runStage wraps an application operation as a cobra RunE that reports completion.
func (c *CLI) runStage(
	name string,
	op func(ctx context.Context, opts app.Options) error,
) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := op(cmd.Context(), c.options()); err != nil {
			return err
		}
		if c.jsonLogs {
			return nil
		}

		out := output.New(cmd.ErrOrStderr())
		line := out.String(style.Check + " " + name + " finished").
			Foreground(termenv.RGBColor(string(style.Green)))
		_, err := fmt.Fprintln(cmd.ErrOrStderr(), line.String())
		return err
	}
}
